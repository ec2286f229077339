package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/avoss/keyscout/internal/learn"
	"github.com/avoss/keyscout/internal/model"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	Long: `Display a summary of the learning loop: failed search counts (total and
last 24h), insight counts by pattern type and confidence, and the sizes of
the three dictionaries. Popular search terms from usage analytics are
listed when present.`,
	Example: `  ks stats
  ks stats --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := openEngine()
		st := e.LearningStats()

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), st)
		}
		printStatsText(st)

		if popular := e.Analytics.PopularSearchTerms(5); len(popular) > 0 {
			fmt.Println()
			fmt.Println(bold("Popular search terms:", isTTY(os.Stdout)))
			for _, term := range popular {
				fmt.Printf("  %-20s %d\n", term, e.Analytics.SearchTerms[term])
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func printStatsText(st learn.Stats) {
	color := isTTY(os.Stdout)

	fmt.Printf("Failed searches:    %d\n", st.TotalFailedSearches)
	fmt.Printf("Last 24h:           %d\n", st.RecentFailedSearches)

	fmt.Println()
	fmt.Printf("Insights:           %d\n", st.TotalInsights)
	fmt.Printf("High confidence:    %d\n", st.HighConfidenceInsights)
	fmt.Printf("User confirmed:     %d\n", st.UserConfirmedInsights)

	if st.TotalInsights > 0 {
		fmt.Println()
		fmt.Println(bold("By pattern type:", color))
		for _, pt := range model.PatternTypes {
			fmt.Printf("  %-20s %d\n", pt, st.PatternBreakdown[pt])
		}
	}

	fmt.Println()
	fmt.Println(bold("Dictionary sizes:", color))
	fmt.Printf("  %-20s %d\n", "synonyms", st.DictionarySizes.Synonyms)
	fmt.Printf("  %-20s %d\n", "intents", st.DictionarySizes.Intents)
	fmt.Printf("  %-20s %d\n", "typos", st.DictionarySizes.Typos)
}
