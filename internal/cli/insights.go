package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/avoss/keyscout/internal/learn"
	"github.com/avoss/keyscout/internal/model"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "List mined dictionary suggestions",
	Long: `Insights shows what the miner has learned from failed searches, split
into apply-ready suggestions (enough evidence and confidence for ks apply)
and pending ones grouped by pattern type.`,
	Example: `  ks insights
  ks insights --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := openEngine()
		sug := e.Learn.Suggestions()

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), sug)
		}
		writeSuggestionsText(cmd.OutOrStdout(), sug)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func writeSuggestionsText(w io.Writer, sug learn.Suggestions) {
	color := isTTY(os.Stdout)

	if len(sug.Ready) == 0 && pendingCount(sug) == 0 {
		fmt.Fprintln(w, "No suggestions yet. Record some failed searches first.")
		return
	}

	if len(sug.Ready) > 0 {
		fmt.Fprintln(w, bold("Ready to apply:", color))
		writeInsightsTable(w, sug.Ready)
	}

	for _, pt := range model.PatternTypes {
		pending := sug.Pending[pt]
		if len(pending) == 0 {
			continue
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold(fmt.Sprintf("Pending (%s):", pt), color))
		writeInsightsTable(w, pending)
	}
}

func writeInsightsTable(w io.Writer, insights []model.Insight) {
	t := NewTable(w, "TYPE", "TERM", "MAPPING", "CONFIDENCE", "EVIDENCE")
	for _, in := range insights {
		t.Row(
			string(in.PatternType),
			in.OriginalTerm,
			in.SuggestedMapping,
			fmt.Sprintf("%.2f", in.ConfidenceScore),
			fmt.Sprintf("%d", in.EvidenceCount),
		)
	}
	if err := t.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func pendingCount(sug learn.Suggestions) int {
	n := 0
	for _, p := range sug.Pending {
		n += len(p)
	}
	return n
}
