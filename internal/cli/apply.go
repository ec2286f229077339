package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply high-confidence suggestions to the dictionaries",
	Long: `Apply commits every insight meeting both thresholds (evidence count and
confidence, see ks config) to the dictionaries. Typo corrections never
overwrite an existing entry, so manual curation wins over mining. Applying
twice is a no-op.`,
	Example: `  ks apply
  ks apply --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := openEngine()
		applied := e.ApplyHighConfidenceSuggestions()

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), struct {
				Applied int `json:"applied"`
			}{applied})
		}
		if applied == 0 {
			fmt.Fprintln(os.Stderr, "Nothing to apply.")
			return nil
		}
		fmt.Fprintf(os.Stderr, "Applied %d suggestion(s) to the dictionaries.\n", applied)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
