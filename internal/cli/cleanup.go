package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cleanupMaxAge int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Remove old learning data",
	Long: `Cleanup drops failed searches older than the age limit, and old insights
whose confidence never rose above the retention minimum. High-confidence
insights are kept regardless of age.`,
	Example: `  ks cleanup
  ks cleanup --max-age 7`,
	RunE: func(cmd *cobra.Command, args []string) error {
		e := openEngine()
		removed := e.CleanupOldData(cleanupMaxAge)

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), struct {
				Removed int `json:"removed"`
			}{removed})
		}
		fmt.Fprintf(os.Stderr, "Removed %d old record(s).\n", removed)
		return nil
	},
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupMaxAge, "max-age", 30, "age limit in days")
	rootCmd.AddCommand(cleanupCmd)
}
