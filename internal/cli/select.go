package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var selectCmd = &cobra.Command{
	Use:   "select <query> <binding-id>",
	Short: "Correlate a user selection with a recent failed search",
	Long: `Select reports which binding the user eventually picked after a failed
search. The selection correlates with the most recent failed search for
the same query within a five-minute window; outside the window the signal
is silently dropped. The binding id is "key:description".

The selected binding also counts toward usage analytics.`,
	Example: `  ks select sceenshot "Print:Take screenshot"`,
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query, bindingID := args[0], args[1]

		e := openEngine()
		e.RecordUserSelection(query, bindingID)

		fmt.Fprintf(os.Stderr, "Recorded selection for %q: %s\n", query, bindingID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(selectCmd)
}
