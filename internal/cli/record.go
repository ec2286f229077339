package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	recordQuery   string
	recordResults int
	recordSession string
)

// recordInput is the stdin shape accepted by ks record, matching what a
// launcher wrapper can emit after a search.
type recordInput struct {
	Query            string   `json:"query"`
	ResultCount      int      `json:"result_count"`
	SuggestedMatches []string `json:"suggested_matches"`
	SessionID        string   `json:"session_id"`
}

var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Record a search outcome for the learning loop",
	Long: `Record feeds one search outcome to the failure tracker and the insight
miner. Flags cover the common case; alternatively a JSON object can be
piped on stdin with --stdin:

  {"query":"...","result_count":0,"suggested_matches":[...],"session_id":"..."}

A missing session_id is filled with a generated one. Recording never fails
the caller: store problems are logged as warnings.`,
	Example: `  ks record --query sceenshot --results 0
  echo '{"query":"volme","result_count":0,"suggested_matches":["Volume up"]}' | ks record --stdin`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := recordInput{
			Query:       recordQuery,
			ResultCount: recordResults,
			SessionID:   recordSession,
		}
		if fromStdin, _ := cmd.Flags().GetBool("stdin"); fromStdin {
			if err := json.NewDecoder(os.Stdin).Decode(&in); err != nil {
				return fmt.Errorf("parse record input: %w", err)
			}
		}
		if in.Query == "" {
			return fmt.Errorf("record requires a query (--query or stdin)")
		}
		if in.SessionID == "" {
			in.SessionID = uuid.NewString()
		}

		e := openEngine()
		e.RecordSearchOutcome(in.Query, in.ResultCount, in.SuggestedMatches, in.SessionID)

		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), in)
		}
		fmt.Fprintf(os.Stderr, "Recorded search: %q (results: %d, session: %s)\n", in.Query, in.ResultCount, in.SessionID)
		return nil
	},
}

func init() {
	recordCmd.Flags().StringVar(&recordQuery, "query", "", "the search query")
	recordCmd.Flags().IntVar(&recordResults, "results", 0, "number of results the search returned")
	recordCmd.Flags().StringVar(&recordSession, "session", "", "session identifier")
	recordCmd.Flags().Bool("stdin", false, "read a JSON record object from stdin")
	rootCmd.AddCommand(recordCmd)
}
