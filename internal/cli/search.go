package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/avoss/keyscout/internal/engine"
)

var (
	searchBindings string
	searchLimit    int
	searchSession  string
	searchNoRecord bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank keybindings against a free-text query",
	Long: `Search normalizes the query, expands it through the synonym, typo, and
intent dictionaries, and ranks the given bindings by a tiered score.
Only bindings with a positive score are shown.

A query with no matches is recorded as a failed search together with the
closest near-miss descriptions, feeding the insight miner. Use --no-record
to search without recording.`,
	Example: `  ks search "volume up" --bindings bindings.json
  cat bindings.json | ks search screenshot --bindings -
  ks search fullscreen --bindings bindings.json --limit 5 --json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		w := cmd.OutOrStdout()

		bindings, err := loadBindings(searchBindings)
		if err != nil {
			return err
		}

		e := openEngine()
		e.IndexBindings(bindings)
		results := e.Search(query, bindings)
		if searchLimit > 0 && len(results) > searchLimit {
			results = results[:searchLimit]
		}

		if len(results) == 0 {
			suggestions := e.SuggestClosestMatches(query, bindings)
			if !searchNoRecord {
				session := searchSession
				if session == "" {
					session = uuid.NewString()
				}
				e.RecordSearchOutcome(query, 0, suggestions, session)
			}
			if jsonOutput {
				return printJSON(w, struct {
					Query       string   `json:"query"`
					Results     []any    `json:"results"`
					Suggestions []string `json:"suggestions,omitempty"`
				}{Query: query, Results: []any{}, Suggestions: suggestions})
			}
			fmt.Fprintf(w, "No matches for %q\n", query)
			if len(suggestions) > 0 {
				fmt.Fprintf(w, "Did you mean: %s\n", strings.Join(suggestions, ", "))
			}
			return nil
		}

		if !searchNoRecord {
			e.Analytics.TrackSearchTerm(strings.ToLower(strings.TrimSpace(query)))
		}

		if jsonOutput {
			return printJSON(w, results)
		}
		writeResultsTable(w, results)
		return nil
	},
}

func init() {
	searchCmd.Flags().StringVar(&searchBindings, "bindings", "-", "bindings JSON file, or - for stdin")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "maximum number of results")
	searchCmd.Flags().StringVar(&searchSession, "session", "", "session identifier for learning records")
	searchCmd.Flags().BoolVar(&searchNoRecord, "no-record", false, "do not record the search outcome")
	rootCmd.AddCommand(searchCmd)
}

func writeResultsTable(w io.Writer, results []engine.Result) {
	t := NewTable(w, "RANK", "SCORE", "KEY", "DESCRIPTION")
	descWidth := t.Width() / 2
	for i, r := range results {
		t.Row(
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%.1f", r.Score),
			r.Binding.Key,
			truncate(r.Binding.Description, descWidth),
		)
	}
	if err := t.Flush(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
