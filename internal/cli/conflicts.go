package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/avoss/keyscout/internal/conflicts"
)

var conflictsBindings string

var conflictsCmd = &cobra.Command{
	Use:   "conflicts",
	Short: "Analyze a binding list for conflicts",
	Long: `Conflicts checks the given bindings for exact duplicates, prefix shadows,
visually confusable pairs, collisions with common system shortcuts, and
ergonomically awkward combinations. It also suggests free, easy-to-reach
combinations worth assigning.`,
	Example: `  ks conflicts --bindings bindings.json
  ks conflicts --bindings bindings.json --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		bindings, err := loadBindings(conflictsBindings)
		if err != nil {
			return err
		}

		report := conflicts.Analyze(bindings)
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), report)
		}
		writeConflictReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	conflictsCmd.Flags().StringVar(&conflictsBindings, "bindings", "-", "bindings JSON file, or - for stdin")
	rootCmd.AddCommand(conflictsCmd)
}

func writeConflictReport(w io.Writer, r conflicts.Report) {
	color := isTTY(os.Stdout)

	fmt.Fprintf(w, "Bindings analyzed:  %d\n", r.TotalBindings)
	fmt.Fprintf(w, "Issues found:       %d\n", r.IssueCount())

	if len(r.Duplicates) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Duplicates:", color))
		for _, d := range r.Duplicates {
			fmt.Fprintf(w, "  %s is bound %d times:\n", d.Key, len(d.Bindings))
			for _, b := range d.Bindings {
				fmt.Fprintf(w, "    %s\n", truncate(b.Description+" ("+b.Command+")", 70))
			}
		}
	}

	if len(r.Shadows) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Shadows:", color))
		for _, s := range r.Shadows {
			fmt.Fprintf(w, "  %s may prevent %s from working\n", s.Shadower.Key, s.Shadowed.Key)
		}
	}

	if len(r.SystemConflicts) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("System conflicts:", color))
		for _, s := range r.SystemConflicts {
			fmt.Fprintf(w, "  %s collides with the %s\n", s.Binding.Key, s.Function)
		}
	}

	if len(r.Similar) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Visually similar:", color))
		for _, s := range r.Similar {
			fmt.Fprintf(w, "  %s and %s read alike\n", s.A.Key, s.B.Key)
		}
	}

	if len(r.Ergonomic) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Ergonomic issues:", color))
		for _, e := range r.Ergonomic {
			fmt.Fprintf(w, "  %s: %s (try %s)\n", e.Binding.Key, e.Reason, e.Suggestion)
		}
	}

	if len(r.Unused) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, bold("Free combinations:", color))
		t := NewTable(w, "KEY", "SCORE", "SUGGESTED USE")
		for _, u := range r.Unused {
			t.Row(u.Key, fmt.Sprintf("%d", u.Score), u.SuggestedUse)
		}
		if err := t.Flush(); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}
}
