package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avoss/keyscout/internal/dict"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Inspect and curate the search dictionaries",
	Long: `Dict shows the synonym, intent, and typo dictionaries and lets you add
entries by hand. Manual entries take precedence over mined ones: a typo
correction added here is never overwritten by ks apply.`,
	Example: `  ks dict show
  ks dict add-synonym volume loudness
  ks dict add-typo volme volume
  ks dict add-intent launch_application "open browser"`,
}

var dictShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print all dictionary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDict()
		if err != nil {
			return err
		}
		if jsonOutput {
			return printJSON(cmd.OutOrStdout(), d)
		}
		writeDictText(cmd.OutOrStdout(), d)
		return nil
	},
}

var dictAddSynonymCmd = &cobra.Command{
	Use:   "add-synonym <key> <value>",
	Short: "Add a synonym under a key term",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDict()
		if err != nil {
			return err
		}
		if !d.AddSynonym(args[0], args[1]) {
			fmt.Fprintf(os.Stderr, "Synonym %q -> %q already present.\n", args[0], args[1])
			return nil
		}
		return saveDict(d, fmt.Sprintf("Added synonym: %s -> %s", args[0], args[1]))
	},
}

var dictAddTypoCmd = &cobra.Command{
	Use:   "add-typo <misspelling> <correction>",
	Short: "Add a typo correction",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDict()
		if err != nil {
			return err
		}
		if !d.SetTypo(args[0], args[1]) {
			fmt.Fprintf(os.Stderr, "Correction for %q already present; remove it from the dictionary file first.\n", args[0])
			return nil
		}
		return saveDict(d, fmt.Sprintf("Added typo correction: %s -> %s", args[0], args[1]))
	},
}

var dictAddIntentCmd = &cobra.Command{
	Use:   "add-intent <label> <phrase>",
	Short: "Add a trigger phrase under an intent label",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := openDict()
		if err != nil {
			return err
		}
		if !d.AddIntent(args[0], args[1]) {
			fmt.Fprintf(os.Stderr, "Intent %q -> %q already present.\n", args[0], args[1])
			return nil
		}
		return saveDict(d, fmt.Sprintf("Added intent phrase: %s -> %q", args[0], args[1]))
	},
}

func init() {
	dictCmd.AddCommand(dictShowCmd, dictAddSynonymCmd, dictAddTypoCmd, dictAddIntentCmd)
	rootCmd.AddCommand(dictCmd)
}

func openDict() (*dict.Store, error) {
	d, err := dict.Load(dictPath())
	if err != nil {
		return nil, err
	}
	return d, nil
}

func dictPath() string {
	return filepath.Join(dataDir, dict.DefaultFileName)
}

func saveDict(d *dict.Store, msg string) error {
	if err := d.Save(); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, msg)
	return nil
}

func writeDictText(w io.Writer, d *dict.Store) {
	color := isTTY(os.Stdout)

	fmt.Fprintln(w, bold("Synonyms:", color))
	for _, key := range sortedKeys(d.Synonyms) {
		fmt.Fprintf(w, "  %-20s %s\n", key, strings.Join(d.Synonyms[key], ", "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Intents:", color))
	for _, label := range sortedKeys(d.Intents) {
		fmt.Fprintf(w, "  %-20s %s\n", label, strings.Join(d.Intents[label], "; "))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, bold("Typos:", color))
	misspellings := make([]string, 0, len(d.Typos))
	for miss := range d.Typos {
		misspellings = append(misspellings, miss)
	}
	sort.Strings(misspellings)
	for _, miss := range misspellings {
		fmt.Fprintf(w, "  %-20s %s\n", miss, d.Typos[miss])
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
