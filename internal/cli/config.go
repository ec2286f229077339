package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/avoss/keyscout/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Show or modify configuration",
	Long: `View or change ks configuration stored in ~/.keyscout/config.toml.

With no arguments, shows all configuration settings.
With one argument, shows the value of that key.
With two arguments, sets the key to the given value.

Settings:
  data_dir              Directory holding the JSON data documents
  default_format        Default output format: "table" or "json"
  auto_apply_threshold  Confidence needed before ks apply commits an insight
  min_evidence_count    Observations needed before ks apply commits an insight
  typo_similarity       Similarity threshold for typo mining
  synonym_similarity    Similarity threshold for synonym mining
  max_failed_searches   Cap on stored failed searches
  max_insights          Cap on stored insights`,
	Example: `  ks config
  ks config data_dir
  ks config data_dir /custom/data
  ks config auto_apply_threshold 0.9
  ks config default_format json`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFrom(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		switch len(args) {
		case 0:
			return showConfig(cfg)
		case 1:
			return getConfig(cfg, args[0])
		default:
			return setConfig(cfg, args[0], args[1])
		}
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func showConfig(cfg *config.Config) error {
	if jsonOutput {
		return printJSON(os.Stdout, cfg)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "KEY\tVALUE")
	for _, key := range config.ValidKeys() {
		val, _ := cfg.Get(key)
		if val == "" {
			val = "(not set)"
		}
		fmt.Fprintf(w, "%s\t%s\n", key, val)
	}
	return w.Flush()
}

func getConfig(cfg *config.Config, key string) error {
	val, err := cfg.Get(key)
	if err != nil {
		return err
	}
	if val == "" {
		return nil
	}
	fmt.Println(val)
	return nil
}

func setConfig(cfg *config.Config, key, value string) error {
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.SaveTo(configPath); err != nil {
		return err
	}
	fmt.Printf("%s = %s\n", key, value)
	return nil
}
