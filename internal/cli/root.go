// Package cli defines the cobra command tree for the ks CLI.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/avoss/keyscout/internal/config"
	"github.com/avoss/keyscout/internal/engine"
)

var (
	dataDir    string
	jsonOutput bool
)

// rootCmd is the top-level ks command.
var rootCmd = &cobra.Command{
	Use:   "ks",
	Short: "KeyScout - search keybindings and learn from failed queries",
	Long: `ks ranks keybindings against free-text queries using synonym, typo, and
intent dictionaries, and improves itself over time: failed searches are
recorded, mined for candidate dictionary edits, and applied automatically
once they accumulate enough evidence and confidence.

Durable state lives as JSON documents under ~/.keyscout (configurable via
--data-dir or ks config data_dir). All output commands support --json for
machine-readable output.`,
	Example: `  # Search a binding list
  ks search "volume up" --bindings bindings.json

  # Record a failed search and correlate the eventual selection
  ks record --query sceenshot --results 0
  ks select sceenshot "Print:Take screenshot"

  # Review and apply what the miner has learned
  ks insights
  ks apply`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg, err := config.LoadFrom(configPath)
		if err != nil {
			return
		}
		loadedConfig = cfg
		if cfg.DataDir != "" && !cmd.Flags().Changed("data-dir") {
			dataDir = cfg.DataDir
		}
		if cfg.DefaultFormat == "json" && !cmd.Flags().Changed("json") {
			jsonOutput = true
		}
	},
}

// configPath is the path to the config file, settable for testing.
var configPath = config.Path()

// loadedConfig holds the file config read in PersistentPreRun.
var loadedConfig = &config.Config{}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", config.DefaultDataDir(), "directory holding the JSON data documents")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
}

// openEngine opens the stores under the current data directory, with
// file-config thresholds overlaid on the persisted learning config.
func openEngine() *engine.Engine {
	e := engine.Open(dataDir)
	loadedConfig.ApplyTo(&e.Learn.Config)
	return e
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
