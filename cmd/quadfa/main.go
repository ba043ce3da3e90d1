package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadfa/quadfa/internal/config"
	"github.com/quadfa/quadfa/internal/nfa"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "quadfa",
		Short: "quadfa - NFA simulation over a four-symbol alphabet",
		Long: `quadfa simulates a non-deterministic finite automaton over the
alphabet {0,1,2,3}, tracking every live computation path in parallel.

It reports the live states after each consumed symbol, announces
acceptance with the current triplet counts, and finishes every token
with a final verdict and the selected state-change path.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")
	rootCmd.PersistentFlags().String("config", "", "Config file (default: quadfa.yaml if present)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(),
		newTableCmd(),
		newHistoryCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "quadfa version %s\n", version)
			}
		},
	}
}

// loadConfig resolves the effective configuration for a command,
// respecting the persistent --config flag.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// resolveTable picks the transition table for a command: an explicit
// --table file wins, then --preset, then the configured defaults.
func resolveTable(cmd *cobra.Command, cfg *config.Config) (*nfa.Table, error) {
	if cmd.Flags().Changed("table") {
		path, _ := cmd.Flags().GetString("table")
		return nfa.LoadFile(path)
	}
	if cmd.Flags().Changed("preset") {
		name, _ := cmd.Flags().GetString("preset")
		return nfa.Preset(name)
	}
	if cfg.Run.TablePath != "" {
		return nfa.LoadFile(cfg.Run.TablePath)
	}
	return nfa.Preset(cfg.Run.Preset)
}
