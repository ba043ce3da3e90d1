package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quadfa/quadfa/internal/render"
)

func newTableCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "table",
		Short: "Print the transition table",
		Long: `Print the configured transition table as a grid: one row per state,
one column per symbol, accepting states starred.

Examples:
  quadfa table
  quadfa table --preset ten
  quadfa table --table mytable.yaml --dot table.dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			table, err := resolveTable(cmd, cfg)
			if err != nil {
				return err
			}

			if dotPath, _ := cmd.Flags().GetString("dot"); dotPath != "" {
				f, err := os.Create(dotPath)
				if err != nil {
					return fmt.Errorf("failed to create DOT file: %w", err)
				}
				defer f.Close()
				if err := render.DOT(f, table); err != nil {
					return fmt.Errorf("failed to write DOT file: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", dotPath)
				return nil
			}

			return render.Grid(cmd.OutOrStdout(), table)
		},
	}

	cmd.Flags().String("preset", "", "Built-in table: five or ten")
	cmd.Flags().String("table", "", "YAML table definition file")
	cmd.Flags().String("dot", "", "Write Graphviz DOT to this path instead of printing the grid")

	return cmd
}
