package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/quadfa/quadfa/internal/history"
)

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs",
		Long: `List runs recorded by 'quadfa run', newest first.

Example:
  quadfa history --limit 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			limit, _ := cmd.Flags().GetInt("limit")

			if _, err := os.Stat(cfg.History.Path); os.IsNotExist(err) {
				if jsonOut {
					return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
						"runs":  []history.Record{},
						"count": 0,
					})
				}
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer store.Close()

			recs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("failed to list runs: %w", err)
			}

			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]any{
					"runs":  recs,
					"count": len(recs),
				})
			}

			if len(recs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded runs (%d):\n\n", len(recs))
			for i, rec := range recs {
				verdict := "[REJECT]"
				if rec.Accepted {
					verdict = "[ACCEPT]"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d. [%s] %s on %s: q%d %s\n",
					i+1, rec.CreatedAt.Format(time.RFC3339), rec.Token, rec.TableName,
					rec.FinalState, verdict)
				if rec.Error != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "   aborted: %s (after %d symbols)\n", rec.Error, rec.Consumed)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int("limit", 20, "Maximum runs to list (0 = all)")
	cmd.AddCommand(newHistoryClearCmd())

	return cmd
}

func newHistoryClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			if _, err := os.Stat(cfg.History.Path); os.IsNotExist(err) {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
				return nil
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("failed to open history store: %w", err)
			}
			defer store.Close()

			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"status": "cleared"})
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	}
}
