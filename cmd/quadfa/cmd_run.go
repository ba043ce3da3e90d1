package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quadfa/quadfa/internal/history"
	"github.com/quadfa/quadfa/internal/logging"
	"github.com/quadfa/quadfa/internal/nfa"
	"github.com/quadfa/quadfa/internal/runner"
	"github.com/quadfa/quadfa/internal/symbol"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [tokens...]",
		Short: "Simulate tokens against the transition table",
		Long: `Simulate one or more tokens against the configured transition table.

Each argument is split by the separator into tokens; each token is fed
symbol by symbol into a fresh engine. With no arguments, quadfa reads
lines interactively from stdin.

Examples:
  quadfa run 2223
  quadfa run "2223,12,301" --preset ten
  quadfa run --table mytable.yaml 0123
  quadfa run            # interactive prompt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("separator") {
				cfg.Run.Separator, _ = cmd.Flags().GetString("separator")
			}
			if noHist, _ := cmd.Flags().GetBool("no-history"); noHist {
				cfg.History.Enabled = false
			}

			table, err := resolveTable(cmd, cfg)
			if err != nil {
				return err
			}

			jsonOut, _ := cmd.Flags().GetBool("json")
			log := logging.NewLogger(cfg.Logging.Level, cmd.ErrOrStderr())
			trace := logging.NewTraceLogger(".quadfa", cfg.Logging.Level)
			defer trace.Close()

			var store *history.Store
			if cfg.History.Enabled {
				store, err = history.Open(cfg.History.Path)
				if err != nil {
					return fmt.Errorf("failed to open history store: %w", err)
				}
				defer store.Close()
			}

			opts := runner.Options{
				Separator: cfg.Run.Separator,
				Store:     store,
				Log:       log,
				Trace:     trace,
			}
			out := cmd.OutOrStdout()
			if !jsonOut {
				opts.NewReporter = func(token string) nfa.Reporter {
					fmt.Fprintf(out, "token: %s\n", token)
					return &consoleReporter{w: out}
				}
			}
			r := runner.New(table, opts)

			ctx := cmd.Context()
			var results []runner.TokenResult

			if len(args) > 0 {
				for _, line := range args {
					results = append(results, r.ProcessLine(ctx, line)...)
				}
			} else {
				results, err = runPrompt(ctx, r, cmd.InOrStdin(), out, jsonOut)
				if err != nil {
					return err
				}
			}

			if jsonOut {
				return json.NewEncoder(out).Encode(map[string]any{
					"table":   table.Name(),
					"results": jsonResults(results),
					"count":   len(results),
				})
			}

			for _, res := range results {
				if res.Err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "token %s: %v (finalized after %d symbols)\n",
						res.Token, res.Err, res.Final.Consumed)
				}
			}
			return nil
		},
	}

	cmd.Flags().String("preset", "", "Built-in table: five or ten")
	cmd.Flags().String("table", "", "YAML table definition file")
	cmd.Flags().String("separator", ",", "Token separator")
	cmd.Flags().Bool("no-history", false, "Do not record runs in the history store")

	return cmd
}

// runPrompt reads lines interactively until EOF or "exit".
func runPrompt(ctx context.Context, r *runner.Runner, in io.Reader, out io.Writer, jsonOut bool) ([]runner.TokenResult, error) {
	var results []runner.TokenResult
	sc := bufio.NewScanner(in)
	for {
		if !jsonOut {
			fmt.Fprint(out, "> ")
		}
		if !sc.Scan() {
			break
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		results = append(results, r.ProcessLine(ctx, line)...)
	}
	return results, sc.Err()
}

// jsonResults flattens token results for machine consumption.
func jsonResults(results []runner.TokenResult) []map[string]any {
	out := make([]map[string]any, 0, len(results))
	for _, res := range results {
		entry := map[string]any{
			"token":       res.Token,
			"accepted":    res.Final.Accepting,
			"final_state": res.Final.State,
			"path":        res.Final.Path,
			"triplets":    tripletStrings(res.Final.Triplets),
			"held":        res.Final.Held,
			"consumed":    res.Final.Consumed,
		}
		if res.Err != nil {
			entry["error"] = res.Err.Error()
		}
		out = append(out, entry)
	}
	return out
}

// consoleReporter prints the engine's reports in the human format: live
// states after each transition, acceptance notices with triplet counts,
// and the final verdict with the selected path.
type consoleReporter struct {
	w io.Writer
}

func (c *consoleReporter) Transition(states []int) {
	fmt.Fprintf(c.w, "  states: %s\n", stateSet(states))
}

func (c *consoleReporter) Accepted(states []int, triplets map[symbol.Symbol]int) {
	fmt.Fprintf(c.w, "  accepting at %s", stateSet(states))
	if s := formatTriplets(triplets); s != "" {
		fmt.Fprintf(c.w, "  triplets: %s", s)
	}
	fmt.Fprintln(c.w)
}

func (c *consoleReporter) Final(state int, accepting bool, path []int) {
	verdict := "[REJECT]"
	if accepting {
		verdict = "[ACCEPT]"
	}
	fmt.Fprintf(c.w, "  final: q%d %s  path: %s\n", state, verdict, formatPath(path))
}

func stateSet(states []int) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = strconv.Itoa(s)
	}
	return "q{" + strings.Join(parts, ",") + "}"
}

func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, s := range path {
		parts[i] = "q" + strconv.Itoa(s)
	}
	return strings.Join(parts, " -> ")
}

func formatTriplets(triplets map[symbol.Symbol]int) string {
	var parts []string
	for _, sym := range symbol.All() {
		if n, ok := triplets[sym]; ok {
			parts = append(parts, fmt.Sprintf("%s=%d", sym, n))
		}
	}
	return strings.Join(parts, " ")
}

func tripletStrings(triplets map[symbol.Symbol]int) map[string]int {
	out := make(map[string]int, len(triplets))
	for sym, n := range triplets {
		out[sym.String()] = n
	}
	return out
}
