// Package runner drives one NFA engine per input token: it splits lines
// into tokens, maps characters onto the alphabet, aborts a token on an
// unaccepted character, and guarantees exactly one Finalize per engine on
// every exit path.
package runner

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/quadfa/quadfa/internal/history"
	"github.com/quadfa/quadfa/internal/logging"
	"github.com/quadfa/quadfa/internal/nfa"
	"github.com/quadfa/quadfa/internal/symbol"
)

// TokenResult is the outcome of simulating one token. Err is non-nil when
// an unaccepted character aborted the token early; the Final verdict then
// covers only the successfully consumed prefix.
type TokenResult struct {
	Token string
	Final nfa.Final
	Err   error
}

// Options configures a Runner. All fields are optional except Table.
type Options struct {
	// Separator splits input lines into tokens. Defaults to ",".
	Separator string

	// NewReporter, when set, supplies a per-token reporter for the
	// engine's side-effect reports.
	NewReporter func(token string) nfa.Reporter

	// Store, when set, records every finalized token.
	Store *history.Store

	// Log receives per-symbol debug output. Defaults to a no-op logger.
	Log *slog.Logger

	// Trace, when set, receives one JSONL event per consume/finalize.
	Trace *logging.TraceLogger
}

// Runner simulates tokens against a fixed table. Engines never outlive a
// single ProcessToken call and share no state with each other.
type Runner struct {
	table       *nfa.Table
	separator   string
	newReporter func(token string) nfa.Reporter
	store       *history.Store
	log         *slog.Logger
	trace       *logging.TraceLogger
}

// New creates a Runner for table.
func New(table *nfa.Table, opts Options) *Runner {
	sep := opts.Separator
	if sep == "" {
		sep = ","
	}
	log := opts.Log
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		table:       table,
		separator:   sep,
		newReporter: opts.NewReporter,
		store:       opts.Store,
		log:         log,
		trace:       opts.Trace,
	}
}

// SplitTokens splits line by sep, trims whitespace, and drops blanks.
func SplitTokens(line, sep string) []string {
	var tokens []string
	for _, raw := range strings.Split(line, sep) {
		tok := strings.TrimSpace(raw)
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ProcessLine simulates every token on the line, in order. Token-level
// errors are carried in the results, never returned.
func (r *Runner) ProcessLine(ctx context.Context, line string) []TokenResult {
	tokens := SplitTokens(line, r.separator)
	results := make([]TokenResult, 0, len(tokens))
	for _, tok := range tokens {
		results = append(results, r.ProcessToken(ctx, tok))
	}
	return results
}

// ProcessToken simulates a single token with a fresh engine. The engine is
// finalized exactly once, on every exit path, including an early abort on
// an unaccepted character.
func (r *Runner) ProcessToken(ctx context.Context, token string) (res TokenResult) {
	res.Token = token

	var rep nfa.Reporter
	if r.newReporter != nil {
		rep = r.newReporter(token)
	}
	eng := nfa.NewEngine(r.table, rep)

	defer func() {
		res.Final = eng.Finalize()
		r.trace.Log(map[string]any{
			"event":     "final",
			"token":     token,
			"state":     res.Final.State,
			"accepting": res.Final.Accepting,
			"path":      res.Final.Path,
			"held":      res.Final.Held,
		})
		r.record(ctx, res)
	}()

	for i := 0; i < len(token); i++ {
		sym, err := symbol.Of(token[i])
		if err != nil {
			res.Err = err
			r.log.Warn("aborting token", "token", token, "position", i, "err", err)
			return res
		}

		accepting := eng.Consume(sym)
		states := eng.LastStates()
		r.log.Debug("consumed symbol",
			"token", token, "symbol", sym.String(), "states", states,
			"accepting", accepting, "held", eng.Held())
		r.trace.Log(map[string]any{
			"event":     "consume",
			"token":     token,
			"symbol":    sym.String(),
			"states":    states,
			"accepting": accepting,
			"held":      eng.Held(),
		})
	}
	return res
}

// record persists a finished token to the history store, if one is
// configured. Store failures are logged, not fatal.
func (r *Runner) record(ctx context.Context, res TokenResult) {
	if r.store == nil {
		return
	}

	triplets := make(map[string]int, len(res.Final.Triplets))
	for sym, n := range res.Final.Triplets {
		triplets[sym.String()] = n
	}
	errText := ""
	if res.Err != nil {
		errText = res.Err.Error()
	}

	rec := history.Record{
		ID:         uuid.NewString(),
		Token:      res.Token,
		TableName:  r.table.Name(),
		FinalState: res.Final.State,
		Accepted:   res.Final.Accepting,
		Held:       res.Final.Held,
		Consumed:   res.Final.Consumed,
		Path:       res.Final.Path,
		Triplets:   triplets,
		Error:      errText,
	}
	if err := r.store.Add(ctx, rec); err != nil {
		r.log.Warn("failed to record run", "token", res.Token, "err", err)
	}
}
