package nfa

import (
	"sort"

	"github.com/quadfa/quadfa/internal/symbol"
)

// Reporter receives the engine's side-effect reports. Implementations must
// not retain the slices they are handed. A nil Reporter disables reporting.
type Reporter interface {
	// Transition is called after every Consume that did not hit an
	// already-held engine: with the new live states on success, or with
	// the unchanged states when the consume killed every path.
	Transition(states []int)

	// Accepted is called when a Consume produced an accepting
	// configuration, with the live states and the current triplet counts.
	Accepted(states []int, triplets map[symbol.Symbol]int)

	// Final is called once from Finalize with the maximal final state,
	// its accepting/rejecting label, and the selected state-change path.
	Final(state int, accepting bool, path []int)
}

// Final is the outcome of a finished simulation.
type Final struct {
	// State is the maximum state identifier among the last states of all
	// live paths.
	State int

	// Accepting reports whether State belongs to the accepting set.
	Accepting bool

	// Path is the state-change history selected among all live paths:
	// greatest sum of visited states first, greatest final state as the
	// tie-break.
	Path []int

	// Triplets holds the per-symbol triplet counters.
	Triplets map[symbol.Symbol]int

	// Held reports whether the engine froze before the token ended.
	Held bool

	// Consumed is the number of successfully consumed symbols.
	Consumed int
}

// Engine simulates one token against a Table, tracking every live
// computation path. Create a fresh Engine per token; it is not safe for
// concurrent use, and symbols must be consumed strictly left to right.
type Engine struct {
	table    *Table
	reporter Reporter

	// paths all share the same length: 1 + number of consumed symbols.
	paths [][]int
	held  bool

	streaks  [symbol.Count]int
	triplets [symbol.Count]int
	last     symbol.Symbol
	hasLast  bool
	consumed int
	final    bool
}

// NewEngine creates an engine positioned on the start state with no
// symbols consumed. reporter may be nil.
func NewEngine(table *Table, reporter Reporter) *Engine {
	return &Engine{
		table:    table,
		reporter: reporter,
		paths:    [][]int{{0}},
	}
}

// Held reports whether every path has died; once true, Consume is a no-op.
func (e *Engine) Held() bool { return e.held }

// LastStates returns the deduplicated, sorted last states of all live paths.
func (e *Engine) LastStates() []int {
	seen := make(map[int]bool, len(e.paths))
	var states []int
	for _, p := range e.paths {
		last := p[len(p)-1]
		if !seen[last] {
			seen[last] = true
			states = append(states, last)
		}
	}
	sort.Ints(states)
	return states
}

// Triplets returns a copy of the per-symbol triplet counters.
func (e *Engine) Triplets() map[symbol.Symbol]int {
	out := make(map[symbol.Symbol]int)
	for _, s := range symbol.All() {
		if e.triplets[s] > 0 {
			out[s] = e.triplets[s]
		}
	}
	return out
}

// Consume advances every live path by sym. It returns true iff the
// resulting configuration is accepting. While held it does nothing and
// returns false.
func (e *Engine) Consume(sym symbol.Symbol) bool {
	if e.held || e.final {
		return false
	}

	var candidates [][]int
	for _, p := range e.paths {
		last := p[len(p)-1]
		for _, next := range e.table.Next(last, sym) {
			np := make([]int, len(p)+1)
			copy(np, p)
			np[len(p)] = next
			candidates = append(candidates, np)
		}
	}

	if len(candidates) == 0 {
		// Every path died at once: freeze, keep the old paths for the
		// final report, touch no counters.
		e.held = true
		if e.reporter != nil {
			e.reporter.Transition(e.LastStates())
		}
		return false
	}

	e.paths = candidates
	e.consumed++
	e.count(sym)

	states := e.LastStates()
	if e.reporter != nil {
		e.reporter.Transition(states)
	}

	for _, s := range states {
		if e.table.IsAccepting(s) {
			if e.reporter != nil {
				e.reporter.Accepted(states, e.Triplets())
			}
			return true
		}
	}
	return false
}

// count updates the streak and triplet counters for a successful
// consumption of sym.
func (e *Engine) count(sym symbol.Symbol) {
	if !e.hasLast || e.last != sym {
		for i := range e.streaks {
			e.streaks[i] = 0
		}
	}
	e.streaks[sym]++
	if e.streaks[sym] >= 3 {
		e.triplets[sym]++
	}
	e.last = sym
	e.hasLast = true
}

// Finalize closes the simulation and reports the verdict. It must be
// called exactly once, after the last symbol or after an early abort;
// further Consume calls are ignored.
func (e *Engine) Finalize() Final {
	e.final = true

	best := e.paths[0]
	bestSum := pathSum(best)
	maxState := best[len(best)-1]
	for _, p := range e.paths[1:] {
		last := p[len(p)-1]
		if last > maxState {
			maxState = last
		}
		sum := pathSum(p)
		if sum > bestSum || (sum == bestSum && last > best[len(best)-1]) {
			best, bestSum = p, sum
		}
	}

	accepting := e.table.IsAccepting(maxState)
	if e.reporter != nil {
		e.reporter.Final(maxState, accepting, best)
	}

	return Final{
		State:     maxState,
		Accepting: accepting,
		Path:      best,
		Triplets:  e.Triplets(),
		Held:      e.held,
		Consumed:  e.consumed,
	}
}

func pathSum(p []int) int {
	sum := 0
	for _, s := range p {
		sum += s
	}
	return sum
}
