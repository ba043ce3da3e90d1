// Package nfa implements a non-deterministic finite automaton simulator
// over the four-symbol alphabet. A Table fixes the transition relation and
// the accepting states; an Engine tracks every live computation path for a
// single token.
package nfa

import (
	"fmt"
	"sort"

	"github.com/quadfa/quadfa/internal/symbol"
)

// Rule is one transition-table entry: (From, Sym) -> To.
type Rule struct {
	From int
	Sym  symbol.Symbol
	To   []int
}

type transKey struct {
	state int
	sym   symbol.Symbol
}

// Table is an immutable transition table plus its accepting-state set.
// State identifiers are non-negative integers; 0 is the start state.
type Table struct {
	name      string
	trans     map[transKey][]int
	accepting map[int]bool
	maxState  int
}

// NewTable builds a table from rules and an accepting set. Successor lists
// are deduplicated and sorted. Negative state identifiers are rejected, as
// are accepting states never mentioned by any rule.
func NewTable(name string, rules []Rule, accepting []int) (*Table, error) {
	t := &Table{
		name:      name,
		trans:     make(map[transKey][]int, len(rules)),
		accepting: make(map[int]bool, len(accepting)),
	}

	known := map[int]bool{0: true}
	for _, r := range rules {
		if r.From < 0 {
			return nil, fmt.Errorf("rule from state %d: states must be non-negative", r.From)
		}
		known[r.From] = true
		key := transKey{state: r.From, sym: r.Sym}
		seen := make(map[int]bool, len(r.To))
		for _, to := range t.trans[key] {
			seen[to] = true
		}
		for _, to := range r.To {
			if to < 0 {
				return nil, fmt.Errorf("rule %d on %s: successor %d is negative", r.From, r.Sym, to)
			}
			known[to] = true
			if !seen[to] {
				seen[to] = true
				t.trans[key] = append(t.trans[key], to)
			}
		}
		sort.Ints(t.trans[key])
	}

	for _, a := range accepting {
		if !known[a] {
			return nil, fmt.Errorf("accepting state %d does not appear in any rule", a)
		}
		t.accepting[a] = true
	}

	for s := range known {
		if s > t.maxState {
			t.maxState = s
		}
	}
	return t, nil
}

// Name returns the table's preset or file name.
func (t *Table) Name() string { return t.name }

// Next returns the successor set for (state, sym). The returned slice must
// not be mutated; an empty or nil slice means no transition.
func (t *Table) Next(state int, sym symbol.Symbol) []int {
	return t.trans[transKey{state: state, sym: sym}]
}

// IsAccepting reports whether state belongs to the accepting set.
func (t *Table) IsAccepting(state int) bool { return t.accepting[state] }

// MaxState returns the largest state identifier mentioned by the table.
func (t *Table) MaxState() int { return t.maxState }

// Accepting returns the accepting states in ascending order.
func (t *Table) Accepting() []int {
	out := make([]int, 0, len(t.accepting))
	for s := range t.accepting {
		out = append(out, s)
	}
	sort.Ints(out)
	return out
}
