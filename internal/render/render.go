// Package render formats transition tables for humans: a text grid and a
// Graphviz DOT export.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/quadfa/quadfa/internal/nfa"
	"github.com/quadfa/quadfa/internal/symbol"
)

// Grid writes the transition table as a grid: one row per state, one
// column per symbol, cells listing successor sets. Accepting states are
// tagged.
func Grid(w io.Writer, table *nfa.Table) error {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "table: %s\n", table.Name())
	fmt.Fprint(tw, "state")
	for _, sym := range symbol.All() {
		fmt.Fprintf(tw, "\t'%c'", sym.Char())
	}
	fmt.Fprintln(tw)

	for state := 0; state <= table.MaxState(); state++ {
		label := "q" + strconv.Itoa(state)
		if table.IsAccepting(state) {
			label += "*"
		}
		fmt.Fprint(tw, label)
		for _, sym := range symbol.All() {
			fmt.Fprintf(tw, "\t%s", stateSet(table.Next(state, sym)))
		}
		fmt.Fprintln(tw)
	}

	fmt.Fprintf(tw, "accepting: %s\n", stateSet(table.Accepting()))
	return tw.Flush()
}

// stateSet renders a successor set as {a,b} or "-" when empty.
func stateSet(states []int) string {
	if len(states) == 0 {
		return "-"
	}
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = strconv.Itoa(s)
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// DOT writes the table as a Graphviz digraph, doublecircle for accepting
// states.
func DOT(w io.Writer, table *nfa.Table) error {
	if _, err := fmt.Fprintln(w, "digraph NFA {"); err != nil {
		return err
	}
	fmt.Fprintln(w, `  rankdir=LR; node [shape=circle, fontname="Arial"];`)

	for state := 0; state <= table.MaxState(); state++ {
		shape := "circle"
		if table.IsAccepting(state) {
			shape = "doublecircle"
		}
		fmt.Fprintf(w, "  %d [label=\"q%d\", shape=%s];\n", state, state, shape)
		for _, sym := range symbol.All() {
			for _, next := range table.Next(state, sym) {
				fmt.Fprintf(w, "  %d -> %d [label=\"%c\"];\n", state, next, sym.Char())
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}
