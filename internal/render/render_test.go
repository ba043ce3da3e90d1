package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/quadfa/quadfa/internal/nfa"
)

func TestGrid(t *testing.T) {
	table, err := nfa.Preset(nfa.PresetFive)
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}

	var buf bytes.Buffer
	if err := Grid(&buf, table); err != nil {
		t.Fatalf("Grid: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "table: five") {
		t.Error("grid missing table name")
	}
	// One row per state, accepting states starred.
	for _, row := range []string{"q0", "q1", "q2*", "q3*", "q4*"} {
		if !strings.Contains(out, row) {
			t.Errorf("grid missing row label %q", row)
		}
	}
	// The (0, '2') -> {0,1} cell of the five table.
	if !strings.Contains(out, "{0,1}") {
		t.Error("grid missing successor set {0,1}")
	}
	if !strings.Contains(out, "accepting: {2,3,4}") {
		t.Error("grid missing accepting summary")
	}
}

func TestGridMarksEmptyCells(t *testing.T) {
	table, err := nfa.Preset(nfa.PresetTen)
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}

	var buf bytes.Buffer
	if err := Grid(&buf, table); err != nil {
		t.Fatalf("Grid: %v", err)
	}
	// State 9 has no outgoing transitions: all four cells empty.
	var q9 string
	for _, line := range strings.Split(buf.String(), "\n") {
		if strings.HasPrefix(line, "q9*") {
			q9 = line
		}
	}
	if q9 == "" {
		t.Fatal("grid missing q9 row")
	}
	if strings.Count(q9, "-") != 4 {
		t.Errorf("q9 row %q should have 4 empty cells", q9)
	}
}

func TestDOT(t *testing.T) {
	table, err := nfa.Preset(nfa.PresetFive)
	if err != nil {
		t.Fatalf("Preset: %v", err)
	}

	var buf bytes.Buffer
	if err := DOT(&buf, table); err != nil {
		t.Fatalf("DOT: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "digraph NFA {") {
		t.Error("DOT output missing digraph header")
	}
	if !strings.Contains(out, `2 [label="q2", shape=doublecircle];`) {
		t.Error("accepting state 2 not doublecircled")
	}
	if !strings.Contains(out, `0 [label="q0", shape=circle];`) {
		t.Error("state 0 not rendered as plain circle")
	}
	if !strings.Contains(out, `0 -> 1 [label="2"];`) {
		t.Error("missing edge 0 -> 1 on '2'")
	}
	if !strings.HasSuffix(strings.TrimSpace(out), "}") {
		t.Error("DOT output not closed")
	}
}
