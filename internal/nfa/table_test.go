package nfa

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/quadfa/quadfa/internal/symbol"
)

func TestNewTableDeduplicatesAndSorts(t *testing.T) {
	table, err := NewTable("t", []Rule{
		{From: 0, Sym: symbol.Sym2, To: []int{1, 0, 1}},
		{From: 0, Sym: symbol.Sym2, To: []int{0}},
	}, []int{1})
	if err != nil {
		t.Fatalf("NewTable: %v", err)
	}

	if got := table.Next(0, symbol.Sym2); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("Next(0, '2') = %v, want [0 1]", got)
	}
	if got := table.Next(0, symbol.Sym3); len(got) != 0 {
		t.Errorf("Next(0, '3') = %v, want empty", got)
	}
	if table.MaxState() != 1 {
		t.Errorf("MaxState = %d, want 1", table.MaxState())
	}
}

func TestNewTableRejectsBadInput(t *testing.T) {
	tests := []struct {
		name      string
		rules     []Rule
		accepting []int
	}{
		{
			name:  "negative from state",
			rules: []Rule{{From: -1, Sym: symbol.Sym0, To: []int{0}}},
		},
		{
			name:  "negative successor",
			rules: []Rule{{From: 0, Sym: symbol.Sym0, To: []int{-2}}},
		},
		{
			name:      "unknown accepting state",
			rules:     []Rule{{From: 0, Sym: symbol.Sym0, To: []int{1}}},
			accepting: []int{7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewTable("t", tt.rules, tt.accepting); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestPresetShapes(t *testing.T) {
	five := mustPreset(t, PresetFive)
	if got := five.Accepting(); !reflect.DeepEqual(got, []int{2, 3, 4}) {
		t.Errorf("five accepting = %v, want [2 3 4]", got)
	}
	if five.MaxState() != 4 {
		t.Errorf("five MaxState = %d, want 4", five.MaxState())
	}
	// Fixed by the table definition: (0, '2') -> {0, 1}.
	if got := five.Next(0, symbol.Sym2); !reflect.DeepEqual(got, []int{0, 1}) {
		t.Errorf("five Next(0, '2') = %v, want [0 1]", got)
	}

	ten := mustPreset(t, PresetTen)
	if got := ten.Accepting(); !reflect.DeepEqual(got, []int{9}) {
		t.Errorf("ten accepting = %v, want [9]", got)
	}
	if ten.MaxState() != 9 {
		t.Errorf("ten MaxState = %d, want 9", ten.MaxState())
	}

	if _, err := Preset("nope"); err == nil {
		t.Error("Preset(nope): expected error")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "table.yaml")
	content := `
name: custom
accepting: [2]
transitions:
  - {from: 0, symbol: "1", to: [1]}
  - {from: 1, symbol: "2", to: [2, 1]}
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write table file: %v", err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if table.Name() != "custom" {
		t.Errorf("Name = %q, want custom", table.Name())
	}
	if got := table.Next(1, symbol.Sym2); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Next(1, '2') = %v, want [1 2]", got)
	}
	if !table.IsAccepting(2) || table.IsAccepting(1) {
		t.Error("accepting set not loaded correctly")
	}
}

func TestLoadFileRejectsBadDefinitions(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "symbol outside alphabet",
			content: "transitions:\n  - {from: 0, symbol: \"x\", to: [1]}\n",
			wantErr: "unaccepted symbol",
		},
		{
			name:    "multi-char symbol",
			content: "transitions:\n  - {from: 0, symbol: \"01\", to: [1]}\n",
			wantErr: "single character",
		},
		{
			name:    "no transitions",
			content: "name: empty\naccepting: []\n",
			wantErr: "no transitions",
		},
		{
			name:    "not yaml",
			content: "{{{{",
			wantErr: "parse",
		},
	}

	dir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatalf("write: %v", err)
			}
			_, err := LoadFile(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
