package nfa

import (
	"fmt"
	"sort"

	"github.com/quadfa/quadfa/internal/symbol"
)

// PresetFive is the 5-state table with accepting states {2,3,4}.
const PresetFive = "five"

// PresetTen is the 10-state table with the single accepting state {9}.
const PresetTen = "ten"

// Preset returns one of the built-in tables by name.
func Preset(name string) (*Table, error) {
	switch name {
	case PresetFive:
		return fiveStateTable(), nil
	case PresetTen:
		return tenStateTable(), nil
	default:
		return nil, fmt.Errorf("unknown preset %q (use: %s|%s)", name, PresetFive, PresetTen)
	}
}

// Presets lists the built-in table names in stable order.
func Presets() []string {
	names := []string{PresetFive, PresetTen}
	sort.Strings(names)
	return names
}

func fiveStateTable() *Table {
	rules := []Rule{
		{From: 0, Sym: symbol.Sym0, To: []int{0}},
		{From: 0, Sym: symbol.Sym1, To: []int{1}},
		{From: 0, Sym: symbol.Sym2, To: []int{0, 1}},
		{From: 1, Sym: symbol.Sym1, To: []int{1, 2}},
		{From: 1, Sym: symbol.Sym2, To: []int{1, 2}},
		{From: 1, Sym: symbol.Sym3, To: []int{3}},
		{From: 2, Sym: symbol.Sym0, To: []int{2}},
		{From: 2, Sym: symbol.Sym2, To: []int{2}},
		{From: 2, Sym: symbol.Sym3, To: []int{3, 4}},
		{From: 3, Sym: symbol.Sym2, To: []int{3}},
		{From: 3, Sym: symbol.Sym3, To: []int{4}},
	}
	t, err := NewTable(PresetFive, rules, []int{2, 3, 4})
	if err != nil {
		panic(err) // preset tables are fixed; a failure here is a programming error
	}
	return t
}

func tenStateTable() *Table {
	rules := []Rule{
		{From: 0, Sym: symbol.Sym0, To: []int{0, 1}},
		{From: 0, Sym: symbol.Sym1, To: []int{0}},
		{From: 0, Sym: symbol.Sym2, To: []int{0}},
		{From: 0, Sym: symbol.Sym3, To: []int{0}},
		{From: 1, Sym: symbol.Sym1, To: []int{2}},
		{From: 2, Sym: symbol.Sym2, To: []int{3}},
		{From: 3, Sym: symbol.Sym3, To: []int{4}},
		{From: 4, Sym: symbol.Sym0, To: []int{5}},
		{From: 5, Sym: symbol.Sym1, To: []int{6}},
		{From: 6, Sym: symbol.Sym2, To: []int{7}},
		{From: 7, Sym: symbol.Sym3, To: []int{8}},
		{From: 8, Sym: symbol.Sym0, To: []int{9}},
	}
	t, err := NewTable(PresetTen, rules, []int{9})
	if err != nil {
		panic(err)
	}
	return t
}
