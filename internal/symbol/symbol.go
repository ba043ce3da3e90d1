// Package symbol defines the closed four-symbol input alphabet.
// Every input character maps to exactly one Symbol; anything else is
// rejected with an UnacceptedSymbolError.
package symbol

import "fmt"

// Symbol is one of the four input symbols. The zero value is Sym0.
type Symbol uint8

const (
	Sym0 Symbol = iota
	Sym1
	Sym2
	Sym3
)

// Count is the size of the alphabet.
const Count = 4

// UnacceptedSymbolError reports a character outside the alphabet.
type UnacceptedSymbolError struct {
	Char byte
}

func (e *UnacceptedSymbolError) Error() string {
	return fmt.Sprintf("unaccepted symbol %q", e.Char)
}

// Of maps a single input character to its Symbol. It is pure and returns
// an *UnacceptedSymbolError for any character outside '0'..'3'.
func Of(ch byte) (Symbol, error) {
	if ch < '0' || ch > '3' {
		return 0, &UnacceptedSymbolError{Char: ch}
	}
	return Symbol(ch - '0'), nil
}

// All returns the alphabet in character order.
func All() [Count]Symbol {
	return [Count]Symbol{Sym0, Sym1, Sym2, Sym3}
}

// Char returns the source character for s.
func (s Symbol) Char() byte { return byte(s) + '0' }

func (s Symbol) String() string {
	if s > Sym3 {
		return fmt.Sprintf("Symbol(%d)", uint8(s))
	}
	return string(s.Char())
}
