package symbol

import (
	"errors"
	"testing"
)

func TestOfAcceptsAlphabet(t *testing.T) {
	tests := []struct {
		ch   byte
		want Symbol
	}{
		{'0', Sym0},
		{'1', Sym1},
		{'2', Sym2},
		{'3', Sym3},
	}

	for _, tt := range tests {
		got, err := Of(tt.ch)
		if err != nil {
			t.Errorf("Of(%q): unexpected error: %v", tt.ch, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Of(%q) = %v, want %v", tt.ch, got, tt.want)
		}
	}
}

func TestOfRejectsEverythingElse(t *testing.T) {
	for c := 0; c < 256; c++ {
		ch := byte(c)
		if ch >= '0' && ch <= '3' {
			continue
		}
		_, err := Of(ch)
		if err == nil {
			t.Fatalf("Of(%q): expected error, got nil", ch)
		}
		var unaccepted *UnacceptedSymbolError
		if !errors.As(err, &unaccepted) {
			t.Fatalf("Of(%q): error %v is not an UnacceptedSymbolError", ch, err)
		}
		if unaccepted.Char != ch {
			t.Fatalf("Of(%q): error carries char %q", ch, unaccepted.Char)
		}
	}
}

func TestErrorMessageNamesOffendingChar(t *testing.T) {
	_, err := Of('x')
	if err == nil {
		t.Fatal("expected error for 'x'")
	}
	if got := err.Error(); got != "unaccepted symbol 'x'" {
		t.Errorf("unexpected error message: %s", got)
	}
}

func TestCharRoundTrip(t *testing.T) {
	for _, s := range All() {
		got, err := Of(s.Char())
		if err != nil {
			t.Fatalf("Of(Char(%v)): %v", s, err)
		}
		if got != s {
			t.Errorf("round trip of %v gave %v", s, got)
		}
	}
}
