package automaton

import (
	"strings"

	"github.com/bits-and-blooms/bitset"
)

// Symbol is a single input character of an automaton.
type Symbol byte

const (
	// Epsilon is the pseudo-symbol under which NFA epsilon-moves are stored. It is never part of an Alphabet.
	Epsilon = Symbol(0)

	// MaxSymbol is the largest symbol an automaton may use.
	MaxSymbol = Symbol(0x7E)

	alphabetSize = uint(MaxSymbol) + 1
)

// IsValid reports whether s may appear in an alphabet: a printable, non blank ASCII byte.
func (s Symbol) IsValid() bool {
	return s > ' ' && s <= MaxSymbol
}

func (s Symbol) String() string {
	if s == Epsilon {
		return `""`
	}
	return `"` + string(rune(s)) + `"`
}

// Alphabet The set of symbols observed across the transitions of one automaton. Symbols are always
// iterated in ascending order, which fixes the order of signatures and of serialized transitions.
type Alphabet struct {
	bits *bitset.BitSet
}

func NewAlphabet(symbols ...Symbol) Alphabet {
	a := Alphabet{bits: bitset.New(alphabetSize)}
	for _, s := range symbols {
		a.Add(s)
	}
	return a
}

// AlphabetOf Returns the alphabet made of the bytes of s.
func AlphabetOf(s string) Alphabet {
	a := NewAlphabet()
	for i := 0; i < len(s); i++ {
		a.Add(Symbol(s[i]))
	}
	return a
}

func (a *Alphabet) lazyInit() {
	if a.bits == nil {
		a.bits = bitset.New(alphabetSize)
	}
}

// Add Adds s to the alphabet. Epsilon and out of range symbols are ignored.
func (a *Alphabet) Add(s Symbol) {
	if !s.IsValid() {
		return
	}
	a.lazyInit()
	a.bits.Set(uint(s))
}

func (a Alphabet) Contains(s Symbol) bool {
	if a.bits == nil || !s.IsValid() {
		return false
	}
	return a.bits.Test(uint(s))
}

func (a Alphabet) Len() int {
	if a.bits == nil {
		return 0
	}
	return int(a.bits.Count())
}

// Symbols Returns the symbols in ascending order.
func (a Alphabet) Symbols() []Symbol {
	symbols := make([]Symbol, 0, a.Len())
	if a.bits == nil {
		return symbols
	}
	for i, ok := a.bits.NextSet(0); ok; i, ok = a.bits.NextSet(i + 1) {
		symbols = append(symbols, Symbol(i))
	}
	return symbols
}

// Union Returns a new alphabet holding the symbols of both a and b.
func (a Alphabet) Union(b Alphabet) Alphabet {
	u := a.Clone()
	if b.bits != nil {
		u.bits.InPlaceUnion(b.bits)
	}
	return u
}

func (a Alphabet) Clone() Alphabet {
	if a.bits == nil {
		return NewAlphabet()
	}
	return Alphabet{bits: a.bits.Clone()}
}

func (a Alphabet) Equal(b Alphabet) bool {
	return a.String() == b.String()
}

func (a Alphabet) String() string {
	var sb strings.Builder
	for _, s := range a.Symbols() {
		sb.WriteByte(byte(s))
	}
	return sb.String()
}
