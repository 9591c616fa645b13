package automaton

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// statePair A node of the product automaton of two DFAs.
type statePair struct {
	self, other int
}

// pairVisit remembers how a pair was first reached, to rebuild the input leading to it.
type pairVisit struct {
	parent int // index into the visit list, -1 for the start pair
	sym    Symbol
	pair   statePair
}

// Equals Reports whether d and other accept the same language. This is language equivalence, not
// structural equality: state names, state counts and alphabets may differ.
func (d *DFA) Equals(other *DFA) bool {
	_, differ := d.Counterexample(other)
	return !differ
}

// Counterexample Searches the product of d and other depth-first from the pair of start states for a
// pair where exactly one side accepts. If one is reachable, it returns an input string accepted by
// exactly one of the two automata and true.
func (d *DFA) Counterexample(other *DFA) (string, bool) {
	symbols := d.alphabet.Union(other.alphabet).Symbols()
	width := other.states.Len()
	visited := bitset.New(uint(d.states.Len() * width))
	mark := func(p statePair) bool {
		bit := uint(p.self*width + p.other)
		if visited.Test(bit) {
			return false
		}
		visited.Set(bit)
		return true
	}

	visits := []pairVisit{{parent: -1, pair: statePair{d.start, other.start}}}
	mark(visits[0].pair)
	stack := []int{0}
	for len(stack) > 0 {
		at := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p := visits[at].pair
		if d.states.State(p.self).accept != other.states.State(p.other).accept {
			return witness(visits, at), true
		}

		// Push in reverse so that lower symbols are explored first.
		for i := len(symbols) - 1; i >= 0; i-- {
			next := statePair{d.step(p.self, symbols[i]), other.step(p.other, symbols[i])}
			if !mark(next) {
				continue
			}
			visits = append(visits, pairVisit{parent: at, sym: symbols[i], pair: next})
			stack = append(stack, len(visits)-1)
		}
	}
	return "", false
}

func witness(visits []pairVisit, at int) string {
	input := make([]byte, 0)
	for ; visits[at].parent != -1; at = visits[at].parent {
		input = append(input, byte(visits[at].sym))
	}
	slices.Reverse(input)
	return string(input)
}
