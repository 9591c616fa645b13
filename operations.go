package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

// IsEmpty
// Returns true if the given automaton accepts no strings.
func IsEmpty(d *DFA) bool {
	if d.start == deadIndex {
		// Common case: no states
		return true
	}
	if d.states.State(d.start).accept {
		// Apparently common case: it accepts the empty string
		return false
	}

	symbols := d.alphabet.Symbols()
	seen := bitset.New(uint(d.states.Len()))
	workList := []int{d.start}
	seen.Set(uint(d.start))

	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		if d.states.State(state).accept {
			return false
		}
		for _, sym := range symbols {
			next := d.step(state, sym)
			if next != deadIndex && !seen.Test(uint(next)) {
				workList = append(workList, next)
				seen.Set(uint(next))
			}
		}
	}
	return true
}

// IsTotal
// Returns true if the given automaton accepts every string over its alphabet.
func IsTotal(d *DFA) bool {
	if d.start == deadIndex {
		return false
	}

	symbols := d.alphabet.Symbols()
	seen := bitset.New(uint(d.states.Len()))
	workList := []int{d.start}
	seen.Set(uint(d.start))

	for len(workList) > 0 {
		state := workList[0]
		workList = workList[1:]

		if !d.states.State(state).accept {
			return false
		}
		for _, sym := range symbols {
			next := d.step(state, sym)
			if next == deadIndex {
				return false
			}
			if !seen.Test(uint(next)) {
				workList = append(workList, next)
				seen.Set(uint(next))
			}
		}
	}
	return true
}

// Run Returns true if the automaton accepts s.
func Run(d *DFA, s string) bool {
	return d.Accepts(s)
}

// RunBytes Returns true if the automaton accepts the given bytes.
func RunBytes(d *DFA, s []byte) bool {
	state := d.start
	for i := 0; i < len(s) && state != deadIndex; i++ {
		state = d.step(state, Symbol(s[i]))
	}
	return d.states.State(state).accept
}
