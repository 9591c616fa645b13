package automaton

import "fmt"

// Automata Factory for small deterministic automata.
type Automata struct {
}

var defaultAutomata = &Automata{}

// MakeEmpty
// Returns a new (deterministic) automaton with the empty language.
func (*Automata) MakeEmpty() *DFA {
	a := NewDFA()
	_ = a.AddState("s0", false)
	a.recount()
	return a
}

// MakeEmptyString
// Returns a new (deterministic) automaton that accepts only the empty string.
func (*Automata) MakeEmptyString() *DFA {
	a := NewDFA()
	_ = a.AddState("s0", true)
	a.recount()
	return a
}

// MakeAnyString
// Returns a new (deterministic) automaton that accepts all strings over the alphabet.
func (*Automata) MakeAnyString(alphabet Alphabet) *DFA {
	a := NewDFA()
	_ = a.AddState("s0", true)
	for _, sym := range alphabet.Symbols() {
		_ = a.AddTransition("s0", sym, "s0")
	}
	a.recount()
	return a
}

// MakeString
// Returns a new (deterministic) automaton that accepts the single given string.
func (*Automata) MakeString(s string) (*DFA, error) {
	a := NewDFA()
	if err := a.AddState("s0", len(s) == 0); err != nil {
		return nil, err
	}
	for i := 0; i < len(s); i++ {
		next := fmt.Sprintf("s%d", i+1)
		if err := a.AddState(next, i == len(s)-1); err != nil {
			return nil, err
		}
		if err := a.AddTransition(fmt.Sprintf("s%d", i), Symbol(s[i]), next); err != nil {
			return nil, err
		}
	}
	a.recount()
	return a, nil
}
