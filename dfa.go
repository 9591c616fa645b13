package automaton

import (
	"fmt"
	"maps"

	"github.com/bits-and-blooms/bitset"
)

type dfaState struct {
	accept bool

	// Target index per symbol. A missing symbol goes to the dead state.
	next map[Symbol]int
}

func (s *dfaState) target(sym Symbol) int {
	if to, ok := s.next[sym]; ok {
		return to
	}
	return deadIndex
}

// DFA A deterministic automaton over named states. Every (state, symbol) pair has exactly one target;
// transitions that were never added go to the implicit dead state (see DeadState), which is part of the
// state table but never listed, counted or serialized.
type DFA struct {
	states   *StateTable[dfaState]
	alphabet Alphabet
	start    int

	// Derived from the state table by recount, never patched in place.
	stale          bool
	numAccept      int
	numTransitions int
}

func NewDFA() *DFA {
	return newDFA(2)
}

func newDFA(numStates int) *DFA {
	return &DFA{
		states:   NewStateTable[dfaState](numStates),
		alphabet: NewAlphabet(),
		start:    deadIndex,
	}
}

// AddState Adds a state. The first state added becomes the start state until SetStart is called.
func (d *DFA) AddState(name string, accept bool) error {
	idx, err := d.states.Add(name, dfaState{accept: accept})
	if err != nil {
		return err
	}
	if d.start == deadIndex {
		d.start = idx
	}
	d.stale = true
	return nil
}

func (d *DFA) SetStart(name string) error {
	idx, err := d.lookup(name)
	if err != nil {
		return err
	}
	d.start = idx
	return nil
}

func (d *DFA) SetAccept(name string, accept bool) error {
	idx, err := d.lookup(name)
	if err != nil {
		return err
	}
	d.states.State(idx).accept = accept
	d.stale = true
	return nil
}

// AddTransition Adds from --sym--> to. A transition to DeadState is the same as no transition.
func (d *DFA) AddTransition(from string, sym Symbol, to string) error {
	if !sym.IsValid() {
		return fmt.Errorf("%w: %v", ErrBadSymbol, sym)
	}
	src, err := d.lookup(from)
	if err != nil {
		return err
	}
	dst, ok := d.states.Lookup(to)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownState, to)
	}

	s := d.states.State(src)
	if prev, ok := s.next[sym]; ok {
		if prev == dst {
			return fmt.Errorf("%w: %s %v %s", ErrDuplicateTransition, from, sym, to)
		}
		return fmt.Errorf("%w: %s %v", ErrNondeterministic, from, sym)
	}
	d.alphabet.Add(sym)
	if dst == deadIndex {
		return nil
	}
	if s.next == nil {
		s.next = make(map[Symbol]int)
	}
	s.next[sym] = dst
	d.stale = true
	return nil
}

// lookup resolves a named, non dead state.
func (d *DFA) lookup(name string) (int, error) {
	if name == DeadState {
		return -1, ErrReservedName
	}
	idx, ok := d.states.Lookup(name)
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrUnknownState, name)
	}
	return idx, nil
}

// Start Returns the name of the start state, DeadState if the automaton has no states.
func (d *DFA) Start() string {
	return d.states.Name(d.start)
}

func (d *DFA) Alphabet() Alphabet {
	return d.alphabet.Clone()
}

// States Returns the state names in table order.
func (d *DFA) States() []string {
	return d.states.Names()
}

// AcceptStates Returns the accepting state names in table order.
func (d *DFA) AcceptStates() []string {
	names := make([]string, 0)
	for i, s := range d.states.All() {
		if s.accept {
			names = append(names, d.states.Name(i))
		}
	}
	return names
}

// IsAccept Returns true if the named state exists and is accepting.
func (d *DFA) IsAccept(name string) bool {
	idx, ok := d.states.Lookup(name)
	return ok && d.states.State(idx).accept
}

// Target Returns the state reached from the named state on sym. Unknown states and undefined
// transitions yield DeadState.
func (d *DFA) Target(from string, sym Symbol) string {
	idx, ok := d.states.Lookup(from)
	if !ok {
		return DeadState
	}
	return d.states.Name(d.step(idx, sym))
}

func (d *DFA) step(state int, sym Symbol) int {
	return d.states.State(state).target(sym)
}

// Accepts Returns true if the automaton accepts s. Bytes outside the alphabet lead to the dead state.
func (d *DFA) Accepts(s string) bool {
	state := d.start
	for i := 0; i < len(s) && state != deadIndex; i++ {
		state = d.step(state, Symbol(s[i]))
	}
	return d.states.State(state).accept
}

// NumStates How many named states this automaton has. The dead state is not counted.
func (d *DFA) NumStates() int {
	return d.states.NumStates()
}

// NumAcceptStates How many accepting states this automaton has.
func (d *DFA) NumAcceptStates() int {
	d.recountIfStale()
	return d.numAccept
}

// NumTransitions How many transitions to a non dead state this automaton has.
func (d *DFA) NumTransitions() int {
	d.recountIfStale()
	return d.numTransitions
}

func (d *DFA) recountIfStale() {
	if d.stale {
		d.recount()
	}
}

// recount rescans the transition table for the derived counts.
func (d *DFA) recount() {
	d.numAccept = 0
	d.numTransitions = 0
	symbols := d.alphabet.Symbols()
	for _, s := range d.states.All() {
		if s.accept {
			d.numAccept++
		}
		for _, sym := range symbols {
			if s.target(sym) != deadIndex {
				d.numTransitions++
			}
		}
	}
	d.stale = false
}

// Clone Returns a deep copy.
func (d *DFA) Clone() *DFA {
	c := &DFA{
		states:   NewStateTable[dfaState](d.states.NumStates()),
		alphabet: d.alphabet.Clone(),
		start:    d.start,
		stale:    true,
	}
	for i, s := range d.states.All() {
		// Indexes are preserved since states are re-added in table order.
		_, _ = c.states.Add(d.states.Name(i), dfaState{accept: s.accept, next: maps.Clone(s.next)})
	}
	return c
}

// reachable Returns the states reachable from start, found by a depth-first walk with an explicit stack.
// The dead state is never marked.
func (d *DFA) reachable() *bitset.BitSet {
	visited := bitset.New(uint(d.states.Len()))
	if d.start == deadIndex {
		return visited
	}
	symbols := d.alphabet.Symbols()

	stack := []int{d.start}
	visited.Set(uint(d.start))
	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		s := d.states.State(state)
		for _, sym := range symbols {
			next := s.target(sym)
			if next == deadIndex || visited.Test(uint(next)) {
				continue
			}
			visited.Set(uint(next))
			stack = append(stack, next)
		}
	}
	return visited
}

// RemoveUnreachable Deletes every state not reachable from the start state and recomputes the counts.
// The surviving states keep their relative order.
func (d *DFA) RemoveUnreachable() {
	keep := d.reachable()
	if int(keep.Count()) == d.states.NumStates() {
		d.recount()
		return
	}

	states, remap := d.states.compact(keep)
	for _, s := range states.All() {
		for sym, to := range s.next {
			// Targets of reachable states are reachable.
			s.next[sym] = remap[to]
		}
	}
	d.states = states
	d.start = remap[d.start]
	d.recount()
}
