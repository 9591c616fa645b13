package automaton

import (
	"fmt"
	"strconv"

	"github.com/bits-and-blooms/bitset"
)

type nfaState struct {
	accept bool

	// Target indexes per symbol; epsilon-moves are kept under Epsilon.
	next map[Symbol]*bitset.BitSet
}

// NFA A nondeterministic automaton with epsilon-moves over named states. A (state, symbol) pair has
// zero or more targets; the dead state convention is the same as for DFA.
type NFA struct {
	states   *StateTable[nfaState]
	alphabet Alphabet
	start    int

	// Derived from the state table by recount, never patched in place.
	stale          bool
	numAccept      int
	numTransitions int
}

func NewNFA() *NFA {
	return &NFA{
		states:   NewStateTable[nfaState](2),
		alphabet: NewAlphabet(),
		start:    deadIndex,
	}
}

// AddState Adds a state. The first state added becomes the start state until SetStart is called.
func (n *NFA) AddState(name string, accept bool) error {
	idx, err := n.states.Add(name, nfaState{accept: accept})
	if err != nil {
		return err
	}
	if n.start == deadIndex {
		n.start = idx
	}
	n.stale = true
	return nil
}

func (n *NFA) SetStart(name string) error {
	idx, err := n.lookup(name)
	if err != nil {
		return err
	}
	n.start = idx
	return nil
}

func (n *NFA) SetAccept(name string, accept bool) error {
	idx, err := n.lookup(name)
	if err != nil {
		return err
	}
	n.states.State(idx).accept = accept
	n.stale = true
	return nil
}

// AddTransition Adds from --sym--> to; sym may be Epsilon.
func (n *NFA) AddTransition(from string, sym Symbol, to string) error {
	if sym != Epsilon && !sym.IsValid() {
		return fmt.Errorf("%w: %v", ErrBadSymbol, sym)
	}
	src, err := n.lookup(from)
	if err != nil {
		return err
	}
	dst, err := n.lookup(to)
	if err != nil {
		return err
	}

	s := n.states.State(src)
	if s.next == nil {
		s.next = make(map[Symbol]*bitset.BitSet)
	}
	targets, ok := s.next[sym]
	if !ok {
		targets = bitset.New(uint(n.states.Len()))
		s.next[sym] = targets
	}
	if targets.Test(uint(dst)) {
		return fmt.Errorf("%w: %s %v %s", ErrDuplicateTransition, from, sym, to)
	}
	targets.Set(uint(dst))
	n.alphabet.Add(sym)
	n.stale = true
	return nil
}

// AddEpsilon Adds an epsilon-move from source to dest.
func (n *NFA) AddEpsilon(from, to string) error {
	return n.AddTransition(from, Epsilon, to)
}

func (n *NFA) lookup(name string) (int, error) {
	if name == DeadState {
		return -1, ErrReservedName
	}
	idx, ok := n.states.Lookup(name)
	if !ok {
		return -1, fmt.Errorf("%w: %s", ErrUnknownState, name)
	}
	return idx, nil
}

func (n *NFA) Start() string {
	return n.states.Name(n.start)
}

func (n *NFA) Alphabet() Alphabet {
	return n.alphabet.Clone()
}

func (n *NFA) States() []string {
	return n.states.Names()
}

func (n *NFA) AcceptStates() []string {
	names := make([]string, 0)
	for i, s := range n.states.All() {
		if s.accept {
			names = append(names, n.states.Name(i))
		}
	}
	return names
}

// NumStates How many named states this automaton has.
func (n *NFA) NumStates() int {
	return n.states.NumStates()
}

func (n *NFA) NumAcceptStates() int {
	if n.stale {
		n.recount()
	}
	return n.numAccept
}

// NumTransitions How many edges this automaton has, epsilon-moves included.
func (n *NFA) NumTransitions() int {
	if n.stale {
		n.recount()
	}
	return n.numTransitions
}

func (n *NFA) recount() {
	n.numAccept = 0
	n.numTransitions = 0
	for _, s := range n.states.All() {
		if s.accept {
			n.numAccept++
		}
		for _, targets := range s.next {
			n.numTransitions += int(targets.Count())
		}
	}
	n.stale = false
}

// closureOf Returns the set and every state reachable from it through epsilon-moves only.
func (n *NFA) closureOf(set *Closure) *Closure {
	result := newClosure(n.states.Len())
	stack := set.Values()
	for _, state := range stack {
		result.add(state)
	}
	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		targets, ok := n.states.State(state).next[Epsilon]
		if !ok {
			continue
		}
		for i, ok := targets.NextSet(0); ok; i, ok = targets.NextSet(i + 1) {
			if !result.contains(int(i)) {
				result.add(int(i))
				stack = append(stack, int(i))
			}
		}
	}
	return result
}

// move Returns the epsilon-closure of the sym targets of every state in c. Empty if no state of c has
// a sym transition.
func (n *NFA) move(c *Closure, sym Symbol) *Closure {
	targets := newClosure(n.states.Len())
	for _, state := range c.Values() {
		next, ok := n.states.State(state).next[sym]
		if !ok {
			continue
		}
		targets.bits.InPlaceUnion(next)
		targets.hashUpdated = false
	}
	if targets.IsEmpty() {
		return targets
	}
	return n.closureOf(targets)
}

func (n *NFA) isAccept(c *Closure) bool {
	for _, state := range c.Values() {
		if n.states.State(state).accept {
			return true
		}
	}
	return false
}

func (n *NFA) closureFromNames(names []string) (*Closure, error) {
	c := newClosure(n.states.Len())
	for _, name := range names {
		idx, err := n.lookup(name)
		if err != nil {
			return nil, err
		}
		c.add(idx)
	}
	return c, nil
}

func (n *NFA) closureNames(c *Closure) []string {
	names := make([]string, 0, c.Size())
	for _, state := range c.Values() {
		names = append(names, n.states.Name(state))
	}
	return names
}

// EpsilonClosure Returns the named states and all states epsilon-reachable from them, in table order.
func (n *NFA) EpsilonClosure(states ...string) ([]string, error) {
	c, err := n.closureFromNames(states)
	if err != nil {
		return nil, err
	}
	return n.closureNames(n.closureOf(c)), nil
}

// Move Returns the epsilon-closure of the sym targets of the named states, in table order.
func (n *NFA) Move(states []string, sym Symbol) ([]string, error) {
	c, err := n.closureFromNames(states)
	if err != nil {
		return nil, err
	}
	return n.closureNames(n.move(c, sym)), nil
}

func (n *NFA) startClosure() *Closure {
	start := newClosure(n.states.Len())
	if n.start != deadIndex {
		start.add(n.start)
	}
	return n.closureOf(start)
}

// Accepts Returns true if some path of the automaton accepts s.
func (n *NFA) Accepts(s string) bool {
	current := n.startClosure()
	for i := 0; i < len(s) && !current.IsEmpty(); i++ {
		current = n.move(current, Symbol(s[i]))
	}
	return n.isAccept(current)
}

// Determinize Converts the automaton to a DFA by subset construction. DFA state s<i> is the i-th
// distinct closure discovered in breadth-first order, s0 being the closure of the start state. The
// alphabet of the result holds only the symbols that lead to a non empty closure.
func (n *NFA) Determinize() *DFA {
	result := NewDFA()
	if n.start == deadIndex {
		return result
	}
	symbols := n.alphabet.Symbols()

	newState := NewHashMap[int](WithCapacity(n.states.Len()))
	addState := func(c *Closure) int {
		idx, _ := result.states.Add("s"+strconv.Itoa(newState.Size()), dfaState{})
		newState.Set(c, idx)
		return idx
	}

	initialSet := n.startClosure()
	result.start = addState(initialSet)
	worklist := []*Closure{initialSet}

	for len(worklist) > 0 {
		c := worklist[0]
		worklist = worklist[1:]

		from, _ := newState.Get(c)
		s := result.states.State(from)
		s.accept = n.isAccept(c)

		for _, sym := range symbols {
			next := n.move(c, sym)
			if next.IsEmpty() {
				continue
			}
			result.alphabet.Add(sym)

			to, ok := newState.Get(next)
			if !ok {
				to = addState(next)
				worklist = append(worklist, next)
			}
			// result.states may have grown.
			s = result.states.State(from)
			if s.next == nil {
				s.next = make(map[Symbol]int)
			}
			s.next[sym] = to
		}
	}

	result.recount()
	return result
}

// ToMinimalDFA Determinizes then minimizes the automaton.
func (n *NFA) ToMinimalDFA() *DFA {
	return n.Determinize().Minimize()
}
