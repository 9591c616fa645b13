package automaton

import (
	"fmt"
	"iter"

	"github.com/bits-and-blooms/bitset"
)

const (
	// DeadState The reserved name of the implicit sink state. It absorbs every undefined transition, is
	// never accepting, loops to itself on every symbol and is never listed or counted.
	DeadState = ""

	// Index of the dead state in every StateTable.
	deadIndex = 0
)

// StateTable Maps state names to per-state records. States are addressed by a stable index, assigned in
// insertion order; all edges between states are indexes into the same table. Index 0 always holds the
// dead state, whose record is the zero value of T.
type StateTable[T any] struct {
	names  []string
	index  map[string]int
	states []T
}

func NewStateTable[T any](capacity int) *StateTable[T] {
	t := &StateTable[T]{
		names:  make([]string, 0, capacity+1),
		index:  make(map[string]int, capacity+1),
		states: make([]T, 0, capacity+1),
	}
	var dead T
	t.names = append(t.names, DeadState)
	t.index[DeadState] = deadIndex
	t.states = append(t.states, dead)
	return t
}

// Add Creates a new state and returns its index.
func (t *StateTable[T]) Add(name string, state T) (int, error) {
	if name == DeadState {
		return -1, ErrReservedName
	}
	if _, ok := t.index[name]; ok {
		return -1, fmt.Errorf("%w: %s", ErrDuplicateState, name)
	}
	idx := len(t.states)
	t.names = append(t.names, name)
	t.index[name] = idx
	t.states = append(t.states, state)
	return idx, nil
}

// Lookup Returns the index of the named state. The dead state is always found.
func (t *StateTable[T]) Lookup(name string) (int, bool) {
	idx, ok := t.index[name]
	return idx, ok
}

func (t *StateTable[T]) Name(idx int) string {
	return t.names[idx]
}

func (t *StateTable[T]) State(idx int) *T {
	return &t.states[idx]
}

// Len Returns the number of slots, including the dead state.
func (t *StateTable[T]) Len() int {
	return len(t.states)
}

// NumStates Returns the number of named states.
func (t *StateTable[T]) NumStates() int {
	return len(t.states) - 1
}

// All Iterates the named states in insertion order.
func (t *StateTable[T]) All() iter.Seq2[int, *T] {
	return func(yield func(int, *T) bool) {
		for i := deadIndex + 1; i < len(t.states); i++ {
			if !yield(i, &t.states[i]) {
				return
			}
		}
	}
}

// Names Returns the named states in insertion order.
func (t *StateTable[T]) Names() []string {
	names := make([]string, len(t.names)-1)
	copy(names, t.names[1:])
	return names
}

// compact Returns a new table holding only the states set in keep, in their original order, with a
// mapping from old to new indexes (-1 for dropped states). The dead state is always kept.
// Records are copied as-is; the caller rewrites any index they hold.
func (t *StateTable[T]) compact(keep *bitset.BitSet) (*StateTable[T], []int) {
	remap := make([]int, len(t.states))
	result := NewStateTable[T](int(keep.Count()))
	remap[deadIndex] = deadIndex
	for i := deadIndex + 1; i < len(t.states); i++ {
		if !keep.Test(uint(i)) {
			remap[i] = -1
			continue
		}
		remap[i] = len(result.states)
		result.names = append(result.names, t.names[i])
		result.index[t.names[i]] = remap[i]
		result.states = append(result.states, t.states[i])
	}
	return result, remap
}
