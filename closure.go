package automaton

import (
	"github.com/bits-and-blooms/bitset"
)

var _ Hashable = &Closure{}

// Closure A set of NFA state indexes, the key of one DFA state during subset construction. Two closures
// are equal iff they hold the same indexes. Every closure of one NFA is sized to that NFA's state table.
type Closure struct {
	bits        *bitset.BitSet
	hashUpdated bool
	hashCode    uint64
}

func newClosure(numStates int) *Closure {
	return &Closure{bits: bitset.New(uint(numStates))}
}

func (c *Closure) Hash() uint64 {
	if c.hashUpdated {
		return c.hashCode
	}
	c.hashCode = uint64(c.bits.Count())
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		c.hashCode += mix(int(i))
	}
	c.hashUpdated = true
	return c.hashCode
}

func (c *Closure) Equals(other Hashable) bool {
	o, ok := other.(*Closure)
	if !ok || c == nil || o == nil {
		return ok && c == o
	}
	return c.bits.Equal(o.bits)
}

func (c *Closure) add(state int) {
	c.bits.Set(uint(state))
	c.hashUpdated = false
}

func (c *Closure) contains(state int) bool {
	return c.bits.Test(uint(state))
}

// Values Returns the indexes in ascending order.
func (c *Closure) Values() []int {
	values := make([]int, 0, c.bits.Count())
	for i, ok := c.bits.NextSet(0); ok; i, ok = c.bits.NextSet(i + 1) {
		values = append(values, int(i))
	}
	return values
}

func (c *Closure) Size() int {
	return int(c.bits.Count())
}

func (c *Closure) IsEmpty() bool {
	return c.bits.None()
}
