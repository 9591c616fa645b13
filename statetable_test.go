package automaton

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateTable(t *testing.T) {
	t.Run("DeadStateReserved", func(t *testing.T) {
		st := NewStateTable[int](0)
		assert.Equal(t, 1, st.Len())
		assert.Equal(t, 0, st.NumStates())

		idx, ok := st.Lookup(DeadState)
		assert.True(t, ok)
		assert.Equal(t, deadIndex, idx)

		_, err := st.Add(DeadState, 1)
		assert.ErrorIs(t, err, ErrReservedName)
	})

	t.Run("InsertionOrder", func(t *testing.T) {
		st := NewStateTable[int](2)
		for i, name := range []string{"q2", "q0", "q1"} {
			idx, err := st.Add(name, i*10)
			require.NoError(t, err)
			assert.Equal(t, i+1, idx)
		}
		assert.Equal(t, []string{"q2", "q0", "q1"}, st.Names())
		assert.Equal(t, 10, *st.State(2))

		_, err := st.Add("q0", 0)
		assert.ErrorIs(t, err, ErrDuplicateState)

		visited := make([]string, 0)
		for i := range st.All() {
			visited = append(visited, st.Name(i))
		}
		assert.Equal(t, []string{"q2", "q0", "q1"}, visited)
	})

	t.Run("Compact", func(t *testing.T) {
		st := NewStateTable[string](3)
		for _, name := range []string{"a", "b", "c"} {
			_, err := st.Add(name, "rec-"+name)
			require.NoError(t, err)
		}
		keep := bitset.New(uint(st.Len()))
		keep.Set(1)
		keep.Set(3)

		compacted, remap := st.compact(keep)
		assert.Equal(t, []string{"a", "c"}, compacted.Names())
		assert.Equal(t, []int{0, 1, -1, 2}, remap)
		assert.Equal(t, "rec-c", *compacted.State(2))

		idx, ok := compacted.Lookup("c")
		assert.True(t, ok)
		assert.Equal(t, 2, idx)
		_, ok = compacted.Lookup("b")
		assert.False(t, ok)
	})
}
