package automaton

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDFA(t *testing.T, s string) *DFA {
	t.Helper()
	d, err := ParseDFA(s)
	require.NoError(t, err)
	return d
}

func mustNFA(t *testing.T, s string) *NFA {
	t.Helper()
	n, err := ParseNFA(s)
	require.NoError(t, err)
	return n
}

// allStrings Returns every string over alphabet of length at most maxLen.
func allStrings(alphabet string, maxLen int) []string {
	result := []string{""}
	layer := []string{""}
	for l := 0; l < maxLen; l++ {
		next := make([]string, 0, len(layer)*len(alphabet))
		for _, prefix := range layer {
			for i := 0; i < len(alphabet); i++ {
				next = append(next, prefix+alphabet[i:i+1])
			}
		}
		result = append(result, next...)
		layer = next
	}
	return result
}

type acceptor interface {
	Accepts(s string) bool
}

func requireSameLanguage(t *testing.T, want, got acceptor, alphabet string, maxLen int) {
	t.Helper()
	for _, s := range allStrings(alphabet, maxLen) {
		require.Equal(t, want.Accepts(s), got.Accepts(s), "input %q", s)
	}
}

// randomNFA Builds an NFA over "ab" with up to maxStates states and random edges, epsilon-moves included.
func randomNFA(r *rand.Rand, maxStates int) *NFA {
	n := NewNFA()
	numStates := 1 + r.IntN(maxStates)
	for i := 0; i < numStates; i++ {
		_ = n.AddState(fmt.Sprintf("q%d", i), r.IntN(3) == 0)
	}
	for _, from := range n.States() {
		for _, sym := range []Symbol{Epsilon, 'a', 'b'} {
			for _, to := range n.States() {
				if r.IntN(4) == 0 {
					_ = n.AddTransition(from, sym, to)
				}
			}
		}
	}
	return n
}

// randomDFA Builds a DFA over "ab" with up to maxStates states; some transitions are left to the dead state.
func randomDFA(r *rand.Rand, maxStates int) *DFA {
	d := NewDFA()
	numStates := 1 + r.IntN(maxStates)
	names := make([]string, numStates)
	for i := range names {
		names[i] = fmt.Sprintf("p%d", i)
		_ = d.AddState(names[i], r.IntN(2) == 0)
	}
	for _, from := range names {
		for _, sym := range []Symbol{'a', 'b'} {
			if r.IntN(5) == 0 {
				continue
			}
			_ = d.AddTransition(from, sym, names[r.IntN(numStates)])
		}
	}
	return d
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(20, 24))
}
