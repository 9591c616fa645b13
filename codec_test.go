package automaton

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		line  int
	}{
		{"BadCount", "x 0 0\n", ErrBadCount, 1},
		{"NegativeCount", "1 -1 0\nA\nA\n", ErrBadCount, 1},
		{"Truncated", "2 0 0\nA\n", io.ErrUnexpectedEOF, 0},
		{"DuplicateState", "2 0 0\nA A\nA\n\n", ErrDuplicateState, 2},
		{"UnknownStart", "1 0 0\nA\nB\n\n", ErrUnknownState, 3},
		{"NoStates", "0 0 0\n\nA\n\n", ErrUnknownState, 3},
		{"UnknownAccept", "1 1 0\nA\nA\nB\n", ErrUnknownState, 4},
		{"DuplicateAccept", "1 2 0\nA\nA\nA A\n", ErrDuplicateAccept, 4},
		{"UnknownTarget", "2 0 1\nA B\nA\n\nA \"a\" C\n", ErrUnknownState, 5},
		{"UnknownSource", "2 0 1\nA B\nA\n\nC \"a\" A\n", ErrUnknownState, 5},
		{"WideSymbol", "1 0 1\nA\nA\n\nA \"ab\" A\n", ErrBadSymbol, 5},
		{"UnquotedSymbol", "1 0 1\nA\nA\n\nA a A\n", ErrBadSymbol, 5},
		{"EpsilonInDFA", "1 0 1\nA\nA\n\nA \"\" A\n", ErrBadSymbol, 5},
		{"Nondeterministic", "2 0 2\nA B\nA\n\nA \"a\" A\nA \"a\" B\n", ErrNondeterministic, 6},
		{"DuplicateTransition", "1 0 2\nA\nA\n\nA \"a\" A\nA \"a\" A\n", ErrDuplicateTransition, 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDFA(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)

			var perr *ParseError
			require.True(t, errors.As(err, &perr))
			assert.Equal(t, tt.line, perr.Line)
		})
	}
}

func TestDecodeMaxStates(t *testing.T) {
	_, err := ParseNFA("3 0 0\na b c\na\n\n", WithMaxStates(2))
	assert.ErrorIs(t, err, ErrTooManyStates)

	n, err := ParseNFA("3 0 0\na b c\na\n\n", WithMaxStates(3))
	require.NoError(t, err)
	assert.Equal(t, 3, n.NumStates())
}

func TestDecodeNFAErrors(t *testing.T) {
	_, err := ParseNFA("1 0 1\nA\nA\n\nA \"a\" B\n")
	assert.ErrorIs(t, err, ErrUnknownState)

	_, err = ParseNFA("1 0 2\nA\nA\n\nA \"\" A\nA \"\" A\n")
	assert.ErrorIs(t, err, ErrDuplicateTransition)
}

func TestDecodeLayoutIndependent(t *testing.T) {
	a := mustDFA(t, "2 1 1\nA B\nA\nB\nA \"a\" B\n")
	b := mustDFA(t, "2 1 1 A\n  B A B\t A \"a\"\n\n B")
	assert.Equal(t, a.String(), b.String())
}

func TestDecodeStream(t *testing.T) {
	input := aStarOneState + aStarTwoStates
	dec := NewDecoder(strings.NewReader(input))

	first, err := dec.DecodeNFA()
	require.NoError(t, err)
	second, err := dec.DecodeNFA()
	require.NoError(t, err)
	assert.True(t, first.ToMinimalDFA().Equals(second.ToMinimalDFA()))

	_, err = dec.DecodeNFA()
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestEncodeRoundTrip(t *testing.T) {
	t.Run("DFA", func(t *testing.T) {
		input := `3 2 4
A B C
B
A C
A "a" B
A "b" C
B "a" C
C "b" A
`
		d := mustDFA(t, input)
		assert.Equal(t, input, d.String())
		assert.Equal(t, "B", d.Start())
		assert.Equal(t, []string{"A", "C"}, d.AcceptStates())
	})

	t.Run("NFA", func(t *testing.T) {
		input := `3 1 5
q0 q1 q2
q0
q2
q0 "" q1
q0 "" q2
q0 "a" q0
q0 "a" q1
q1 "b" q2
`
		n := mustNFA(t, input)
		assert.Equal(t, input, n.String())
		assert.Equal(t, mustNFA(t, n.String()).String(), n.String())
	})

	t.Run("TransitionOrderNormalized", func(t *testing.T) {
		d := mustDFA(t, `1 1 2
x
x
x
x "b" x
x "a" x
`)
		assert.Equal(t, `1 1 2
x
x
x
x "a" x
x "b" x
`, d.String())
	})
}

func TestEncoderLogging(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d, err := ParseDFA(aStarTwoStates, WithLogger(logger))
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "decoded automaton")
	assert.Contains(t, logs.String(), "kind=dfa")
	assert.Contains(t, logs.String(), "states=2")

	logs.Reset()
	var out bytes.Buffer
	require.NoError(t, NewEncoder(&out, WithLogger(logger)).EncodeDFA(d))
	assert.Equal(t, aStarTwoStates, out.String())
	assert.Contains(t, logs.String(), "encoded automaton")
	assert.Contains(t, logs.String(), "transitions=2")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestEncodeWriteError(t *testing.T) {
	err := NewEncoder(failingWriter{}).EncodeDFA(mustDFA(t, aPlus))
	assert.EqualError(t, err, "disk full")
}

func TestParseErrorMessage(t *testing.T) {
	_, err := ParseDFA("2 0 1\nA B\nA\n\nA \"a\" C\n")
	require.Error(t, err)
	assert.Equal(t, `automaton: line 5: "A \"a\" C": unknown state: C`, err.Error())
}
