package automaton

import (
	"errors"
	"fmt"
)

var (
	ErrReservedName        = errors.New("the empty name is reserved for the dead state")
	ErrDuplicateState      = errors.New("duplicate state")
	ErrUnknownState        = errors.New("unknown state")
	ErrBadSymbol           = errors.New("symbol must be one quoted printable character")
	ErrBadCount            = errors.New("count must be a non-negative integer")
	ErrDuplicateAccept     = errors.New("duplicate accepting state")
	ErrDuplicateTransition = errors.New("duplicate transition")
	ErrNondeterministic    = errors.New("more than one transition for the same symbol")
	ErrTooManyStates       = errors.New("too many states")
)

// ParseError Reports malformed input in the text description of an automaton.
type ParseError struct {
	Line  int    // 1-based line of the offending token, 0 at end of input
	Token string // offending token, if any
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("automaton: line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("automaton: line %d: %q: %v", e.Line, e.Token, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
