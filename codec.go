package automaton

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// The text description of an automaton is a sequence of whitespace separated tokens:
//
//	<stateCount> <acceptingCount> <transitionCount>
//	<state1> <state2> ... <stateN>
//	<startState>
//	<accepting1> <accepting2> ...
//	<fromState> "<symbol>" <toState>
//
// with transitionCount transition lines. An NFA writes epsilon-moves with the symbol "". Line breaks
// are not significant to the decoder, so several automata may follow each other in one stream.

// Decoder Reads automata from an input stream.
type Decoder struct {
	sc     *bufio.Scanner
	fields []string
	line   int
	opts   *codecOptions
}

func NewDecoder(r io.Reader, opts ...Option) *Decoder {
	return &Decoder{
		sc:   bufio.NewScanner(r),
		opts: newCodecOptions(opts...),
	}
}

func (dec *Decoder) next() (string, error) {
	for len(dec.fields) == 0 {
		if !dec.sc.Scan() {
			if err := dec.sc.Err(); err != nil {
				return "", err
			}
			return "", &ParseError{Err: io.ErrUnexpectedEOF}
		}
		dec.line++
		dec.fields = strings.Fields(dec.sc.Text())
	}
	tok := dec.fields[0]
	dec.fields = dec.fields[1:]
	return tok, nil
}

func (dec *Decoder) fail(tok string, err error) error {
	return &ParseError{Line: dec.line, Token: tok, Err: err}
}

func (dec *Decoder) count() (int, error) {
	tok, err := dec.next()
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok)
	if err != nil || n < 0 {
		return 0, dec.fail(tok, ErrBadCount)
	}
	return n, nil
}

// builder is what the decoder needs from DFA and NFA.
type builder interface {
	AddState(name string, accept bool) error
	SetStart(name string) error
	SetAccept(name string, accept bool) error
	AddTransition(from string, sym Symbol, to string) error
}

type header struct {
	numStates, numAccept, numTransitions int
}

func (dec *Decoder) decode(b builder, allowEpsilon bool) error {
	h := header{}
	var err error
	if h.numStates, err = dec.count(); err != nil {
		return err
	}
	if limit := dec.opts.maxStates; limit > 0 && h.numStates > limit {
		return dec.fail(strconv.Itoa(h.numStates), fmt.Errorf("%w: %d > %d", ErrTooManyStates, h.numStates, limit))
	}
	if h.numAccept, err = dec.count(); err != nil {
		return err
	}
	if h.numTransitions, err = dec.count(); err != nil {
		return err
	}

	for i := 0; i < h.numStates; i++ {
		name, err := dec.next()
		if err != nil {
			return err
		}
		if err := b.AddState(name, false); err != nil {
			return dec.fail(name, err)
		}
	}

	start, err := dec.next()
	if err != nil {
		return err
	}
	if err := b.SetStart(start); err != nil {
		return dec.fail(start, err)
	}

	accepting := make(map[string]struct{}, h.numAccept)
	for i := 0; i < h.numAccept; i++ {
		name, err := dec.next()
		if err != nil {
			return err
		}
		if _, ok := accepting[name]; ok {
			return dec.fail(name, ErrDuplicateAccept)
		}
		accepting[name] = struct{}{}
		if err := b.SetAccept(name, true); err != nil {
			return dec.fail(name, err)
		}
	}

	for i := 0; i < h.numTransitions; i++ {
		from, err := dec.next()
		if err != nil {
			return err
		}
		input, err := dec.next()
		if err != nil {
			return err
		}
		to, err := dec.next()
		if err != nil {
			return err
		}
		sym, ok := parseSymbol(input)
		if !ok || (sym == Epsilon && !allowEpsilon) {
			return dec.fail(input, ErrBadSymbol)
		}
		if err := b.AddTransition(from, sym, to); err != nil {
			return dec.fail(from+" "+input+" "+to, err)
		}
	}
	return nil
}

func parseSymbol(tok string) (Symbol, bool) {
	if tok == `""` {
		return Epsilon, true
	}
	if len(tok) != 3 || tok[0] != '"' || tok[2] != '"' {
		return 0, false
	}
	sym := Symbol(tok[1])
	return sym, sym.IsValid()
}

// DecodeDFA Reads the next automaton of the stream as a DFA.
func (dec *Decoder) DecodeDFA() (*DFA, error) {
	d := NewDFA()
	if err := dec.decode(d, false); err != nil {
		return nil, err
	}
	d.recount()
	dec.opts.logger.Debug("decoded automaton", "kind", "dfa",
		"states", d.NumStates(), "accepting", d.NumAcceptStates(), "transitions", d.NumTransitions())
	return d, nil
}

// DecodeNFA Reads the next automaton of the stream as an NFA.
func (dec *Decoder) DecodeNFA() (*NFA, error) {
	n := NewNFA()
	if err := dec.decode(n, true); err != nil {
		return nil, err
	}
	n.recount()
	dec.opts.logger.Debug("decoded automaton", "kind", "nfa",
		"states", n.NumStates(), "accepting", n.NumAcceptStates(), "transitions", n.NumTransitions())
	return n, nil
}

func ParseDFA(s string, opts ...Option) (*DFA, error) {
	return NewDecoder(strings.NewReader(s), opts...).DecodeDFA()
}

func ParseNFA(s string, opts ...Option) (*NFA, error) {
	return NewDecoder(strings.NewReader(s), opts...).DecodeNFA()
}

// Encoder Writes automata in the text description format. States, accepting states and transitions
// are written in state table order; the dead state is never written.
type Encoder struct {
	w    io.Writer
	opts *codecOptions
}

func NewEncoder(w io.Writer, opts ...Option) *Encoder {
	return &Encoder{w: w, opts: newCodecOptions(opts...)}
}

func writeHeader(bw *bufio.Writer, numStates, numAccept, numTransitions int, states []string, start string, accepting []string) {
	fmt.Fprintf(bw, "%d %d %d\n", numStates, numAccept, numTransitions)
	bw.WriteString(strings.Join(states, " "))
	bw.WriteByte('\n')
	bw.WriteString(start)
	bw.WriteByte('\n')
	bw.WriteString(strings.Join(accepting, " "))
	bw.WriteByte('\n')
}

func writeTransition(bw *bufio.Writer, from string, sym Symbol, to string) {
	bw.WriteString(from)
	bw.WriteByte(' ')
	bw.WriteString(sym.String())
	bw.WriteByte(' ')
	bw.WriteString(to)
	bw.WriteByte('\n')
}

func (e *Encoder) EncodeDFA(d *DFA) error {
	bw := bufio.NewWriter(e.w)
	writeHeader(bw, d.NumStates(), d.NumAcceptStates(), d.NumTransitions(), d.States(), d.Start(), d.AcceptStates())

	symbols := d.alphabet.Symbols()
	for i, s := range d.states.All() {
		for _, sym := range symbols {
			if to := s.target(sym); to != deadIndex {
				writeTransition(bw, d.states.Name(i), sym, d.states.Name(to))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	e.opts.logger.Debug("encoded automaton", "kind", "dfa",
		"states", d.NumStates(), "accepting", d.NumAcceptStates(), "transitions", d.NumTransitions())
	return nil
}

func (e *Encoder) EncodeNFA(n *NFA) error {
	bw := bufio.NewWriter(e.w)
	writeHeader(bw, n.NumStates(), n.NumAcceptStates(), n.NumTransitions(), n.States(), n.Start(), n.AcceptStates())

	symbols := append([]Symbol{Epsilon}, n.alphabet.Symbols()...)
	for i, s := range n.states.All() {
		for _, sym := range symbols {
			targets, ok := s.next[sym]
			if !ok {
				continue
			}
			for to, ok := targets.NextSet(0); ok; to, ok = targets.NextSet(to + 1) {
				writeTransition(bw, n.states.Name(i), sym, n.states.Name(int(to)))
			}
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	e.opts.logger.Debug("encoded automaton", "kind", "nfa",
		"states", n.NumStates(), "accepting", n.NumAcceptStates(), "transitions", n.NumTransitions())
	return nil
}

func (d *DFA) String() string {
	var sb strings.Builder
	_ = NewEncoder(&sb).EncodeDFA(d)
	return sb.String()
}

func (n *NFA) String() string {
	var sb strings.Builder
	_ = NewEncoder(&sb).EncodeNFA(n)
	return sb.String()
}
