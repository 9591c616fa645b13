package automaton

import (
	"slices"
	"strconv"
)

var _ Hashable = signature(nil)

// signature The group numbers of a state's targets, one per alphabet symbol in ascending symbol order.
// States of one group with equal signatures cannot be told apart by the current partition.
type signature []int

func (s signature) Hash() uint64 {
	h := uint64(len(s))
	for _, g := range s {
		h = mixOrdered(h, g)
	}
	return h
}

func (s signature) Equals(other Hashable) bool {
	o, ok := other.(signature)
	return ok && slices.Equal(s, o)
}

// group A block of the partition. Members are state indexes in ascending order.
type group struct {
	id      int
	members []int

	// All members had one signature when the group was last examined and nothing split since.
	stable bool
}

// partition The state -> group table of one minimization. Group 0 is the dead state.
type partition struct {
	groupOf  []int
	maxGroup int
}

func (p *partition) newGroup(members []int) *group {
	p.maxGroup++
	g := &group{id: p.maxGroup, members: members}
	for _, m := range members {
		p.groupOf[m] = g.id
	}
	return g
}

func (p *partition) signature(d *DFA, state int, symbols []Symbol) signature {
	sig := make(signature, len(symbols))
	s := d.states.State(state)
	for i, sym := range symbols {
		sig[i] = p.groupOf[s.target(sym)]
	}
	return sig
}

type subgroup struct {
	sig     signature
	members []int
}

// split Divides g by signature. Subgroups come back in ascending signature order.
func (p *partition) split(d *DFA, g *group, symbols []Symbol) []*subgroup {
	bySig := NewHashMap[*subgroup](WithCapacity(len(g.members)))
	for _, m := range g.members {
		sig := p.signature(d, m, symbols)
		sg, _ := bySig.LoadOrStore(sig, &subgroup{sig: sig})
		sg.members = append(sg.members, m)
	}

	subgroups := make([]*subgroup, 0, bySig.Size())
	for _, sg := range bySig.Iterator() {
		subgroups = append(subgroups, sg)
	}
	slices.SortFunc(subgroups, func(a, b *subgroup) int {
		return slices.Compare(a.sig, b.sig)
	})
	return subgroups
}

// Minimize Returns the minimal DFA accepting the same language, computed by Moore partition refinement
// over the reachable states. States of the result are named s0, s1, ... after their group number and
// are listed in that order. The receiver is not modified.
func (d *DFA) Minimize() *DFA {
	a := d.Clone()
	a.RemoveUnreachable()
	symbols := a.alphabet.Symbols()

	p := &partition{groupOf: make([]int, a.states.Len())}
	accepting := make([]int, 0)
	rejecting := make([]int, 0)
	for i, s := range a.states.All() {
		if s.accept {
			accepting = append(accepting, i)
		} else {
			rejecting = append(rejecting, i)
		}
	}

	queue := make([]*group, 0)
	if len(accepting) > 0 {
		queue = append(queue, p.newGroup(accepting))
	}
	if len(rejecting) > 0 {
		queue = append(queue, p.newGroup(rejecting))
	}

	for len(queue) > 0 {
		g := queue[0]
		queue = queue[1:]

		// A singleton can not be split any further.
		if len(g.members) == 1 {
			continue
		}

		subgroups := p.split(a, g, symbols)
		if len(subgroups) == 1 {
			g.stable = true
			queue = append(queue, g)
		} else {
			// The partition changed, so every queued group has to be examined again.
			for _, q := range queue {
				q.stable = false
			}
			first := &group{id: g.id, members: subgroups[0].members}
			queue = append(queue, first)
			for _, sg := range subgroups[1:] {
				queue = append(queue, p.newGroup(sg.members))
			}
		}

		if allStable(queue) {
			break
		}
	}

	return a.quotient(p)
}

func allStable(queue []*group) bool {
	for _, g := range queue {
		if !g.stable {
			return false
		}
	}
	return true
}

// quotient builds the automaton with one state per group of p.
func (d *DFA) quotient(p *partition) *DFA {
	result := newDFA(p.maxGroup)
	result.alphabet = d.alphabet.Clone()

	// Group ids are dense, so state i of the result is group i.
	for g := 1; g <= p.maxGroup; g++ {
		_, _ = result.states.Add(groupName(g), dfaState{})
	}
	for i, s := range d.states.All() {
		rs := result.states.State(p.groupOf[i])
		rs.accept = s.accept
		for sym, to := range s.next {
			if rs.next == nil {
				rs.next = make(map[Symbol]int)
			}
			rs.next[sym] = p.groupOf[to]
		}
	}

	result.start = p.groupOf[d.start]
	result.recount()
	return result
}

func groupName(g int) string {
	return "s" + strconv.Itoa(g-1)
}
