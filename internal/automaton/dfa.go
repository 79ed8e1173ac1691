package automaton

import (
	"fmt"
	"sort"

	"github.com/dekarrin/langgen/internal/container"
)

// dfaState is one DFA state: a deterministic transition per byte, plus the
// set of NFA states it was built from, which subset construction populates
// and minimization is free to drop.
type dfaState struct {
	accepting   bool
	transitions map[byte]int
	origin      container.KeySet[int]
}

// DFA is a deterministic finite automaton produced either by subset
// construction over an NFA or by minimizing another DFA. As with NFA, states
// are arena-indexed ints owned by the DFA.
type DFA struct {
	states []dfaState
	Start  int
}

// NumStates returns the number of states in the DFA's arena.
func (d *DFA) NumStates() int {
	return len(d.states)
}

// Accepting returns whether state id is accepting.
func (d *DFA) Accepting(id int) bool {
	return d.states[id].accepting
}

// Step returns the state reached from id on b, and whether a transition
// exists. A DFA is total only on the symbols it has transitions for; a
// missing entry means the run dies.
func (d *DFA) Step(id int, b byte) (next int, ok bool) {
	next, ok = d.states[id].transitions[b]
	return
}

// Transitions returns a copy of id's transition map, sorted by symbol value,
// for codegen to iterate deterministically.
func (d *DFA) Transitions(id int) []struct {
	On   byte
	Next int
} {
	trans := d.states[id].transitions
	out := make([]struct {
		On   byte
		Next int
	}, 0, len(trans))
	for b, to := range trans {
		out = append(out, struct {
			On   byte
			Next int
		}{b, to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].On < out[j].On })
	return out
}

// Accepts runs the DFA from its start state over s and reports whether the
// run ends in an accepting state having consumed all of s.
func (d *DFA) Accepts(s []byte) bool {
	cur := d.Start
	for _, b := range s {
		next, ok := d.Step(cur, b)
		if !ok {
			return false
		}
		cur = next
	}
	return d.Accepting(cur)
}

// LongestMatch runs the DFA from its start state over s (which may extend
// past any valid match) and returns the length of the longest prefix of s
// that ends in an accepting state, or 0 if no non-empty prefix is accepted.
func (d *DFA) LongestMatch(s []byte) int {
	cur := d.Start
	longest := 0
	for i, b := range s {
		next, ok := d.Step(cur, b)
		if !ok {
			break
		}
		cur = next
		if d.Accepting(cur) {
			longest = i + 1
		}
	}
	return longest
}

// alphabet returns the sorted set of symbols appearing on any transition.
func (d *DFA) alphabet() []byte {
	set := map[byte]bool{}
	for _, st := range d.states {
		for b := range st.transitions {
			set[b] = true
		}
	}
	out := make([]byte, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sortBytes(out)
	return out
}

// ToDFA converts an NFA into an equivalent DFA by subset construction: each
// DFA state is the ε-closure of a set of NFA states, keyed canonically by
// that set's sorted member ids so that two paths arriving at the same
// NFA-state set are recognized as the same DFA state.
func ToDFA(nfa *NFA) *DFA {
	alphabet := nfa.Alphabet()

	dfa := &DFA{}
	keyToID := map[string]int{}

	startClosure := nfa.epsilonClosure(nfa.Start)
	startKey := container.SortedIntKey(startClosure)

	startID := dfa.addState(nfa.anyAccepting(startClosure), startClosure)
	keyToID[startKey] = startID
	dfa.Start = startID

	unprocessed := []string{startKey}
	for len(unprocessed) > 0 {
		key := unprocessed[0]
		unprocessed = unprocessed[1:]

		id := keyToID[key]
		origin := dfa.states[id].origin

		for _, b := range alphabet {
			moved := nfa.move(origin, b)
			if moved.Len() == 0 {
				continue
			}
			closure := nfa.epsilonClosureOfSet(moved)
			closureKey := container.SortedIntKey(closure)

			targetID, exists := keyToID[closureKey]
			if !exists {
				targetID = dfa.addState(nfa.anyAccepting(closure), closure)
				keyToID[closureKey] = targetID
				unprocessed = append(unprocessed, closureKey)
			}

			dfa.states[id].transitions[b] = targetID
		}
	}

	return dfa
}

func (d *DFA) addState(accepting bool, origin container.KeySet[int]) int {
	d.states = append(d.states, dfaState{
		accepting:   accepting,
		transitions: map[byte]int{},
		origin:      origin,
	})
	return len(d.states) - 1
}

// Minimize performs Hopcroft-style partition refinement and returns a new,
// equivalent DFA with (at most) one state per equivalence
// class. The dead-state index (-1, meaning "no transition defined") is a
// first-class signature value: two states that agree on which symbols are
// dead, and on where the live ones go, end up in the same block.
func (d *DFA) Minimize() *DFA {
	alphabet := d.alphabet()

	var partitions [][]int
	var accepting, nonAccepting []int
	for id := range d.states {
		if d.states[id].accepting {
			accepting = append(accepting, id)
		} else {
			nonAccepting = append(nonAccepting, id)
		}
	}
	if len(accepting) > 0 {
		partitions = append(partitions, accepting)
	}
	if len(nonAccepting) > 0 {
		partitions = append(partitions, nonAccepting)
	}

	blockOf := make(map[int]int)
	assignBlocks := func(parts [][]int) {
		blockOf = make(map[int]int, len(d.states))
		for bi, part := range parts {
			for _, id := range part {
				blockOf[id] = bi
			}
		}
	}
	assignBlocks(partitions)

	changed := true
	for changed {
		changed = false
		var next [][]int

		for _, block := range partitions {
			if len(block) <= 1 {
				next = append(next, block)
				continue
			}

			groups := map[string][]int{}
			var groupOrder []string
			for _, id := range block {
				sig := signature(d, id, alphabet, blockOf)
				if _, ok := groups[sig]; !ok {
					groupOrder = append(groupOrder, sig)
				}
				groups[sig] = append(groups[sig], id)
			}

			if len(groups) > 1 {
				changed = true
			}
			for _, sig := range groupOrder {
				next = append(next, groups[sig])
			}
		}

		partitions = next
		assignBlocks(partitions)
	}

	return buildFromPartitions(d, partitions, blockOf)
}

// signature computes, for state id, the tuple (over alphabet in a fixed
// order) of the block index reached on each symbol, using -1 for a
// symbol with no transition.
func signature(d *DFA, id int, alphabet []byte, blockOf map[int]int) string {
	sig := make([]byte, 0, len(alphabet)*4)
	for _, b := range alphabet {
		next, ok := d.Step(id, b)
		idx := -1
		if ok {
			idx = blockOf[next]
		}
		sig = append(sig, []byte(fmt.Sprintf("%d,", idx))...)
	}
	return string(sig)
}

func buildFromPartitions(orig *DFA, partitions [][]int, blockOf map[int]int) *DFA {
	min := &DFA{}
	for range partitions {
		min.states = append(min.states, dfaState{transitions: map[byte]int{}})
	}

	for bi, block := range partitions {
		rep := block[0]
		min.states[bi].accepting = orig.states[rep].accepting
		for b, to := range orig.states[rep].transitions {
			min.states[bi].transitions[b] = blockOf[to]
		}
	}

	min.Start = blockOf[orig.Start]
	return min
}
