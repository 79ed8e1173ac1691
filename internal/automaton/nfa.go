// Package automaton builds ε-NFAs from a regex AST (Thompson construction),
// converts them to DFAs (subset construction), and minimizes DFAs via
// partition refinement. States are arena-indexed by int within the owning
// NFA/DFA rather than allocated as separately owned graph nodes: this keeps
// cyclic automaton graphs (introduced by Star/Plus) trivially representable
// and makes state-set equality, which subset construction and minimization
// both need, a matter of comparing sorted int slices.
package automaton

import (
	"fmt"

	"github.com/dekarrin/langgen/internal/container"
)

// Epsilon is the sentinel transition symbol for ε-moves. It is kept outside
// the 0x00-0xFF byte range (rather than aliased to byte 0x00, as a literal
// NUL) so that NUL remains a representable pattern byte.
const Epsilon int16 = -1

// state is one NFA state. transitions maps a symbol (a byte value 0-255, or
// Epsilon) to the set of state ids reachable on that symbol.
type state struct {
	accepting   bool
	transitions map[int16][]int
}

// NFA is an ε-NFA built by Thompson construction. Every state is owned by
// the NFA that created it and is addressed by its arena index; there is no
// notion of a state outliving its NFA or being shared across NFAs.
type NFA struct {
	states []state
	Start  int
	Accept int
}

func newNFA() *NFA {
	return &NFA{}
}

// addState appends a fresh state and returns its id.
func (n *NFA) addState(accepting bool) int {
	n.states = append(n.states, state{accepting: accepting, transitions: map[int16][]int{}})
	return len(n.states) - 1
}

// addTransition adds an edge from -> to on sym. Multiple edges for the same
// (from, sym) pair are permitted; that is the "non-determinism" in NFA.
func (n *NFA) addTransition(from int, sym int16, to int) {
	n.states[from].transitions[sym] = append(n.states[from].transitions[sym], to)
}

// NumStates returns the number of states in the NFA's arena.
func (n *NFA) NumStates() int {
	return len(n.states)
}

// Accepting returns whether state id is an accepting state.
func (n *NFA) Accepting(id int) bool {
	return n.states[id].accepting
}

// setAccepting directly sets or clears the accepting flag of a state; used by
// the Thompson combinators to demote a sub-fragment's old accept state once
// it has been spliced into a larger fragment, since only the outermost
// fragment's accept state should remain accepting.
func (n *NFA) setAccepting(id int, accepting bool) {
	n.states[id].accepting = accepting
}

// Alphabet returns the sorted set of non-ε symbols used on any transition in
// the NFA.
func (n *NFA) Alphabet() []byte {
	set := map[byte]bool{}
	for _, st := range n.states {
		for sym := range st.transitions {
			if sym != Epsilon {
				set[byte(sym)] = true
			}
		}
	}
	out := make([]byte, 0, len(set))
	for b := range set {
		out = append(out, b)
	}
	sortBytes(out)
	return out
}

func sortBytes(b []byte) {
	for i := 1; i < len(b); i++ {
		for j := i; j > 0 && b[j-1] > b[j]; j-- {
			b[j-1], b[j] = b[j], b[j-1]
		}
	}
}

// move returns the set of states reachable from any state in from on symbol
// sym, ignoring ε.
func (n *NFA) move(from container.KeySet[int], sym byte) container.KeySet[int] {
	out := container.NewKeySet[int]()
	for id := range from {
		for _, to := range n.states[id].transitions[int16(sym)] {
			out.Add(to)
		}
	}
	return out
}

// epsilonClosure returns the set of states reachable from start using zero or
// more ε-moves.
func (n *NFA) epsilonClosure(start int) container.KeySet[int] {
	return n.epsilonClosureOfSet(container.NewKeySet[int]([]int{start}))
}

// epsilonClosureOfSet returns the set of states reachable from any state in
// from using zero or more ε-moves.
func (n *NFA) epsilonClosureOfSet(from container.KeySet[int]) container.KeySet[int] {
	closure := container.NewKeySet[int]()
	stack := make([]int, 0, len(from))
	for id := range from {
		stack = append(stack, id)
	}

	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if closure.Has(id) {
			continue
		}
		closure.Add(id)

		for _, to := range n.states[id].transitions[Epsilon] {
			if !closure.Has(to) {
				stack = append(stack, to)
			}
		}
	}

	return closure
}

// anyAccepting reports whether any state id in s is accepting.
func (n *NFA) anyAccepting(s container.KeySet[int]) bool {
	for id := range s {
		if n.states[id].accepting {
			return true
		}
	}
	return false
}

func (n *NFA) String() string {
	return fmt.Sprintf("NFA{start=%d, accept=%d, states=%d}", n.Start, n.Accept, len(n.states))
}
