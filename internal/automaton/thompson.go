package automaton

import (
	"fmt"

	"github.com/dekarrin/langgen/internal/regex"
)

// newLineByte is the one byte Any and negated charsets always exclude.
const newLineByte = 0x0A

// Build performs Thompson construction (the McNaughton-Yamada-Thompson
// algorithm) on root, returning an ε-NFA with exactly one accepting state
// reachable from Start.
//
// Build panics if root contains a Kind it does not recognize; every Kind
// regex.Parse can produce is handled here, so this indicates a caller
// constructed a Node by hand with a bad Kind rather than a data error to
// surface to a user.
func Build(root *regex.Node) *NFA {
	n := newNFA()
	start, accept := build(n, root)
	n.Start = start
	n.Accept = accept
	return n
}

func build(n *NFA, node *regex.Node) (start, accept int) {
	switch node.Kind {
	case regex.Char:
		start = n.addState(false)
		accept = n.addState(true)
		n.addTransition(start, int16(node.Char), accept)

	case regex.Charset:
		start = n.addState(false)
		accept = n.addState(true)
		if node.Negated {
			for b := 0; b <= 0xFF; b++ {
				if byte(b) == newLineByte || node.Set.Has(byte(b)) {
					continue
				}
				n.addTransition(start, int16(b), accept)
			}
		} else if len(node.Set) == 0 {
			n.addTransition(start, Epsilon, accept)
		} else {
			for b := range node.Set {
				n.addTransition(start, int16(b), accept)
			}
		}

	case regex.Any:
		start = n.addState(false)
		accept = n.addState(true)
		for b := 0; b <= 0xFF; b++ {
			if byte(b) == newLineByte {
				continue
			}
			n.addTransition(start, int16(b), accept)
		}

	case regex.Epsilon:
		start = n.addState(false)
		accept = n.addState(true)
		n.addTransition(start, Epsilon, accept)

	case regex.Concat:
		lStart, lAccept := build(n, node.Left)
		rStart, rAccept := build(n, node.Right)
		n.addTransition(lAccept, Epsilon, rStart)
		n.setAccepting(lAccept, false)
		start, accept = lStart, rAccept

	case regex.Union:
		s := n.addState(false)
		a := n.addState(true)
		lStart, lAccept := build(n, node.Left)
		rStart, rAccept := build(n, node.Right)
		n.addTransition(s, Epsilon, lStart)
		n.addTransition(s, Epsilon, rStart)
		n.addTransition(lAccept, Epsilon, a)
		n.addTransition(rAccept, Epsilon, a)
		n.setAccepting(lAccept, false)
		n.setAccepting(rAccept, false)
		start, accept = s, a

	case regex.Star:
		s := n.addState(false)
		a := n.addState(true)
		xStart, xAccept := build(n, node.Child)
		n.addTransition(s, Epsilon, xStart)
		n.addTransition(s, Epsilon, a)
		n.addTransition(xAccept, Epsilon, xStart)
		n.addTransition(xAccept, Epsilon, a)
		n.setAccepting(xAccept, false)
		start, accept = s, a

	case regex.Plus:
		s := n.addState(false)
		a := n.addState(true)
		xStart, xAccept := build(n, node.Child)
		n.addTransition(s, Epsilon, xStart)
		n.addTransition(xAccept, Epsilon, xStart)
		n.addTransition(xAccept, Epsilon, a)
		n.setAccepting(xAccept, false)
		start, accept = s, a

	default:
		panic(fmt.Sprintf("automaton: unknown regex node kind %v", node.Kind))
	}

	return start, accept
}
