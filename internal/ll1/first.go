// Package ll1 computes FIRST and FOLLOW sets over a grammar and builds its
// LL(1) predictive parse table, with the ε-vs-non-ε conflict policy that
// resolves dangling-else-shaped ambiguities in favor of the non-ε
// alternative.
package ll1

import (
	"github.com/dekarrin/langgen/internal/container"
	"github.com/dekarrin/langgen/internal/grammar"
)

// Sets maps a symbol (terminal or nonterminal) to its FIRST or FOLLOW set.
type Sets map[string]container.StringSet

// First computes FIRST(X) for every terminal and nonterminal X in g, by
// fixed-point iteration over productions.
func First(g *grammar.Grammar) Sets {
	first := Sets{}
	for _, t := range g.Terminals.Elements() {
		first[t] = container.NewStringSet([]string{t})
	}
	first[grammar.EndMarker] = container.NewStringSet([]string{grammar.EndMarker})
	for _, nt := range g.Nonterminals.Elements() {
		first[nt] = container.NewStringSet()
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			for _, alt := range p.Alternatives {
				alphaFirst := firstOfSequence(alt, first)
				before := first[p.Left].Len()
				first[p.Left].AddAll(alphaFirst)
				if first[p.Left].Len() != before {
					changed = true
				}
			}
		}
	}

	return first
}

// firstOfSequence computes FIRST(X1 X2 … Xn) given each individual symbol's
// FIRST set: accumulate FIRST(Xi)\{ε} and stop at the first Xi whose FIRST
// does not contain ε; if every symbol in the sequence can derive ε (or the
// sequence is empty), ε is included.
func firstOfSequence(seq []string, first Sets) container.StringSet {
	result := container.NewStringSet()
	if len(seq) == 0 {
		result.Add(grammar.Epsilon)
		return result
	}

	for i, sym := range seq {
		symFirst, ok := first[sym]
		if !ok {
			break
		}
		for _, t := range symFirst.Elements() {
			if t != grammar.Epsilon {
				result.Add(t)
			}
		}
		if !symFirst.Has(grammar.Epsilon) {
			break
		}
		if i == len(seq)-1 {
			result.Add(grammar.Epsilon)
		}
	}

	return result
}
