// Package grammar loads a context-free grammar file and classifies its
// symbols against a lexer's token types, producing the Grammar value C7's
// FIRST/FOLLOW computation and C8's table builder consume.
package grammar

import (
	"fmt"

	"github.com/dekarrin/langgen/internal/container"
)

// Epsilon is the reserved symbol denoting the empty alternative.
const Epsilon = "ε"

// EndMarker is the reserved end-of-input symbol, "$".
const EndMarker = "$"

// ProductionRule identifies one alternative of one production: the k-th
// alternative of nonterminal Left.
type ProductionRule struct {
	Left     string
	AltIndex int
}

func (r ProductionRule) String() string {
	return fmt.Sprintf("%s#%d", r.Left, r.AltIndex)
}

// Production is one nonterminal's ordered list of alternatives. An
// alternative is an ordered sequence of symbols; an empty sequence denotes
// the ε-alternative.
type Production struct {
	Left         string
	Alternatives [][]string
}

// Grammar is a loaded, classified context-free grammar: a start symbol, the
// terminal and nonterminal symbol sets, and the ordered production list.
type Grammar struct {
	Start        string
	Terminals    container.StringSet
	Nonterminals container.StringSet
	Productions  []Production
}

// ProductionByLeft returns the Production for nt and whether it exists.
func (g *Grammar) ProductionByLeft(nt string) (Production, bool) {
	for _, p := range g.Productions {
		if p.Left == nt {
			return p, true
		}
	}
	return Production{}, false
}

// Rule resolves a ProductionRule to its alternative (the ordered symbol
// sequence it names).
func (g *Grammar) Rule(r ProductionRule) ([]string, bool) {
	p, ok := g.ProductionByLeft(r.Left)
	if !ok || r.AltIndex < 0 || r.AltIndex >= len(p.Alternatives) {
		return nil, false
	}
	return p.Alternatives[r.AltIndex], true
}

// IsTerminal reports whether sym is a terminal or the reserved end marker.
func (g *Grammar) IsTerminal(sym string) bool {
	return sym == EndMarker || g.Terminals.Has(sym)
}

// IsNonterminal reports whether sym is a nonterminal.
func (g *Grammar) IsNonterminal(sym string) bool {
	return g.Nonterminals.Has(sym)
}

func (g *Grammar) String() string {
	s := fmt.Sprintf("Grammar{start=%s, terminals=%s, nonterminals=%s}\n", g.Start, g.Terminals, g.Nonterminals)
	for _, p := range g.Productions {
		for i, alt := range p.Alternatives {
			sep := "->"
			if i > 0 {
				sep = "| "
			}
			if len(alt) == 0 {
				s += fmt.Sprintf("  %s %s %s\n", p.Left, sep, Epsilon)
			} else {
				s += fmt.Sprintf("  %s %s", p.Left, sep)
				for _, sym := range alt {
					s += " " + sym
				}
				s += "\n"
			}
		}
	}
	return s
}
