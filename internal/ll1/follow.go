package ll1

import (
	"github.com/dekarrin/langgen/internal/container"
	"github.com/dekarrin/langgen/internal/grammar"
)

// Follow computes FOLLOW(A) for every nonterminal A in g given its FIRST
// sets, by fixed-point iteration over productions.
func Follow(g *grammar.Grammar, first Sets) Sets {
	follow := Sets{}
	for _, nt := range g.Nonterminals.Elements() {
		follow[nt] = container.NewStringSet()
	}
	if g.Start != "" {
		follow[g.Start].Add(grammar.EndMarker)
	}

	changed := true
	for changed {
		changed = false
		for _, p := range g.Productions {
			a := p.Left
			for _, alt := range p.Alternatives {
				for i, b := range alt {
					if !g.IsNonterminal(b) {
						continue
					}
					beta := alt[i+1:]
					before := follow[b].Len()

					betaFirst := firstOfSequence(beta, first)
					for _, t := range betaFirst.Elements() {
						if t != grammar.Epsilon {
							follow[b].Add(t)
						}
					}
					if len(beta) == 0 || betaFirst.Has(grammar.Epsilon) {
						follow[b].AddAll(follow[a])
					}

					if follow[b].Len() != before {
						changed = true
					}
				}
			}
		}
	}

	return follow
}
