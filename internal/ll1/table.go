package ll1

import (
	"sort"

	"github.com/dekarrin/langgen/internal/grammar"
	"github.com/dekarrin/rosed"
)

// Table is the LL(1) predictive parse table M: a partial mapping from
// (nonterminal, terminal-or-$) to the ProductionRule to apply.
type Table map[string]map[string]grammar.ProductionRule

// Get returns the rule at M[A, a] and whether one is set.
func (t Table) Get(a, terminal string) (grammar.ProductionRule, bool) {
	row, ok := t[a]
	if !ok {
		return grammar.ProductionRule{}, false
	}
	r, ok := row[terminal]
	return r, ok
}

func (t Table) set(a, terminal string, r grammar.ProductionRule) {
	row, ok := t[a]
	if !ok {
		row = map[string]grammar.ProductionRule{}
		t[a] = row
	}
	row[terminal] = r
}

// Conflict records one rejected LL(1) table entry: the grammar was not
// LL(1) at this (nonterminal, lookahead) cell, so Kept was retained and
// Rejected discarded.
type Conflict struct {
	NonTerminal string
	Lookahead   string
	Kept        grammar.ProductionRule
	Rejected    grammar.ProductionRule
}

// Result is the outcome of BuildTable: the table itself plus any conflicts
// encountered. A grammar is LL(1) for the fragment actually exercised by
// BuildTable iff Conflicts is empty.
type Result struct {
	Table     Table
	Conflicts []Conflict
}

// OK reports whether the grammar produced no LL(1) conflicts.
func (r Result) OK() bool {
	return len(r.Conflicts) == 0
}

// BuildTable fills M[A,a] from g's productions and the given FIRST/FOLLOW
// sets, applying a fixed conflict policy: on a collision, an
// ε-alternative already in the cell is overwritten by a non-ε alternative
// (resolving dangling-else-shaped ambiguities); a non-ε alternative already
// in the cell is never displaced; any other collision is recorded as a
// Conflict and the existing entry is kept. Emission never aborts on a
// conflict — the resulting table is simply wrong for the conflicting
// lookaheads, exactly as a hand-built LL(1) table would be.
func BuildTable(g *grammar.Grammar, first, follow Sets) Result {
	table := Table{}
	var conflicts []Conflict

	for _, p := range g.Productions {
		a := p.Left
		for altIdx, alt := range p.Alternatives {
			rule := grammar.ProductionRule{Left: a, AltIndex: altIdx}
			altFirst := firstOfSequence(alt, first)

			for _, term := range altFirst.Elements() {
				if term == grammar.Epsilon {
					continue
				}
				if c, conflicted := tryPut(table, g, a, term, rule); conflicted {
					conflicts = append(conflicts, c)
				}
			}

			if altFirst.Has(grammar.Epsilon) {
				for _, term := range follow[a].Elements() {
					if c, conflicted := tryPut(table, g, a, term, rule); conflicted {
						conflicts = append(conflicts, c)
					}
				}
			}
		}
	}

	return Result{Table: table, Conflicts: conflicts}
}

// tryPut attempts to set M[a, terminal] = newRule, applying the conflict
// policy. It reports the Conflict it recorded, if any.
func tryPut(table Table, g *grammar.Grammar, a, terminal string, newRule grammar.ProductionRule) (Conflict, bool) {
	oldRule, exists := table.Get(a, terminal)
	if !exists {
		table.set(a, terminal, newRule)
		return Conflict{}, false
	}

	oldIsEps := isEpsilonRule(g, oldRule)
	newIsEps := isEpsilonRule(g, newRule)

	if oldIsEps && !newIsEps {
		table.set(a, terminal, newRule)
		return Conflict{}, false
	}
	if !oldIsEps && newIsEps {
		return Conflict{}, false
	}

	c := Conflict{NonTerminal: a, Lookahead: terminal, Kept: oldRule, Rejected: newRule}
	return c, true
}

func isEpsilonRule(g *grammar.Grammar, r grammar.ProductionRule) bool {
	alt, ok := g.Rule(r)
	return ok && len(alt) == 0
}

// String renders the table as a bordered text grid, one row per
// nonterminal and one column per terminal (including $), each cell showing
// the rule it holds or blank.
func (t Table) String() string {
	ntSet := map[string]bool{}
	termSet := map[string]bool{}
	for a, row := range t {
		ntSet[a] = true
		for term := range row {
			termSet[term] = true
		}
	}

	nts := make([]string, 0, len(ntSet))
	for a := range ntSet {
		nts = append(nts, a)
	}
	sort.Strings(nts)

	terms := make([]string, 0, len(termSet))
	for term := range termSet {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	data := [][]string{append([]string{""}, terms...)}
	for _, a := range nts {
		row := []string{a}
		for _, term := range terms {
			if r, ok := t.Get(a, term); ok {
				row = append(row, r.String())
			} else {
				row = append(row, "")
			}
		}
		data = append(data, row)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 100, rosed.Options{TableBorders: true}).
		String()
}
