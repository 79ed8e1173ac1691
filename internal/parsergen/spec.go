// Package parsergen builds a ParserSpec — the per-nonterminal routine
// descriptors a code emitter renders into a recursive-descent parser — from
// a grammar and its LL(1) table, in either of two flavors: a bare
// recognizer or a parse-tree builder.
package parsergen

import (
	"sort"
	"strings"

	"github.com/dekarrin/langgen/internal/grammar"
	"github.com/dekarrin/langgen/internal/ll1"
)

// Flavor selects what a generated nonterminal routine does with the symbols
// it recognizes.
type Flavor int

const (
	// Recognizer routines validate input and report errors but build
	// nothing.
	Recognizer Flavor = iota
	// TreeBuilder routines additionally construct and return a parse-tree
	// node per routine.
	TreeBuilder
)

// Symbol is one member of a production alternative, tagged with whether it
// is a terminal (consume directly) or nonterminal (recurse).
type Symbol struct {
	Name     string
	Terminal bool
}

// Case is one lookahead-dispatched branch of a nonterminal's routine: on
// seeing Lookahead, apply Rule by processing Symbols in order. RuleText is
// the rule rendered as "A -> X1 X2" (or "A -> ε"), for emitters to drop
// into the generated source as a debugging comment.
type Case struct {
	Lookahead string
	Rule      grammar.ProductionRule
	Symbols   []Symbol
	RuleText  string
}

// Routine is the generated parsing routine for one nonterminal.
type Routine struct {
	NonTerminal string
	Ident       string
	Cases       []Case
	Expected    []string
}

// ParserSpec is everything a code emitter needs to render a recursive-
// descent parser: which flavor to build, the start routine, and every
// nonterminal's routine, in a deterministic order suitable for direct
// template iteration.
type ParserSpec struct {
	Flavor     Flavor
	Start      string
	StartIdent string
	Routines   []Routine
}

// ruleText renders a production alternative as "left -> s1 s2" (or
// "left -> ε" for the empty alternative), for the per-case debugging
// comment a generated routine carries.
func ruleText(left string, alt []string) string {
	if len(alt) == 0 {
		return left + " -> " + grammar.Epsilon
	}
	return left + " -> " + strings.Join(alt, " ")
}

// ToIdent maps a grammar nonterminal name to a valid target-language
// identifier by replacing each prime mark (left over from removed-left-
// recursion auxiliaries, e.g. "E'") with an underscore.
func ToIdent(name string) string {
	return strings.ReplaceAll(name, "'", "_")
}

// Build constructs a ParserSpec for flavor from g's classified symbols and
// table, g's predictive parse table. Nonterminals are emitted in
// alphabetical order for deterministic output; within a routine, cases are
// ordered by lookahead terminal in byte order (so "$" sorts before letters),
// and the routine's Expected list holds the same lookaheads in that order.
func Build(g *grammar.Grammar, table ll1.Table, flavor Flavor) ParserSpec {
	spec := ParserSpec{
		Flavor:     flavor,
		Start:      g.Start,
		StartIdent: ToIdent(g.Start),
	}

	nts := g.Nonterminals.Elements()
	sort.Strings(nts)

	for _, nt := range nts {
		row := table[nt]
		var lookaheads []string
		for term := range row {
			lookaheads = append(lookaheads, term)
		}
		sort.Strings(lookaheads)

		routine := Routine{NonTerminal: nt, Ident: ToIdent(nt), Expected: lookaheads}
		for _, term := range lookaheads {
			rule := row[term]
			alt, _ := g.Rule(rule)
			symbols := make([]Symbol, 0, len(alt))
			for _, s := range alt {
				symbols = append(symbols, Symbol{Name: s, Terminal: g.IsTerminal(s)})
			}
			routine.Cases = append(routine.Cases, Case{Lookahead: term, Rule: rule, Symbols: symbols, RuleText: ruleText(nt, alt)})
		}

		spec.Routines = append(spec.Routines, routine)
	}

	return spec
}
