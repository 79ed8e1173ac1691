package lexgen

import (
	"errors"
	"fmt"

	"github.com/dekarrin/langgen/internal/automaton"
	"github.com/dekarrin/langgen/internal/regex"
)

// ErrSyntax is returned (wrapped) when a rule's regex fails to parse.
var ErrSyntax = regex.ErrSyntax

// RuleDFA pairs a rule with its minimized matcher, positionally aligned to
// the rule list a ScannerSpec was built from.
type RuleDFA struct {
	Rule Rule
	DFA  *automaton.DFA
}

// ScannerSpec is everything a code emitter needs to render a scanner:
// the ordered rule/DFA pairs, in source-file order, which both the
// longest-match tiebreak and the IGNORE short-circuit depend on.
type ScannerSpec struct {
	Rules []RuleDFA
}

// Build compiles each rule's regex through the full regex → NFA → DFA →
// minimized-DFA pipeline (C1–C4) and returns the resulting spec, positionally
// aligned with rules. The first rule to fail to parse aborts the build.
func Build(rules []Rule) (ScannerSpec, error) {
	spec := ScannerSpec{Rules: make([]RuleDFA, 0, len(rules))}
	for i, r := range rules {
		node, err := regex.Parse(r.Regex)
		if err != nil {
			return ScannerSpec{}, fmt.Errorf("lexgen: rule %d (%s): %w", i, r.TokenType, err)
		}
		dfa := automaton.ToDFA(automaton.Build(node)).Minimize()
		spec.Rules = append(spec.Rules, RuleDFA{Rule: r, DFA: dfa})
	}
	return spec, nil
}

// ErrUnexpectedByte is wrapped by Lexer.Next when no rule's DFA accepts any
// non-empty prefix at the current position.
var ErrUnexpectedByte = errors.New("lexgen: unexpected character")
