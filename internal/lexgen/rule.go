// Package lexgen builds a ScannerSpec — the per-rule minimized DFAs plus
// longest-match/priority driver metadata a code emitter needs — from an
// ordered list of lexer rules, and runs that same spec directly so the
// generator's own tests can exercise scanning without going through
// generated source.
package lexgen

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Rule is one line of a lexer-rule file: a token type, the regex that
// recognizes it, and whether matches are discarded rather than tokenized
// (whitespace, comments). Order is significant — it is the tiebreak for
// longest-match ties and the short-circuit order for IGNORE rules.
type Rule struct {
	TokenType string
	Regex     string
	Ignore    bool
}

// LoadRules reads a lexer-rule file: one rule per line, blank lines and
// lines starting with '#' (after leading whitespace is trimmed) ignored.
// A line is "<TOKEN_TYPE> <regex>" optionally followed by the literal word
// IGNORE anywhere after the regex. Malformed lines (missing a regex) are
// skipped with a warning rather than aborting the whole file.
func LoadRules(r io.Reader) (rules []Rule, warnings []string, err error) {
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		fields := strings.Fields(trimmed)
		if len(fields) < 2 {
			warnings = append(warnings, fmt.Sprintf("line %d: malformed rule, skipping: %q", lineNo, line))
			continue
		}

		tokenType := fields[0]
		rest := strings.TrimSpace(trimmed[len(tokenType):])

		ignore := false
		if idx := strings.Index(rest, "IGNORE"); idx >= 0 {
			ignore = true
			rest = strings.TrimSpace(rest[:idx])
		}

		if rest == "" {
			warnings = append(warnings, fmt.Sprintf("line %d: malformed rule, skipping: %q", lineNo, line))
			continue
		}

		rules = append(rules, Rule{TokenType: tokenType, Regex: rest, Ignore: ignore})
	}
	if err := scanner.Err(); err != nil {
		return nil, warnings, fmt.Errorf("lexgen: reading rules: %w", err)
	}
	return rules, warnings, nil
}
