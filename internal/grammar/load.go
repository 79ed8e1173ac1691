package grammar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dekarrin/langgen/internal/container"
)

// ErrMalformed wraps every warning produced for a production line that
// cannot be parsed at all (no '->' and not a '%start' or '|'-continuation).
// The line is skipped; Load does not treat this as fatal.
var ErrMalformed = errors.New("grammar: malformed production line")

// WarningKind discriminates the findings Load can report without failing.
type WarningKind int

const (
	// KindUnknownTerminal marks a symbol accepted as a terminal only because
	// it appeared in a production and was not declared a nonterminal; it was
	// not found among the lexer's known token types.
	KindUnknownTerminal WarningKind = iota
	// KindMalformed marks a production line that was skipped because it had
	// no recognizable shape.
	KindMalformed
)

// Warning is a non-fatal finding from Load. Symbol and Line are populated
// according to Kind: KindUnknownTerminal sets Symbol, KindMalformed sets
// Line and Err (wrapping ErrMalformed, for errors.Is).
type Warning struct {
	Kind    WarningKind
	Symbol  string
	Line    int
	Err     error
	Message string
}

func (w Warning) String() string {
	return w.Message
}

// Load reads a grammar file (blank lines and '#'-comment lines ignored,
// leading whitespace on a comment line is trimmed before checking for '#')
// and classifies its symbols against knownTerminals, the lexer's set of
// token types. A production line is "L -> α", where '|' inside α separates
// further alternatives; a line starting with '|' extends the most recently
// named LHS with another alternative (or several, again '|'-separated); the
// literal token ε denotes the empty alternative. A %start directive names
// the start symbol; otherwise the first production's LHS is used.
func Load(r io.Reader, knownTerminals container.StringSet) (*Grammar, []Warning, error) {
	g := &Grammar{
		Terminals:    container.NewStringSet(),
		Nonterminals: container.NewStringSet(),
	}

	var allSymbols container.StringSet = container.NewStringSet()
	var currentLeft string
	haveCurrent := false
	var warnings []Warning

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if strings.HasPrefix(line, "%start") {
			fields := strings.Fields(line)
			if len(fields) >= 2 {
				g.Start = fields[1]
			}
			continue
		}

		if strings.HasPrefix(line, "|") {
			if !haveCurrent {
				continue
			}
			for _, candidate := range strings.Split(line[1:], "|") {
				appendAlt(g, currentLeft, parseAlternative(candidate, allSymbols))
			}
			continue
		}

		arrow := strings.Index(line, "->")
		if arrow < 0 {
			warnings = append(warnings, Warning{
				Kind:    KindMalformed,
				Line:    lineNo,
				Err:     ErrMalformed,
				Message: fmt.Sprintf("line %d: malformed production, skipping: %q", lineNo, line),
			})
			continue
		}

		left := strings.TrimSpace(line[:arrow])
		right := strings.TrimSpace(line[arrow+2:])

		g.Nonterminals.Add(left)
		allSymbols.Add(left)
		currentLeft = left
		haveCurrent = true

		if right != "" {
			for _, candidate := range strings.Split(right, "|") {
				appendAlt(g, left, parseAlternative(candidate, allSymbols))
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("grammar: reading grammar: %w", err)
	}

	for _, sym := range allSymbols.Elements() {
		if sym == Epsilon || g.Nonterminals.Has(sym) {
			continue
		}
		if knownTerminals.Has(sym) {
			g.Terminals.Add(sym)
			continue
		}
		g.Terminals.Add(sym)
		warnings = append(warnings, Warning{
			Kind:    KindUnknownTerminal,
			Symbol:  sym,
			Message: fmt.Sprintf("unknown terminal symbol %q: not defined in lexer rules", sym),
		})
	}

	if g.Start == "" && len(g.Productions) > 0 {
		g.Start = g.Productions[0].Left
	}

	return g, warnings, nil
}

// parseAlternative splits a candidate alternative's symbols on whitespace,
// dropping the reserved ε token and recording every non-ε symbol into seen.
func parseAlternative(candidate string, seen container.StringSet) []string {
	fields := strings.Fields(candidate)
	var out []string
	for _, sym := range fields {
		if sym == Epsilon {
			continue
		}
		out = append(out, sym)
		seen.Add(sym)
	}
	return out
}

// appendAlt finds (or creates) left's Production and appends alt as its next
// alternative.
func appendAlt(g *Grammar, left string, alt []string) {
	for i := range g.Productions {
		if g.Productions[i].Left == left {
			g.Productions[i].Alternatives = append(g.Productions[i].Alternatives, alt)
			return
		}
	}
	g.Productions = append(g.Productions, Production{Left: left, Alternatives: [][]string{alt}})
}
