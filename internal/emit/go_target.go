package emit

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/dekarrin/langgen/internal/lexgen"
	"github.com/dekarrin/langgen/internal/parsergen"
	"github.com/google/uuid"
)

// GoTarget renders ScannerSpec/ParserSpec values as compilable Go source
// using text/template: a generated lexer/parser pair per grammar.
// Package is the package name stamped into the generated file's header.
type GoTarget struct {
	Package string
}

func (g GoTarget) packageName() string {
	if g.Package == "" {
		return "generated"
	}
	return g.Package
}

// provenanceHeader stamps a generation-run id into the emitted file so two
// runs over the same spec are distinguishable even when their content is
// identical.
func provenanceHeader(kind string) string {
	return fmt.Sprintf("// Code generated by langgen (%s). DO NOT EDIT.\n// generation id: %s\n", kind, uuid.New().String())
}

var lexerTemplate = template.Must(template.New("lexer").Parse(`{{.Header}}
package {{.Package}}

import "fmt"

// Token is one scanned lexeme: its rule's token type, the matched text, and
// the 1-based line/column of its first byte.
type Token struct {
	Type   string
	Value  string
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q, %d, %d)", t.Type, t.Value, t.Line, t.Column)
}

// UnexpectedCharacterError reports the offending byte and position when no
// rule matches at the current scan position.
type UnexpectedCharacterError struct {
	Byte   byte
	Line   int
	Column int
}

func (e *UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q at line %d, column %d", e.Byte, e.Line, e.Column)
}

type ruleDFA struct {
	start     int
	accepting []bool
	trans     [][256]int
}

func (d *ruleDFA) longestMatch(s []byte) int {
	state := d.start
	longest := 0
	for i := 0; i < len(s); i++ {
		next := d.trans[state][s[i]]
		if next < 0 {
			break
		}
		state = next
		if d.accepting[state] {
			longest = i + 1
		}
	}
	return longest
}

type ruleInfo struct {
	tokenType string
	ignore    bool
	dfa       *ruleDFA
}

var scannerRules = []ruleInfo{
{{range .Rules}}	{tokenType: "{{.TokenType}}", ignore: {{.Ignore}}, dfa: &ruleDFA{
		start:     {{.Start}},
		accepting: []bool{ {{.Accepting}} },
		trans: [][256]int{
{{.Trans}}
		},
	}},
{{end}}}

// Lexer scans scannerRules over an input buffer, implementing the
// longest-match/priority next-token contract: skip whitespace, run every
// rule, let the first matching IGNORE rule short-circuit, otherwise take
// the longest match among non-ignored rules (ties broken by rule order).
type Lexer struct {
	text   []byte
	pos    int
	line   int
	column int
}

func NewLexer(text []byte) *Lexer {
	return &Lexer{text: text, line: 1, column: 1}
}

func (l *Lexer) advance(n int) {
	for i := 0; i < n; i++ {
		if l.text[l.pos] == '\n' {
			l.line++
			l.column = 1
		} else {
			l.column++
		}
		l.pos++
	}
}

func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

func (l *Lexer) Next() (Token, bool, error) {
	for l.pos < len(l.text) && isWhitespace(l.text[l.pos]) {
		l.advance(1)
	}
	if l.pos >= len(l.text) {
		return Token{}, false, nil
	}

	longest := 0
	matchedType := ""
	for _, r := range scannerRules {
		n := r.dfa.longestMatch(l.text[l.pos:])
		if r.ignore {
			if n > 0 {
				l.advance(n)
				return l.Next()
			}
			continue
		}
		if n > longest {
			longest = n
			matchedType = r.tokenType
		}
	}

	if longest > 0 {
		tok := Token{Type: matchedType, Value: string(l.text[l.pos : l.pos+longest]), Line: l.line, Column: l.column}
		l.advance(longest)
		return tok, true, nil
	}

	err := &UnexpectedCharacterError{Byte: l.text[l.pos], Line: l.line, Column: l.column}
	return Token{}, false, err
}

func (l *Lexer) Tokenize() ([]Token, error) {
	var out []Token
	for {
		tok, ok, err := l.Next()
		if err != nil {
			return out, err
		}
		if !ok {
			return out, nil
		}
		out = append(out, tok)
	}
}
`))

type ruleTemplateData struct {
	TokenType string
	Ignore    bool
	Start     int
	Accepting string
	Trans     string
}

// Lexer renders spec as a standalone Go source file implementing a
// longest-match, priority-ordered scanner.
func (g GoTarget) Lexer(spec lexgen.ScannerSpec) (string, error) {
	data := struct {
		Header  string
		Package string
		Rules   []ruleTemplateData
	}{
		Header:  provenanceHeader("lexer"),
		Package: g.packageName(),
	}

	for _, rd := range spec.Rules {
		dfa := rd.DFA
		n := dfa.NumStates()

		accepting := make([]string, n)
		for i := 0; i < n; i++ {
			accepting[i] = fmt.Sprintf("%v", dfa.Accepting(i))
		}

		var transRows []string
		for i := 0; i < n; i++ {
			row := make([]string, 256)
			for b := 0; b < 256; b++ {
				row[b] = "-1"
			}
			for _, tr := range dfa.Transitions(i) {
				row[tr.On] = fmt.Sprintf("%d", tr.Next)
			}
			transRows = append(transRows, fmt.Sprintf("\t\t\t{%s},", strings.Join(row, ", ")))
		}

		data.Rules = append(data.Rules, ruleTemplateData{
			TokenType: rd.Rule.TokenType,
			Ignore:    rd.Rule.Ignore,
			Start:     dfa.Start,
			Accepting: strings.Join(accepting, ", "),
			Trans:     strings.Join(transRows, "\n"),
		})
	}

	var buf bytes.Buffer
	if err := lexerTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("emit: rendering lexer: %w", err)
	}
	return buf.String(), nil
}

var parserTemplate = template.Must(template.New("parser").Parse(`{{.Header}}
package {{.Package}}

import (
	"fmt"
	"strings"
)

// Token is the minimal shape the parser needs from a scanned lexeme.
type Token struct {
	Type  string
	Value string
}
{{if .BuildsTree}}
// Node is a parse-tree node: terminal leaves carry TokenText, nonterminal
// nodes hold the chosen alternative's symbols as children in order.
type Node struct {
	Kind      string
	TokenText string
	Children  []*Node
}
{{end}}
// UnexpectedTokenError reports a lookahead with no matching production.
type UnexpectedTokenError struct {
	NonTerminal string
	Lookahead   string
	Expected    []string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token for %s, expected one of: %s (got %s)",
		e.NonTerminal, strings.Join(e.Expected, ", "), e.Lookahead)
}

type Parser struct {
	tokens []Token
	pos    int
}

func NewParser(tokens []Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) current() string {
	if p.pos >= len(p.tokens) {
		return "$"
	}
	return p.tokens[p.pos].Type
}

func (p *Parser) consume() Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

// Parse runs the start routine and checks that input is fully consumed.
func (p *Parser) Parse() {{if .BuildsTree}}(*Node, error){{else}}error{{end}} {
	{{if .BuildsTree}}root, err := p.parse{{.StartIdent}}()
	if err != nil {
		return nil, err
	}
	if p.current() != "$" {
		return root, fmt.Errorf("expected EOF, found %s", p.current())
	}
	return root, nil{{else}}if err := p.parse{{.StartIdent}}(); err != nil {
		return err
	}
	if p.current() != "$" {
		return fmt.Errorf("expected EOF, found %s", p.current())
	}
	return nil{{end}}
}
{{range .Routines}}{{$nt := .NonTerminal}}
func (p *Parser) parse{{.Ident}}() {{if $.BuildsTree}}(*Node, error){{else}}error{{end}} {
	lookahead := p.current()
	{{if $.BuildsTree}}node := &Node{Kind: "{{.NonTerminal}}"}
	{{end}}switch lookahead {
{{range .Cases}}	// {{.RuleText}}
	case "{{.Lookahead}}":
{{range .Symbols}}{{if .Terminal}}		if p.current() != "{{.Name}}" {
			return {{if $.BuildsTree}}nil, {{end}}&UnexpectedTokenError{NonTerminal: "{{$nt}}", Lookahead: p.current(), Expected: []string{"{{.Name}}"}}
		}
		{{if $.BuildsTree}}node.Children = append(node.Children, &Node{Kind: "{{.Name}}", TokenText: p.consume().Value})
		{{else}}p.consume()
		{{end}}{{else}}{{if $.BuildsTree}}if child, err := p.parse{{.Ident}}(); err != nil {
			return nil, err
		} else {
			node.Children = append(node.Children, child)
		}
		{{else}}if err := p.parse{{.Ident}}(); err != nil {
			return err
		}
		{{end}}{{end}}{{end}}
{{end}}	default:
		return {{if $.BuildsTree}}nil, {{end}}&UnexpectedTokenError{NonTerminal: "{{.NonTerminal}}", Lookahead: lookahead, Expected: []string{ {{.ExpectedList}} }}
	}
	return {{if $.BuildsTree}}node, nil{{else}}nil{{end}}
}
{{end}}`))

type caseSymbolData struct {
	Terminal bool
	Name     string
	Ident    string
}

type caseData struct {
	Lookahead string
	RuleText  string
	Symbols   []caseSymbolData
}

type routineData struct {
	NonTerminal  string
	Ident        string
	Cases        []caseData
	ExpectedList string
}

// Parser renders spec as a standalone recursive-descent Go parser.
func (g GoTarget) Parser(spec parsergen.ParserSpec) (string, error) {
	data := struct {
		Header     string
		Package    string
		StartIdent string
		BuildsTree bool
		Routines   []routineData
	}{
		Header:     provenanceHeader("parser"),
		Package:    g.packageName(),
		StartIdent: spec.StartIdent,
		BuildsTree: spec.Flavor == parsergen.TreeBuilder,
	}

	for _, r := range spec.Routines {
		rd := routineData{NonTerminal: r.NonTerminal, Ident: r.Ident}
		quoted := make([]string, len(r.Expected))
		for i, e := range r.Expected {
			quoted[i] = fmt.Sprintf("%q", e)
		}
		rd.ExpectedList = strings.Join(quoted, ", ")

		for _, c := range r.Cases {
			cd := caseData{Lookahead: c.Lookahead, RuleText: c.RuleText}
			for _, s := range c.Symbols {
				cd.Symbols = append(cd.Symbols, caseSymbolData{Terminal: s.Terminal, Name: s.Name, Ident: parsergen.ToIdent(s.Name)})
			}
			rd.Cases = append(rd.Cases, cd)
		}
		data.Routines = append(data.Routines, rd)
	}

	var buf bytes.Buffer
	if err := parserTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("emit: rendering parser: %w", err)
	}
	return buf.String(), nil
}
