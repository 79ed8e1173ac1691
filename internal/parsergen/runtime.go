package parsergen

import (
	"fmt"
	"strings"

	"github.com/dekarrin/langgen/internal/grammar"
)

// Token is the minimal token shape Run needs: a grammar terminal type and
// the lexeme it carries.
type Token struct {
	Type string
	Text string
}

// Node is a parse-tree node, built only when running a TreeBuilder-flavored
// spec: terminal leaves carry TokenText; nonterminal nodes have the chosen
// alternative's symbols as children in order.
type Node struct {
	Kind      string
	TokenText string
	Children  []*Node
}

// UnexpectedTokenError is returned when no case in a routine matches the
// current lookahead.
type UnexpectedTokenError struct {
	NonTerminal   string
	Lookahead     string
	LookaheadText string
	Expected      []string
}

func (e *UnexpectedTokenError) Error() string {
	return fmt.Sprintf("unexpected token for %s, expected one of: %s (got %s %q)",
		e.NonTerminal, strings.Join(e.Expected, ", "), e.Lookahead, e.LookaheadText)
}

// Run executes spec directly against tokens, the way a generated parser
// would run it, without going through a code emitter. This lets the table-
// to-routine translation be tested independent of any rendering target.
//
// For a Recognizer-flavored spec, the returned *Node is always nil; for a
// TreeBuilder-flavored spec it is the root parse tree.
func Run(spec ParserSpec, tokens []Token) (*Node, error) {
	p := &runner{spec: spec, tokens: tokens}
	root, err := p.parse(spec.Start)
	if err != nil {
		return nil, err
	}
	if p.current() != grammar.EndMarker {
		return root, fmt.Errorf("parsergen: expected EOF, found %s %q", p.current(), p.currentText())
	}
	return root, nil
}

type runner struct {
	spec   ParserSpec
	tokens []Token
	pos    int
}

func (p *runner) current() string {
	if p.pos >= len(p.tokens) {
		return grammar.EndMarker
	}
	return p.tokens[p.pos].Type
}

func (p *runner) currentText() string {
	if p.pos >= len(p.tokens) {
		return ""
	}
	return p.tokens[p.pos].Text
}

func (p *runner) consume() Token {
	t := p.tokens[p.pos]
	p.pos++
	return t
}

func (p *runner) routineFor(nt string) (Routine, bool) {
	for _, r := range p.spec.Routines {
		if r.NonTerminal == nt {
			return r, true
		}
	}
	return Routine{}, false
}

func (p *runner) parse(nt string) (*Node, error) {
	routine, ok := p.routineFor(nt)
	if !ok {
		return nil, fmt.Errorf("parsergen: no routine for %s", nt)
	}

	lookahead := p.current()
	var chosen *Case
	for i := range routine.Cases {
		if routine.Cases[i].Lookahead == lookahead {
			chosen = &routine.Cases[i]
			break
		}
	}
	if chosen == nil {
		return nil, &UnexpectedTokenError{
			NonTerminal:   nt,
			Lookahead:     lookahead,
			LookaheadText: p.currentText(),
			Expected:      routine.Expected,
		}
	}

	var node *Node
	if p.spec.Flavor == TreeBuilder {
		node = &Node{Kind: nt}
	}

	for _, sym := range chosen.Symbols {
		if sym.Terminal {
			if p.current() != sym.Name {
				return nil, &UnexpectedTokenError{
					NonTerminal:   nt,
					Lookahead:     p.current(),
					LookaheadText: p.currentText(),
					Expected:      []string{sym.Name},
				}
			}
			tok := p.consume()
			if node != nil {
				node.Children = append(node.Children, &Node{Kind: sym.Name, TokenText: tok.Text})
			}
			continue
		}

		child, err := p.parse(sym.Name)
		if err != nil {
			return nil, err
		}
		if node != nil {
			node.Children = append(node.Children, child)
		}
	}

	return node, nil
}
