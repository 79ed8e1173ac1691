package parsergen

import (
	"strings"
	"testing"

	"github.com/dekarrin/langgen/internal/container"
	"github.com/dekarrin/langgen/internal/grammar"
	"github.com/dekarrin/langgen/internal/ll1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exprGrammar = `
%start E
E -> T E'
E' -> PLUS T E'
| ε
T -> F T'
T' -> TIMES F T'
| ε
F -> LPAREN E RPAREN
| ID
`

func buildExprSpec(t *testing.T, flavor Flavor) ParserSpec {
	t.Helper()
	g, _, err := grammar.Load(strings.NewReader(exprGrammar), container.NewStringSet([]string{"PLUS", "TIMES", "LPAREN", "RPAREN", "ID"}))
	require.NoError(t, err)
	first := ll1.First(g)
	follow := ll1.Follow(g, first)
	result := ll1.BuildTable(g, first, follow)
	require.True(t, result.OK())
	return Build(g, result.Table, flavor)
}

func Test_ToIdent(t *testing.T) {
	assert.Equal(t, "E_", ToIdent("E'"))
	assert.Equal(t, "Stmt", ToIdent("Stmt"))
}

func Test_Run_recognizer_validInput(t *testing.T) {
	spec := buildExprSpec(t, Recognizer)
	tokens := []Token{
		{Type: "ID", Text: "x"},
		{Type: "PLUS", Text: "+"},
		{Type: "ID", Text: "y"},
		{Type: "TIMES", Text: "*"},
		{Type: "ID", Text: "z"},
	}
	node, err := Run(spec, tokens)
	require.NoError(t, err)
	assert.Nil(t, node)
}

func Test_Run_recognizer_invalidInput(t *testing.T) {
	spec := buildExprSpec(t, Recognizer)
	tokens := []Token{
		{Type: "PLUS", Text: "+"},
	}
	_, err := Run(spec, tokens)
	require.Error(t, err)
	var ute *UnexpectedTokenError
	require.ErrorAs(t, err, &ute)
}

func Test_Run_treeBuilder_shape(t *testing.T) {
	spec := buildExprSpec(t, TreeBuilder)
	tokens := []Token{
		{Type: "ID", Text: "x"},
		{Type: "PLUS", Text: "+"},
		{Type: "ID", Text: "y"},
	}
	node, err := Run(spec, tokens)
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, "E", node.Kind)
	require.Len(t, node.Children, 2)
	assert.Equal(t, "T", node.Children[0].Kind)
	assert.Equal(t, "E'", node.Children[1].Kind)
}

func Test_Run_parenthesized(t *testing.T) {
	spec := buildExprSpec(t, TreeBuilder)
	tokens := []Token{
		{Type: "LPAREN", Text: "("},
		{Type: "ID", Text: "x"},
		{Type: "RPAREN", Text: ")"},
	}
	node, err := Run(spec, tokens)
	require.NoError(t, err)
	require.NotNil(t, node)
}
