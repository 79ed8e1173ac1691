package ll1

import (
	"strings"
	"testing"

	"github.com/dekarrin/langgen/internal/container"
	"github.com/dekarrin/langgen/internal/grammar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadGrammar(t *testing.T, src string, terms ...string) *grammar.Grammar {
	t.Helper()
	g, _, err := grammar.Load(strings.NewReader(src), container.NewStringSet(terms))
	require.NoError(t, err)
	return g
}

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

func Test_First_exprGrammar(t *testing.T) {
	g := loadGrammar(t, exprGrammar, "PLUS", "TIMES", "LPAREN", "RPAREN", "ID")
	first := First(g)

	assert.ElementsMatch(t, []string{"LPAREN", "ID"}, first["E"].Elements())
	assert.ElementsMatch(t, []string{"LPAREN", "ID"}, first["T"].Elements())
	assert.ElementsMatch(t, []string{"LPAREN", "ID"}, first["F"].Elements())
	assert.ElementsMatch(t, []string{"PLUS", "ε"}, first["E'"].Elements())
	assert.ElementsMatch(t, []string{"TIMES", "ε"}, first["T'"].Elements())
}

func Test_Follow_exprGrammar(t *testing.T) {
	g := loadGrammar(t, exprGrammar, "PLUS", "TIMES", "LPAREN", "RPAREN", "ID")
	first := First(g)
	follow := Follow(g, first)

	assert.ElementsMatch(t, []string{"$", "RPAREN"}, follow["E"].Elements())
	assert.ElementsMatch(t, []string{"$", "RPAREN"}, follow["E'"].Elements())
	assert.ElementsMatch(t, []string{"PLUS", "$", "RPAREN"}, follow["T"].Elements())
	assert.ElementsMatch(t, []string{"PLUS", "$", "RPAREN"}, follow["T'"].Elements())
	assert.ElementsMatch(t, []string{"PLUS", "TIMES", "$", "RPAREN"}, follow["F"].Elements())
}

func Test_BuildTable_exprGrammar_noConflicts(t *testing.T) {
	g := loadGrammar(t, exprGrammar, "PLUS", "TIMES", "LPAREN", "RPAREN", "ID")
	first := First(g)
	follow := Follow(g, first)
	result := BuildTable(g, first, follow)

	require.True(t, result.OK())

	r, ok := result.Table.Get("E'", "PLUS")
	require.True(t, ok)
	assert.Equal(t, 0, r.AltIndex)

	r, ok = result.Table.Get("E'", "$")
	require.True(t, ok)
	assert.Equal(t, 1, r.AltIndex)

	r, ok = result.Table.Get("E'", "RPAREN")
	require.True(t, ok)
	assert.Equal(t, 1, r.AltIndex)
}

func Test_BuildTable_danglingElse(t *testing.T) {
	src := `
%start Stmt
Stmt -> IF Stmt ElsePart
| OTHER
ElsePart -> ELSE Stmt
| ε
`
	g := loadGrammar(t, src, "IF", "ELSE", "OTHER")
	first := First(g)
	follow := Follow(g, first)
	result := BuildTable(g, first, follow)

	require.True(t, result.OK(), "dangling-else policy should avoid a reported conflict")

	r, ok := result.Table.Get("ElsePart", "ELSE")
	require.True(t, ok)
	assert.Equal(t, 0, r.AltIndex, "ELSE Stmt alternative must win on lookahead ELSE")
}

func Test_BuildTable_realConflictIsReported(t *testing.T) {
	src := `
%start S
S -> A
| B
A -> X
B -> X
`
	g := loadGrammar(t, src, "X")
	first := First(g)
	follow := Follow(g, first)
	result := BuildTable(g, first, follow)

	require.False(t, result.OK())
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, "S", result.Conflicts[0].NonTerminal)
	assert.Equal(t, "X", result.Conflicts[0].Lookahead)
}
