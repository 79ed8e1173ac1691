package grammar

import (
	"strings"
	"testing"

	"github.com/dekarrin/langgen/internal/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load_basic(t *testing.T) {
	src := `
%start E
# classic expression grammar
E -> T E'
E' -> PLUS T E'
| ε
T -> F T'
T' -> TIMES F T'
| ε
F -> LPAREN E RPAREN
| ID
`
	known := container.NewStringSet([]string{"PLUS", "TIMES", "LPAREN", "RPAREN", "ID"})
	g, warnings, err := Load(strings.NewReader(src), known)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	assert.Equal(t, "E", g.Start)
	assert.True(t, g.IsNonterminal("E"))
	assert.True(t, g.IsNonterminal("E'"))
	assert.True(t, g.IsTerminal("PLUS"))
	assert.True(t, g.IsTerminal("ID"))

	eProd, ok := g.ProductionByLeft("E'")
	require.True(t, ok)
	require.Len(t, eProd.Alternatives, 2)
	assert.Equal(t, []string{"PLUS", "T", "E'"}, eProd.Alternatives[0])
	assert.Empty(t, eProd.Alternatives[1])
}

func Test_Load_defaultStart(t *testing.T) {
	g, _, err := Load(strings.NewReader("S -> A\nA -> ID\n"), container.NewStringSet([]string{"ID"}))
	require.NoError(t, err)
	assert.Equal(t, "S", g.Start)
}

func Test_Load_unknownTerminalWarns(t *testing.T) {
	g, warnings, err := Load(strings.NewReader("S -> FOO\n"), container.NewStringSet())
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, KindUnknownTerminal, warnings[0].Kind)
	assert.Equal(t, "FOO", warnings[0].Symbol)
	assert.True(t, g.IsTerminal("FOO"))
}

func Test_Load_malformedLineWarns(t *testing.T) {
	g, warnings, err := Load(strings.NewReader("S -> ID\nthis line has no arrow\n"), container.NewStringSet([]string{"ID"}))
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, KindMalformed, warnings[0].Kind)
	assert.Equal(t, 2, warnings[0].Line)
	assert.ErrorIs(t, warnings[0].Err, ErrMalformed)
	assert.Equal(t, "S", g.Start)
}

func Test_Load_pipeContinuesLastLHS(t *testing.T) {
	g, _, err := Load(strings.NewReader("S -> A\n| B\n"), container.NewStringSet([]string{"A", "B"}))
	require.NoError(t, err)
	p, ok := g.ProductionByLeft("S")
	require.True(t, ok)
	require.Len(t, p.Alternatives, 2)
	assert.Equal(t, []string{"A"}, p.Alternatives[0])
	assert.Equal(t, []string{"B"}, p.Alternatives[1])
}

func Test_Load_multipleLinesSameLHSMerge(t *testing.T) {
	g, _, err := Load(strings.NewReader("S -> A\nS -> B\n"), container.NewStringSet([]string{"A", "B"}))
	require.NoError(t, err)
	require.Len(t, g.Productions, 1)
	assert.Len(t, g.Productions[0].Alternatives, 2)
}
