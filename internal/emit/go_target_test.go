package emit

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/dekarrin/langgen/internal/container"
	"github.com/dekarrin/langgen/internal/grammar"
	"github.com/dekarrin/langgen/internal/lexgen"
	"github.com/dekarrin/langgen/internal/ll1"
	"github.com/dekarrin/langgen/internal/parsergen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseGo(t *testing.T, src string) {
	t.Helper()
	fset := token.NewFileSet()
	_, err := parser.ParseFile(fset, "generated.go", src, parser.AllErrors)
	require.NoError(t, err, "generated source:\n%s", src)
}

func testScannerSpec(t *testing.T) lexgen.ScannerSpec {
	t.Helper()
	rules := []lexgen.Rule{
		{TokenType: "IF", Regex: "if"},
		{TokenType: "ID", Regex: "[a-z]+"},
		{TokenType: "NUMBER", Regex: "[0-9]+"},
		{TokenType: "WS", Regex: "[ \t\n]+", Ignore: true},
	}
	spec, err := lexgen.Build(rules)
	require.NoError(t, err)
	return spec
}

const emitExprGrammar = `
%start E
E -> T E'
E' -> + T E' | ε
T -> F T'
T' -> * F T' | ε
F -> ( E ) | id
`

func testParserSpec(t *testing.T, flavor parsergen.Flavor) parsergen.ParserSpec {
	t.Helper()
	known := container.NewStringSet([]string{"+", "*", "(", ")", "id"})
	g, warnings, err := grammar.Load(strings.NewReader(emitExprGrammar), known)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	first := ll1.First(g)
	follow := ll1.Follow(g, first)
	result := ll1.BuildTable(g, first, follow)
	require.True(t, result.OK())

	return parsergen.Build(g, result.Table, flavor)
}

func Test_GoTarget_Lexer_rendersValidGo(t *testing.T) {
	target := GoTarget{Package: "scangen"}
	src, err := target.Lexer(testScannerSpec(t))
	require.NoError(t, err)

	assert.Contains(t, src, "package scangen")
	assert.Contains(t, src, "func NewLexer(")
	assert.Contains(t, src, "generation id:")
	mustParseGo(t, src)
}

func Test_GoTarget_Parser_recognizer_rendersValidGo(t *testing.T) {
	target := GoTarget{Package: "parsegen"}
	src, err := target.Parser(testParserSpec(t, parsergen.Recognizer))
	require.NoError(t, err)

	assert.Contains(t, src, "package parsegen")
	assert.Contains(t, src, "func NewParser(")
	assert.NotContains(t, src, "type Node struct")
	mustParseGo(t, src)
}

func Test_GoTarget_Parser_treeBuilder_rendersValidGo(t *testing.T) {
	target := GoTarget{Package: "parsegen"}
	src, err := target.Parser(testParserSpec(t, parsergen.TreeBuilder))
	require.NoError(t, err)

	assert.Contains(t, src, "type Node struct")
	assert.Contains(t, src, "node.Children = append")
	mustParseGo(t, src)
}

func Test_GoTarget_defaultPackageName(t *testing.T) {
	target := GoTarget{}
	src, err := target.Lexer(testScannerSpec(t))
	require.NoError(t, err)
	assert.Contains(t, src, "package generated")
}
