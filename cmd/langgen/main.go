/*
Langgen reads a lexer-rule file and a context-free grammar file and generates
a scanner and an LL(1) predictive parser for the described language.

Usage:

	langgen --rules FILE --grammar FILE [flags]

The flags are:

	-r, --rules FILE
		The lexer-rule file: one "TOKEN_TYPE regex [IGNORE]" line per rule.

	-g, --grammar FILE
		The context-free grammar file: "%start" directive, "L -> alt" and
		"| alt" production lines.

	-o, --out DIR
		Directory to write the generated lexer.go and parser.go into.
		Defaults to the current directory. Use "-" to write both to stdout
		instead.

	-p, --package NAME
		Package name stamped into the generated source files. Defaults to
		"generated".

	-t, --tree
		Generate a parse-tree-building parser instead of a bare recognizer.

	-s, --sample FILE
		Run the given sample program through the generated pipeline (using
		a tree-building parser regardless of --tree) and write its
		three-address-code dump to sample.tac in the --out directory (or to
		stdout if --out is "-") instead of writing source files.

	-v, --version
		Give the current version of langgen and then exit.
*/
package main

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/dekarrin/langgen/internal/container"
	"github.com/dekarrin/langgen/internal/emit"
	"github.com/dekarrin/langgen/internal/grammar"
	"github.com/dekarrin/langgen/internal/ir"
	"github.com/dekarrin/langgen/internal/lexgen"
	"github.com/dekarrin/langgen/internal/ll1"
	"github.com/dekarrin/langgen/internal/parsergen"
	"github.com/dekarrin/langgen/internal/version"
	"github.com/spf13/pflag"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad or missing flags.
	ExitUsageError

	// ExitGenError indicates a failure somewhere in the generation pipeline.
	ExitGenError
)

var (
	returnCode  int     = ExitSuccess
	flagVersion *bool   = pflag.BoolP("version", "v", false, "Gives the version info")
	flagRules   *string = pflag.StringP("rules", "r", "", "The lexer-rule file")
	flagGrammar *string = pflag.StringP("grammar", "g", "", "The grammar file")
	flagOut     *string = pflag.StringP("out", "o", ".", "Directory to write generated source into, or \"-\" for stdout")
	flagPackage *string = pflag.StringP("package", "p", "generated", "Package name stamped into generated source")
	flagTree    *bool   = pflag.BoolP("tree", "t", false, "Generate a parse-tree-building parser")
	flagSample  *string = pflag.StringP("sample", "s", "", "Run a sample program through the pipeline and dump its TAC")
)

// config is the parsed, validated set of inputs run needs; it exists
// separately from the package-level flag vars so run can be exercised
// without going through pflag.
type config struct {
	rulesFile   string
	grammarFile string
	outDir      string
	packageName string
	tree        bool
	sampleFile  string
}

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	if *flagRules == "" || *flagGrammar == "" {
		fmt.Fprintf(os.Stderr, "ERROR: --rules and --grammar are required\nDo -h for help.\n")
		returnCode = ExitUsageError
		return
	}

	cfg := config{
		rulesFile:   *flagRules,
		grammarFile: *flagGrammar,
		outDir:      *flagOut,
		packageName: *flagPackage,
		tree:        *flagTree,
		sampleFile:  *flagSample,
	}

	if err := run(context.Background(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
		returnCode = ExitGenError
		return
	}
}

// tokenTypeSet collects every rule's token type into a set, the known-
// terminal vocabulary the grammar loader classifies symbols against.
func tokenTypeSet(rules []lexgen.Rule) container.StringSet {
	set := container.NewStringSet()
	for _, r := range rules {
		set.Add(r.TokenType)
	}
	return set
}

// readFile reads path, failing fast if ctx is already done rather than
// starting an I/O operation that will just be thrown away.
func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// run drives the full pipeline: load rules and grammar, build the scanner
// and parser specs, render them as Go source (or, given a sample program,
// run it through the generated pipeline directly and dump its TAC).
func run(ctx context.Context, cfg config) error {
	ruleBytes, err := readFile(ctx, cfg.rulesFile)
	if err != nil {
		return fmt.Errorf("reading rule file: %w", err)
	}
	rules, ruleWarnings, err := lexgen.LoadRules(bytes.NewReader(ruleBytes))
	if err != nil {
		return fmt.Errorf("loading lexer rules: %w", err)
	}
	for _, w := range ruleWarnings {
		log.Printf("warning: %s", w)
	}

	scannerSpec, err := lexgen.Build(rules)
	if err != nil {
		return fmt.Errorf("building scanner: %w", err)
	}

	grammarBytes, err := readFile(ctx, cfg.grammarFile)
	if err != nil {
		return fmt.Errorf("reading grammar file: %w", err)
	}

	knownTerminals := tokenTypeSet(rules)
	g, grammarWarnings, err := grammar.Load(bytes.NewReader(grammarBytes), knownTerminals)
	if err != nil {
		return fmt.Errorf("loading grammar: %w", err)
	}
	for _, w := range grammarWarnings {
		switch w.Kind {
		case grammar.KindMalformed:
			log.Printf("warning: malformed grammar line: %s", w)
		default:
			log.Printf("warning: unknown terminal: %s", w)
		}
	}

	first := ll1.First(g)
	follow := ll1.Follow(g, first)
	tableResult := ll1.BuildTable(g, first, follow)
	if !tableResult.OK() {
		for _, c := range tableResult.Conflicts {
			log.Printf("warning: LL(1) conflict in %s on lookahead %s: kept %s, rejected %s",
				c.NonTerminal, c.Lookahead, c.Kept, c.Rejected)
		}
	}

	flavor := parsergen.Recognizer
	if cfg.tree {
		flavor = parsergen.TreeBuilder
	}
	parserSpec := parsergen.Build(g, tableResult.Table, flavor)

	if cfg.sampleFile != "" {
		sampleBytes, err := readFile(ctx, cfg.sampleFile)
		if err != nil {
			return fmt.Errorf("reading sample program: %w", err)
		}
		return runSample(g, tableResult.Table, scannerSpec, sampleBytes, cfg.outDir)
	}

	target := emit.GoTarget{Package: cfg.packageName}
	lexerSrc, err := target.Lexer(scannerSpec)
	if err != nil {
		return fmt.Errorf("rendering lexer: %w", err)
	}
	parserSrc, err := target.Parser(parserSpec)
	if err != nil {
		return fmt.Errorf("rendering parser: %w", err)
	}

	return writeOutputs(cfg.outDir, lexerSrc, parserSrc)
}

// runSample scans and parses sampleBytes with a tree-building parser
// (regardless of the configured flavor, since TAC emission needs a parse
// tree) and writes the resulting quadruple dump to outDir's sample.tac, or
// to stdout if outDir is "-".
func runSample(g *grammar.Grammar, table ll1.Table, scannerSpec lexgen.ScannerSpec, sampleBytes []byte, outDir string) error {
	lx := lexgen.NewLexer(scannerSpec, sampleBytes)
	scanned, err := lx.Tokenize()
	if err != nil {
		return fmt.Errorf("scanning sample program: %w", err)
	}

	tokens := make([]parsergen.Token, len(scanned))
	for i, t := range scanned {
		tokens[i] = parsergen.Token{Type: t.Type, Text: t.Value}
	}

	treeSpec := parsergen.Build(g, table, parsergen.TreeBuilder)
	root, err := parsergen.Run(treeSpec, tokens)
	if err != nil {
		return fmt.Errorf("parsing sample program: %w", err)
	}

	b := ir.NewBuilder()
	if err := ir.Translate(root, b); err != nil {
		return fmt.Errorf("translating sample program: %w", err)
	}

	dump := b.Dump()
	if outDir == "-" {
		fmt.Print(dump)
		return nil
	}
	return os.WriteFile(filepath.Join(outDir, "sample.tac"), []byte(dump), 0644)
}

// writeOutputs writes lexerSrc/parserSrc to outDir's lexer.go/parser.go, or
// to stdout if outDir is "-".
func writeOutputs(outDir, lexerSrc, parserSrc string) error {
	if outDir == "-" {
		fmt.Print(lexerSrc)
		fmt.Print(parserSrc)
		return nil
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "lexer.go"), []byte(lexerSrc), 0644); err != nil {
		return fmt.Errorf("writing lexer.go: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "parser.go"), []byte(parserSrc), 0644); err != nil {
		return fmt.Errorf("writing parser.go: %w", err)
	}
	return nil
}
