// Package emit renders in-memory scanner/parser specs into source text.
// Keeping this rendering surface separate from internal/lexgen and
// internal/parsergen's table-building algorithms means a new output
// language is a new Target implementation, never a change to the
// algorithms themselves.
package emit

import (
	"github.com/dekarrin/langgen/internal/lexgen"
	"github.com/dekarrin/langgen/internal/parsergen"
)

// Target renders a ScannerSpec or ParserSpec as compilable source in some
// target language.
type Target interface {
	Lexer(spec lexgen.ScannerSpec) (string, error)
	Parser(spec parsergen.ParserSpec) (string, error)
}
