// Package ir maintains a three-address-code quadruple stream with
// monotonic fresh-temp/fresh-label counters, and translates a parse tree
// for the assignment/if-else/while/block language into that stream.
package ir

import (
	"fmt"
	"strings"
)

// Quad is one three-address-code instruction: {op, arg1, arg2, result}. The
// op vocabulary and the meaning of each field depend on op; see Builder.Dump.
type Quad struct {
	Op     string
	Arg1   string
	Arg2   string
	Result string
}

// Builder accumulates quadruples plus the two monotonic counters fresh
// temps and fresh labels are drawn from. Temps and labels are textual only;
// no symbol table is maintained.
type Builder struct {
	Quads     []Quad
	nextTemp  int
	nextLabel int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// NewTemp returns a fresh temporary name "t1", "t2", ….
func (b *Builder) NewTemp() string {
	b.nextTemp++
	return fmt.Sprintf("t%d", b.nextTemp)
}

// NewLabel returns a fresh label name "L1", "L2", ….
func (b *Builder) NewLabel() string {
	b.nextLabel++
	return fmt.Sprintf("L%d", b.nextLabel)
}

// Emit appends a quadruple.
func (b *Builder) Emit(op, arg1, arg2, result string) {
	b.Quads = append(b.Quads, Quad{Op: op, Arg1: arg1, Arg2: arg2, Result: result})
}

// binOpSymbol maps a binary quad op to the rendered infix symbol.
func binOpSymbol(op string) string {
	switch op {
	case "PLUS":
		return "+"
	case "MINUS":
		return "-"
	case "MULTIPLY":
		return "*"
	case "DIVIDE":
		return "/"
	case "MOD":
		return "%"
	case "EQUAL_EQUAL":
		return "=="
	case "NOT_EQUAL":
		return "!="
	case "GREATER":
		return ">"
	case "LESS":
		return "<"
	case "GREATER_EQUAL":
		return ">="
	case "LESS_EQUAL":
		return "<="
	default:
		return op
	}
}

// Dump renders the quadruple stream as text, one instruction per line:
// LABEL renders as "result:", GOTO/IF_FALSE/"=" as their named forms, and
// any other op as a binary-operator assignment.
func (b *Builder) Dump() string {
	var sb strings.Builder
	for _, q := range b.Quads {
		switch q.Op {
		case "LABEL":
			fmt.Fprintf(&sb, "%s:\n", q.Result)
		case "GOTO":
			fmt.Fprintf(&sb, "    goto %s\n", q.Result)
		case "IF_FALSE":
			fmt.Fprintf(&sb, "    ifFalse %s goto %s\n", q.Arg1, q.Result)
		case "=":
			fmt.Fprintf(&sb, "    %s = %s\n", q.Result, q.Arg1)
		default:
			fmt.Fprintf(&sb, "    %s = %s %s %s\n", q.Result, q.Arg1, binOpSymbol(q.Op), q.Arg2)
		}
	}
	return sb.String()
}
