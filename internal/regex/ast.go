// Package regex parses the restricted regular-expression syntax accepted by
// lexer rules (concatenation, union, Kleene star/plus, character classes,
// "any", and backslash escapes) into an AST suitable for Thompson
// construction.
package regex

import "fmt"

// Kind discriminates the variants of Node. Node is a single tagged struct
// rather than an interface hierarchy: every variant is small and the set of
// variants is closed, so a tag plus unused-field-per-variant reads more
// plainly than a type switch over interface implementations.
type Kind int

const (
	// Char matches a single literal byte, held in Node.Char.
	Char Kind = iota
	// Charset matches any byte in Node.Set (or, if Node.Negated, any byte
	// not in Node.Set and not the newline 0x0A).
	Charset
	// Any matches any byte except newline (0x0A).
	Any
	// Concat matches Node.Left followed by Node.Right.
	Concat
	// Union matches Node.Left or Node.Right.
	Union
	// Star matches Node.Child zero or more times.
	Star
	// Plus matches Node.Child one or more times.
	Plus
	// Epsilon matches the empty string.
	Epsilon
)

func (k Kind) String() string {
	switch k {
	case Char:
		return "Char"
	case Charset:
		return "Charset"
	case Any:
		return "Any"
	case Concat:
		return "Concat"
	case Union:
		return "Union"
	case Star:
		return "Star"
	case Plus:
		return "Plus"
	case Epsilon:
		return "Epsilon"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// CharSet is a set of bytes, as collected from a charset expression's range
// and literal members.
type CharSet map[byte]bool

// Has returns whether b is a member of the set.
func (c CharSet) Has(b byte) bool {
	return c[b]
}

// Add adds b to the set.
func (c CharSet) Add(b byte) {
	c[b] = true
}

// AddRange adds every byte in [lo, hi] (inclusive, order-independent) to the
// set.
func (c CharSet) AddRange(lo, hi byte) {
	if hi < lo {
		lo, hi = hi, lo
	}
	for b := int(lo); b <= int(hi); b++ {
		c[byte(b)] = true
	}
}

// Node is a regex AST node. Every non-leaf Kind has all of its children
// populated; leaf kinds (Char, Charset, Any, Epsilon) leave Left/Right/Child
// nil.
type Node struct {
	Kind    Kind
	Char    byte
	Set     CharSet
	Negated bool

	Left, Right, Child *Node
}

// NewChar returns a leaf node matching the single byte b.
func NewChar(b byte) *Node {
	return &Node{Kind: Char, Char: b}
}

// NewAny returns a leaf node matching any byte but newline.
func NewAny() *Node {
	return &Node{Kind: Any}
}

// NewEpsilon returns a leaf node matching the empty string.
func NewEpsilon() *Node {
	return &Node{Kind: Epsilon}
}

// NewCharset returns a node matching any byte in set (or, if negated, any
// byte not in set and not newline).
func NewCharset(set CharSet, negated bool) *Node {
	return &Node{Kind: Charset, Set: set, Negated: negated}
}

// NewConcat returns a node matching left followed by right.
func NewConcat(left, right *Node) *Node {
	return &Node{Kind: Concat, Left: left, Right: right}
}

// NewUnion returns a node matching left or right.
func NewUnion(left, right *Node) *Node {
	return &Node{Kind: Union, Left: left, Right: right}
}

// NewStar returns a node matching child zero or more times.
func NewStar(child *Node) *Node {
	return &Node{Kind: Star, Child: child}
}

// NewPlus returns a node matching child one or more times.
func NewPlus(child *Node) *Node {
	return &Node{Kind: Plus, Child: child}
}

// String gives a parenthesized rendering of the subtree rooted at n, useful
// for test failure messages and debugging generator output.
func (n *Node) String() string {
	if n == nil {
		return "<nil>"
	}
	switch n.Kind {
	case Char:
		return fmt.Sprintf("%q", string([]byte{n.Char}))
	case Any:
		return "."
	case Epsilon:
		return "ε"
	case Charset:
		neg := ""
		if n.Negated {
			neg = "^"
		}
		return fmt.Sprintf("[%s%d bytes]", neg, len(n.Set))
	case Concat:
		return fmt.Sprintf("(%s%s)", n.Left, n.Right)
	case Union:
		return fmt.Sprintf("(%s|%s)", n.Left, n.Right)
	case Star, Plus:
		// Concat and Union already render their own parentheses.
		inner := n.Child.String()
		if n.Child == nil || (n.Child.Kind != Concat && n.Child.Kind != Union) {
			inner = "(" + inner + ")"
		}
		if n.Kind == Star {
			return inner + "*"
		}
		return inner + "+"
	default:
		return "<invalid>"
	}
}
