package ir

import (
	"fmt"

	"github.com/dekarrin/langgen/internal/parsergen"
)

// Translate walks a TreeBuilder-flavored parse tree for the
// assignment/if-else/while/block language and emits its three-address code
// into b. root must be the "Program" node.
func Translate(root *parsergen.Node, b *Builder) error {
	if root == nil {
		return fmt.Errorf("ir: nil parse tree")
	}
	if root.Kind != "Program" {
		return fmt.Errorf("ir: unsupported root node kind %q", root.Kind)
	}
	return genStmtList(childAt(root, 0), b)
}

func childAt(n *parsergen.Node, i int) *parsergen.Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// genStmtList implements StmtList -> Stmt StmtList | ε.
func genStmtList(n *parsergen.Node, b *Builder) error {
	if n == nil || len(n.Children) == 0 {
		return nil
	}
	if err := genStmt(childAt(n, 0), b); err != nil {
		return err
	}
	if len(n.Children) > 1 {
		return genStmtList(childAt(n, 1), b)
	}
	return nil
}

// genStmt implements Stmt -> AssignStmt | IfStmt | WhileStmt | Block.
func genStmt(n *parsergen.Node, b *Builder) error {
	if n == nil {
		return nil
	}
	first := childAt(n, 0)
	if first == nil {
		return fmt.Errorf("ir: malformed Stmt node")
	}

	switch first.Kind {
	case "AssignStmt":
		// AssignStmt -> ID EQUAL Expr SEMICOLON
		id := childAt(first, 0)
		if id == nil {
			return fmt.Errorf("ir: malformed AssignStmt")
		}
		val, err := genExpr(childAt(first, 2), b)
		if err != nil {
			return err
		}
		b.Emit("=", val, "", id.TokenText)
		return nil

	case "IfStmt":
		// IfStmt -> IF LPAREN Expr RPAREN Stmt ElsePart
		cond, err := genExpr(childAt(first, 2), b)
		if err != nil {
			return err
		}
		thenNode := childAt(first, 4)
		elsePart := childAt(first, 5)

		lElse := b.NewLabel()
		lEnd := b.NewLabel()
		b.Emit("IF_FALSE", cond, "", lElse)
		if err := genStmt(thenNode, b); err != nil {
			return err
		}
		b.Emit("GOTO", "", "", lEnd)
		b.Emit("LABEL", "", "", lElse)
		if elsePart != nil && len(elsePart.Children) > 0 {
			// ElsePart -> ELSE Stmt
			if err := genStmt(childAt(elsePart, 1), b); err != nil {
				return err
			}
		}
		b.Emit("LABEL", "", "", lEnd)
		return nil

	case "WhileStmt":
		// WhileStmt -> WHILE LPAREN Expr RPAREN Stmt
		lBegin := b.NewLabel()
		lEnd := b.NewLabel()
		b.Emit("LABEL", "", "", lBegin)
		cond, err := genExpr(childAt(first, 2), b)
		if err != nil {
			return err
		}
		b.Emit("IF_FALSE", cond, "", lEnd)
		if err := genStmt(childAt(first, 4), b); err != nil {
			return err
		}
		b.Emit("GOTO", "", "", lBegin)
		b.Emit("LABEL", "", "", lEnd)
		return nil

	case "Block":
		// Block -> LBRACE StmtList RBRACE
		return genStmtList(childAt(first, 1), b)

	default:
		return fmt.Errorf("ir: unsupported Stmt kind %q", first.Kind)
	}
}

// genExpr walks the left-recursion-removed expression hierarchy
// (RelExpr > AddExpr > MulExpr > UnaryExpr > Primary), returning the name
// holding the expression's value (a temp, an identifier, or a literal).
func genExpr(n *parsergen.Node, b *Builder) (string, error) {
	if n == nil {
		return "", fmt.Errorf("ir: nil Expr node")
	}

	switch n.Kind {
	case "NUMBER", "FLOAT_NUMBER", "ID":
		return n.TokenText, nil

	case "Expr":
		return genExpr(childAt(n, 0), b)

	case "Primary":
		switch len(n.Children) {
		case 1:
			return genExpr(childAt(n, 0), b)
		case 3:
			return genExpr(childAt(n, 1), b)
		default:
			return "", fmt.Errorf("ir: malformed Primary node")
		}

	case "UnaryExpr":
		if len(n.Children) == 2 {
			rhs, err := genExpr(childAt(n, 1), b)
			if err != nil {
				return "", err
			}
			tmp := b.NewTemp()
			b.Emit("MINUS", "0", rhs, tmp)
			return tmp, nil
		}
		return genExpr(childAt(n, 0), b)

	case "MulExpr", "AddExpr", "RelExpr":
		left, err := genExpr(childAt(n, 0), b)
		if err != nil {
			return "", err
		}
		tail := childAt(n, 1)
		for tail != nil && len(tail.Children) > 0 {
			opNode := childAt(tail, 0)
			right, err := genExpr(childAt(tail, 1), b)
			if err != nil {
				return "", err
			}
			tmp := b.NewTemp()
			b.Emit(opNode.Kind, left, right, tmp)
			left = tmp
			tail = childAt(tail, 2)
		}
		return left, nil
	}

	return "", fmt.Errorf("ir: unsupported Expr node kind %q", n.Kind)
}
