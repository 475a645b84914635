package gen

import (
	"fmt"
	"strconv"
	"unicode"

	"jsrb/internal/ast"
)

func (g *Generator) callExpression(n *ast.Node) error {
	if err := g.node(n.Callee); err != nil {
		return err
	}
	g.buf.Add("(")
	for i, arg := range n.Arguments {
		if i > 0 {
			g.buf.Add(", ")
		}
		if err := g.node(arg); err != nil {
			return err
		}
	}
	g.buf.Add(")")
	return nil
}

func (g *Generator) memberExpression(n *ast.Node) error {
	if err := g.node(n.Object); err != nil {
		return err
	}
	if n.Computed {
		g.buf.Add("[")
		if err := g.node(n.Property); err != nil {
			return err
		}
		g.buf.Add("]")
		return nil
	}
	g.buf.Add(".")
	return g.node(n.Property)
}

func (g *Generator) assignmentExpression(n *ast.Node) error {
	if err := g.node(n.Left); err != nil {
		return err
	}
	g.buf.Add(" " + n.Operator + " ")
	return g.node(n.Right)
}

// binaryExpression parenthesizes a side exactly when that side is itself
// binary, so evaluation grouping survives without assuming the source and
// target languages agree on operator precedence.
func (g *Generator) binaryExpression(n *ast.Node) error {
	if err := g.operand(n.Left); err != nil {
		return err
	}
	g.buf.Add(" " + n.Operator + " ")
	return g.operand(n.Right)
}

func (g *Generator) operand(n *ast.Node) error {
	if n.IsBinary() {
		g.buf.Add("(")
		if err := g.node(n); err != nil {
			return err
		}
		g.buf.Add(")")
		return nil
	}
	return g.node(n)
}

func (g *Generator) unaryExpression(n *ast.Node) error {
	g.buf.Add(n.Operator)
	if isWordOperator(n.Operator) {
		g.buf.Add(" ")
	}
	return g.operand(n.Argument)
}

func (g *Generator) updateExpression(n *ast.Node) error {
	if n.Prefix {
		g.buf.Add(n.Operator)
		return g.node(n.Argument)
	}
	if err := g.node(n.Argument); err != nil {
		return err
	}
	g.buf.Add(n.Operator)
	return nil
}

func (g *Generator) literal(n *ast.Node) error {
	if n.Raw != "" {
		g.buf.Add(n.Raw)
		return nil
	}
	switch v := n.Value.(type) {
	case nil:
		g.buf.Add("null")
	case string:
		g.buf.Add(strconv.Quote(v))
	case bool:
		g.buf.Add(strconv.FormatBool(v))
	case float64:
		g.buf.Add(strconv.FormatFloat(v, 'g', -1, 64))
	default:
		g.buf.Add(fmt.Sprintf("%v", v))
	}
	return nil
}

func (g *Generator) arrayExpression(n *ast.Node) error {
	g.buf.Add("[")
	for i, el := range n.Elements {
		if i > 0 {
			g.buf.Add(", ")
		}
		if err := g.node(el); err != nil {
			return err
		}
	}
	g.buf.Add("]")
	return nil
}

func isWordOperator(op string) bool {
	for _, r := range op {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(op) > 0
}
