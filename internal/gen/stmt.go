package gen

import (
	"errors"
	"strings"

	"jsrb/internal/ast"
)

func (g *Generator) functionDeclaration(n *ast.Node) error {
	if n.Id == nil {
		return errors.New("gen: function declaration without a name")
	}
	names := make([]string, len(n.Params))
	for i, p := range n.Params {
		if p == nil || p.Name == "" {
			return errors.New("gen: function parameter without a name")
		}
		names[i] = p.Name
	}
	g.buf.Add("def " + n.Id.Name + "(" + strings.Join(names, ", ") + ")")
	if err := g.node(ensureBlock(n.BodyNode())); err != nil {
		return err
	}
	g.buf.Newline()
	return nil
}

// blockStatement closes with an explicit "end" marker rather than relying
// on whitespace; if/else chaining retracts that marker via DeleteLines.
func (g *Generator) blockStatement(n *ast.Node) error {
	g.buf.Indent()
	g.buf.Newline()
	for _, stmt := range n.Body {
		if err := g.node(stmt); err != nil {
			return err
		}
	}
	g.buf.Trim()
	g.buf.Dedent()
	g.buf.Newline()
	g.buf.Add("end")
	g.buf.Newline()
	return nil
}

func (g *Generator) ifStatement(n *ast.Node) error {
	g.buf.Add("if ")
	if err := g.node(n.Test); err != nil {
		return err
	}
	if err := g.node(wrapConsequent(n.Consequent)); err != nil {
		return err
	}
	if n.Alternate == nil {
		return nil
	}
	// The consequent block already closed itself; pull the terminator
	// back so the else branch chains onto the same construct. An
	// IfStatement alternate renders as else + if and the stock
	// correction table collapses that pair into elsif.
	g.buf.DeleteLines(1)
	g.buf.Add("else")
	g.buf.Newline()
	alt := n.Alternate
	if alt.Type != ast.BlockStatement && alt.Type != ast.IfStatement {
		alt = wrapConsequent(alt)
	}
	return g.node(alt)
}

func (g *Generator) whileStatement(n *ast.Node) error {
	g.buf.Add("while ")
	if err := g.node(n.Test); err != nil {
		return err
	}
	return g.node(ensureBlock(n.BodyNode()))
}

// forStatement desugars to init + while, the update expression spliced in
// as the last statement of the loop body. Ruby has no counting for-loop
// of the C shape, so the while form is the canonical rendering.
func (g *Generator) forStatement(n *ast.Node) error {
	if n.Init != nil {
		if err := g.node(n.Init); err != nil {
			return err
		}
		g.buf.Newline()
	}
	test := n.Test
	if test == nil {
		test = &ast.Node{Type: ast.Literal, Raw: "true"}
	}
	body := append([]*ast.Node{}, ensureBlock(n.BodyNode()).Body...)
	if n.Update != nil {
		body = append(body, &ast.Node{Type: ast.ExpressionStatement, Expression: n.Update})
	}
	loop := &ast.Node{
		Type: ast.WhileStatement,
		Test: test,
		Body: []*ast.Node{{Type: ast.BlockStatement, Body: body}},
	}
	return g.whileStatement(loop)
}

func (g *Generator) variableDeclaration(n *ast.Node) error {
	for _, d := range n.Declarations {
		if d == nil || d.Type != ast.VariableDeclarator || d.Id == nil {
			return errors.New("gen: malformed variable declaration")
		}
		if err := g.node(d.Id); err != nil {
			return err
		}
		g.buf.Add(" = ")
		if d.Init == nil {
			g.buf.Add("nil")
		} else if err := g.node(d.Init); err != nil {
			return err
		}
		g.buf.Newline()
	}
	return nil
}

func (g *Generator) returnStatement(n *ast.Node) error {
	g.buf.Add("return")
	if n.Argument != nil {
		g.buf.Add(" ")
		if err := g.node(n.Argument); err != nil {
			return err
		}
	}
	g.buf.Newline()
	return nil
}

func (g *Generator) expressionStatement(n *ast.Node) error {
	if err := g.node(n.Expression); err != nil {
		return err
	}
	g.buf.Newline()
	return nil
}

// ensureBlock wraps a bare statement into a one-statement block so every
// body renders through the same block rule.
func ensureBlock(n *ast.Node) *ast.Node {
	if n != nil && n.Type == ast.BlockStatement {
		return n
	}
	var body []*ast.Node
	if n != nil {
		body = []*ast.Node{n}
	}
	return &ast.Node{Type: ast.BlockStatement, Body: body}
}

// wrapConsequent normalizes an if branch. A bare expression statement
// becomes a block returning that expression's value, which makes
// single-expression and explicitly-blocked branches render identically.
func wrapConsequent(n *ast.Node) *ast.Node {
	if n == nil || n.Type == ast.BlockStatement {
		return ensureBlock(n)
	}
	if n.Type == ast.ExpressionStatement && n.Expression != nil {
		ret := &ast.Node{Type: ast.ReturnStatement, Argument: n.Expression}
		return &ast.Node{Type: ast.BlockStatement, Body: []*ast.Node{ret}}
	}
	return ensureBlock(n)
}
