// Package gen walks the ESTree AST depth-first and renders Ruby source
// text into an emission buffer. Output from this package is "raw": the
// correction pipeline in internal/correct runs over it afterwards and
// both halves together form one translation.
package gen

import (
	"errors"
	"fmt"

	"jsrb/internal/ast"
	"jsrb/internal/emit"
)

// UnsupportedNodeError reports a node tag the generator has no rule for.
// Code generation cannot proceed past one of these; the run is abandoned
// and no partial output is usable.
type UnsupportedNodeError struct {
	Type string
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("gen: unsupported construct %q", e.Type)
}

// Options configures a single generator run.
type Options struct {
	// IndentWidth is the number of spaces per indentation level.
	// Zero selects the emit package default.
	IndentWidth int
}

// Generator drives one translation run. It owns its buffer exclusively;
// a Generator must not be reused after Translate returns.
type Generator struct {
	buf *emit.Buffer
}

// Translate renders the tree rooted at root and returns the raw target
// text. The caller's tree is never mutated: desugaring works on
// synthesized wrapper nodes.
func Translate(root *ast.Node, opts Options) (string, error) {
	if root == nil {
		return "", errors.New("gen: nil root node")
	}
	g := &Generator{buf: emit.New(opts.IndentWidth)}
	if err := g.node(root); err != nil {
		return "", err
	}
	return g.buf.String(), nil
}

// node dispatches on the tag. Every supported construct has exactly one
// case; the default is fatal.
func (g *Generator) node(n *ast.Node) error {
	if n == nil {
		return errors.New("gen: nil node in tree")
	}
	switch n.Type {
	case ast.Program:
		return g.program(n)
	case ast.FunctionDeclaration:
		return g.functionDeclaration(n)
	case ast.BlockStatement:
		return g.blockStatement(n)
	case ast.VariableDeclaration:
		return g.variableDeclaration(n)
	case ast.ExpressionStatement:
		return g.expressionStatement(n)
	case ast.IfStatement:
		return g.ifStatement(n)
	case ast.WhileStatement:
		return g.whileStatement(n)
	case ast.ForStatement:
		return g.forStatement(n)
	case ast.ReturnStatement:
		return g.returnStatement(n)
	case ast.CallExpression:
		return g.callExpression(n)
	case ast.MemberExpression:
		return g.memberExpression(n)
	case ast.AssignmentExpression:
		return g.assignmentExpression(n)
	case ast.BinaryExpression, ast.LogicalExpression:
		return g.binaryExpression(n)
	case ast.UnaryExpression:
		return g.unaryExpression(n)
	case ast.UpdateExpression:
		return g.updateExpression(n)
	case ast.Identifier:
		g.buf.Add(n.Name)
		return nil
	case ast.Literal:
		return g.literal(n)
	case ast.ArrayExpression:
		return g.arrayExpression(n)
	}
	return &UnsupportedNodeError{Type: n.Type}
}

func (g *Generator) program(n *ast.Node) error {
	for _, stmt := range n.Body {
		if err := g.node(stmt); err != nil {
			return err
		}
	}
	return nil
}
