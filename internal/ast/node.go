// Package ast models the ESTree-shaped syntax tree consumed by the
// generator. The tree is produced by an external JavaScript front-end
// (Esprima, Acorn) and arrives as JSON; jsrb never parses source text
// itself.
package ast

import (
	"bytes"
	"encoding/json"
)

// Node tags supported by the generator. Anything else is rejected at
// dispatch time, not at decode time, so a front-end may attach extra
// metadata nodes without breaking decoding.
const (
	Program              = "Program"
	FunctionDeclaration  = "FunctionDeclaration"
	BlockStatement       = "BlockStatement"
	VariableDeclaration  = "VariableDeclaration"
	VariableDeclarator   = "VariableDeclarator"
	ExpressionStatement  = "ExpressionStatement"
	IfStatement          = "IfStatement"
	WhileStatement       = "WhileStatement"
	ForStatement         = "ForStatement"
	ReturnStatement      = "ReturnStatement"
	CallExpression       = "CallExpression"
	MemberExpression     = "MemberExpression"
	AssignmentExpression = "AssignmentExpression"
	BinaryExpression     = "BinaryExpression"
	LogicalExpression    = "LogicalExpression"
	UnaryExpression      = "UnaryExpression"
	UpdateExpression     = "UpdateExpression"
	Identifier           = "Identifier"
	Literal              = "Literal"
	ArrayExpression      = "ArrayExpression"
)

// Node is one vertex of the tree, discriminated by Type. Only the fields
// relevant to a given tag are populated; the rest stay zero. Field names
// follow the ESTree spec.
type Node struct {
	Type string `json:"type"`

	// Containers and bodies. ESTree overloads "body": Program and
	// BlockStatement carry a statement list, FunctionDeclaration and the
	// loop nodes carry a single BlockStatement object. The decoder
	// normalizes the single-object form into a one-element slice; use
	// BodyNode to read it back.
	Body         []*Node `json:"body,omitempty"`
	Params       []*Node `json:"params,omitempty"`
	Declarations []*Node `json:"declarations,omitempty"`
	Elements     []*Node `json:"elements,omitempty"`
	Arguments    []*Node `json:"arguments,omitempty"`

	// Single-child links.
	Id         *Node `json:"id,omitempty"`
	Init       *Node `json:"init,omitempty"`
	Test       *Node `json:"test,omitempty"`
	Update     *Node `json:"update,omitempty"`
	Consequent *Node `json:"consequent,omitempty"`
	Alternate  *Node `json:"alternate,omitempty"`
	Left       *Node `json:"left,omitempty"`
	Right      *Node `json:"right,omitempty"`
	Argument   *Node `json:"argument,omitempty"`
	Callee     *Node `json:"callee,omitempty"`
	Object     *Node `json:"object,omitempty"`
	Property   *Node `json:"property,omitempty"`
	Expression *Node `json:"expression,omitempty"`

	// Leaf attributes.
	Name     string `json:"name,omitempty"`
	Operator string `json:"operator,omitempty"`
	Kind     string `json:"kind,omitempty"`
	Value    any    `json:"value,omitempty"`
	Raw      string `json:"raw,omitempty"`
	Prefix   bool   `json:"prefix,omitempty"`
	Computed bool   `json:"computed,omitempty"`
}

// UnmarshalJSON decodes a node, accepting "body" as either a statement
// array or a single node object.
func (n *Node) UnmarshalJSON(data []byte) error {
	type plain Node
	aux := struct {
		Body json.RawMessage `json:"body"`
		*plain
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	return n.decodeBody(aux.Body)
}

func (n *Node) decodeBody(raw json.RawMessage) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '[' {
		return json.Unmarshal(raw, &n.Body)
	}
	var single Node
	if err := json.Unmarshal(raw, &single); err != nil {
		return err
	}
	n.Body = []*Node{&single}
	return nil
}

// IsBinary reports whether the node is a binary-shaped expression for the
// purposes of parenthesization (BinaryExpression and LogicalExpression
// render identically).
func (n *Node) IsBinary() bool {
	if n == nil {
		return false
	}
	return n.Type == BinaryExpression || n.Type == LogicalExpression
}

// BlockBody returns the node's statements when it is a block, or nil.
// The generator uses it when splicing loop bodies during desugaring.
func (n *Node) BlockBody() []*Node {
	if n == nil || n.Type != BlockStatement {
		return nil
	}
	return n.Body
}

// BodyNode returns the single body node of a function or loop. For those
// tags the decoder stores the BlockStatement object as the sole element
// of Body.
func (n *Node) BodyNode() *Node {
	if n == nil || len(n.Body) == 0 {
		return nil
	}
	return n.Body[0]
}
