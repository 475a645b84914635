package ast

import (
	"errors"
	"testing"
)

func TestDecodeBytes(t *testing.T) {
	src := []byte(`{
		"type": "Program",
		"body": [{
			"type": "ExpressionStatement",
			"expression": {
				"type": "UpdateExpression",
				"operator": "++",
				"prefix": false,
				"argument": {"type": "Identifier", "name": "i"}
			}
		}]
	}`)

	root, err := DecodeBytes(src)
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if root.Type != Program {
		t.Fatalf("root type = %q, want %q", root.Type, Program)
	}
	if len(root.Body) != 1 {
		t.Fatalf("len(body) = %d, want 1", len(root.Body))
	}
	upd := root.Body[0].Expression
	if upd == nil || upd.Type != UpdateExpression {
		t.Fatalf("expected UpdateExpression, got %+v", upd)
	}
	if upd.Prefix {
		t.Fatalf("expected postfix update")
	}
	if upd.Argument.Name != "i" {
		t.Fatalf("operand = %q, want i", upd.Argument.Name)
	}
}

func TestDecodeObjectBody(t *testing.T) {
	src := []byte(`{
		"type": "Program",
		"body": [{
			"type": "FunctionDeclaration",
			"id": {"type": "Identifier", "name": "f"},
			"params": [{"type": "Identifier", "name": "x"}],
			"body": {
				"type": "BlockStatement",
				"body": [{
					"type": "ReturnStatement",
					"argument": {"type": "Identifier", "name": "x"}
				}]
			}
		}]
	}`)

	root, err := DecodeBytes(src)
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	fn := root.Body[0]
	block := fn.BodyNode()
	if block == nil || block.Type != BlockStatement {
		t.Fatalf("function body = %+v, want a BlockStatement", block)
	}
	if len(block.Body) != 1 || block.Body[0].Type != ReturnStatement {
		t.Fatalf("block statements = %+v, want one return", block.Body)
	}
}

func TestDecodeNullBody(t *testing.T) {
	root, err := DecodeBytes([]byte(`{"type": "Program", "body": null}`))
	if err != nil {
		t.Fatalf("DecodeBytes failed: %v", err)
	}
	if root.Body != nil {
		t.Fatalf("null body decoded to %+v", root.Body)
	}
	if root.BodyNode() != nil {
		t.Fatalf("BodyNode on empty body should be nil")
	}
}

func TestDecodeBytesEmpty(t *testing.T) {
	if _, err := DecodeBytes([]byte("   \n")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestDecodeBytesMissingType(t *testing.T) {
	if _, err := DecodeBytes([]byte(`{"body": []}`)); err == nil {
		t.Fatalf("expected error for root without type")
	}
}

func TestIsBinary(t *testing.T) {
	if (&Node{Type: CallExpression}).IsBinary() {
		t.Fatalf("CallExpression should not count as binary")
	}
	if !(&Node{Type: LogicalExpression}).IsBinary() {
		t.Fatalf("LogicalExpression should count as binary")
	}
	var nilNode *Node
	if nilNode.IsBinary() {
		t.Fatalf("nil node should not count as binary")
	}
}
