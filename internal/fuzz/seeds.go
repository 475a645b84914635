package fuzztests

import "testing"

// maxFuzzInput bounds a single fuzz input so degenerate documents do not
// dominate runs.
const maxFuzzInput = 64 << 10 // 64 KiB

var astSeeds = []string{
	`{"type":"Program","body":[]}`,
	`{"type":"Program","body":[{"type":"ExpressionStatement","expression":{"type":"UpdateExpression","operator":"++","argument":{"type":"Identifier","name":"i"}}}]}`,
	`{"type":"Program","body":[{"type":"FunctionDeclaration","id":{"type":"Identifier","name":"f"},"params":[{"type":"Identifier","name":"cb"}],"body":{"type":"BlockStatement","body":[{"type":"ReturnStatement","argument":{"type":"CallExpression","callee":{"type":"Identifier","name":"cb"},"arguments":[{"type":"Literal","value":1,"raw":"1"}]}}]}},{"type":"ExpressionStatement","expression":{"type":"CallExpression","callee":{"type":"Identifier","name":"f"},"arguments":[{"type":"Identifier","name":"g"}]}}]}`,
	`{"type":"Program","body":[{"type":"IfStatement","test":{"type":"Identifier","name":"a"},"consequent":{"type":"ExpressionStatement","expression":{"type":"Identifier","name":"b"}},"alternate":{"type":"BlockStatement","body":[]}}]}`,
	`{"type":"Program","body":[{"type":"ForStatement","body":{"type":"BlockStatement","body":[]}}]}`,
}

var textSeeds = []string{
	"",
	"console.log(x)\n",
	"def f(cb)\n  cb(1)\nend\nf(g)\n",
	"i++\n",
	"puts(a + \"b\" + c)\n",
	"if a\n  x()\nelse\nif b\n  y()\nend\n",
	"x = Math.floor(y / 2)\n",
}

func addASTSeeds(f *testing.F) {
	for _, s := range astSeeds {
		f.Add([]byte(s))
	}
}

func addTextSeeds(f *testing.F) {
	for _, s := range textSeeds {
		f.Add(s)
	}
}
