package driver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"jsrb/internal/pipeline"
	"jsrb/internal/project"
)

const countdownAST = `{
	"type": "Program",
	"body": [
		{
			"type": "ForStatement",
			"init": {
				"type": "VariableDeclaration",
				"kind": "let",
				"declarations": [{
					"type": "VariableDeclarator",
					"id": {"type": "Identifier", "name": "i"},
					"init": {"type": "Literal", "value": 0, "raw": "0"}
				}]
			},
			"test": {
				"type": "BinaryExpression",
				"operator": "<",
				"left": {"type": "Identifier", "name": "i"},
				"right": {"type": "Literal", "value": 3, "raw": "3"}
			},
			"update": {
				"type": "UpdateExpression",
				"operator": "++",
				"prefix": false,
				"argument": {"type": "Identifier", "name": "i"}
			},
			"body": {"type": "BlockStatement", "body": [{
				"type": "ExpressionStatement",
				"expression": {
					"type": "CallExpression",
					"callee": {
						"type": "MemberExpression",
						"object": {"type": "Identifier", "name": "console"},
						"property": {"type": "Identifier", "name": "log"}
					},
					"arguments": [{
						"type": "BinaryExpression",
						"operator": "+",
						"left": {"type": "Literal", "value": "i = ", "raw": "\"i = \""},
						"right": {"type": "Identifier", "name": "i"}
					}]
				}
			}]}
		}
	]
}`

const functionAST = `{
	"type": "Program",
	"body": [{
		"type": "FunctionDeclaration",
		"id": {"type": "Identifier", "name": "countdown"},
		"params": [{"type": "Identifier", "name": "n"}],
		"body": {"type": "BlockStatement", "body": [{
			"type": "WhileStatement",
			"test": {
				"type": "BinaryExpression",
				"operator": ">",
				"left": {"type": "Identifier", "name": "n"},
				"right": {"type": "Literal", "value": 0, "raw": "0"}
			},
			"body": {"type": "BlockStatement", "body": [
				{"type": "ExpressionStatement", "expression": {
					"type": "CallExpression",
					"callee": {
						"type": "MemberExpression",
						"object": {"type": "Identifier", "name": "console"},
						"property": {"type": "Identifier", "name": "log"}
					},
					"arguments": [{"type": "Identifier", "name": "n"}]
				}},
				{"type": "ExpressionStatement", "expression": {
					"type": "UpdateExpression",
					"operator": "--",
					"prefix": false,
					"argument": {"type": "Identifier", "name": "n"}
				}}
			]}
		}]}
	}]
}`

func newTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := New(project.Default())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return tr
}

func TestTranslateSourceEndToEnd(t *testing.T) {
	tr := newTranslator(t)
	out, err := tr.TranslateSource([]byte(countdownAST))
	if err != nil {
		t.Fatalf("TranslateSource failed: %v", err)
	}
	want := "i = 0\nwhile i < 3\n  puts(\"i = \" + (i).to_s)\n  i += 1\nend\n"
	if out != want {
		t.Fatalf("end-to-end mismatch:\nwant %q\ngot  %q", want, out)
	}
}

func TestTranslateSourceFunctionDeclaration(t *testing.T) {
	tr := newTranslator(t)
	out, err := tr.TranslateSource([]byte(functionAST))
	if err != nil {
		t.Fatalf("TranslateSource failed: %v", err)
	}
	want := "def countdown(n)\n  while n > 0\n    puts((n).to_s)\n    n -= 1\n  end\nend\n"
	if out != want {
		t.Fatalf("function mismatch:\nwant %q\ngot  %q", want, out)
	}
}

func TestTranslateFileWritesOutput(t *testing.T) {
	tr := newTranslator(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "main.json")
	if err := os.WriteFile(in, []byte(countdownAST), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}

	res, err := tr.TranslateFile(in, "", nil, false)
	if err != nil {
		t.Fatalf("TranslateFile failed: %v", err)
	}
	wantOut := filepath.Join(dir, "main.rb")
	if res.OutPath != wantOut {
		t.Fatalf("out path = %q, want %q", res.OutPath, wantOut)
	}
	data, err := os.ReadFile(wantOut)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if string(data) != res.Output {
		t.Fatalf("file content differs from result output")
	}
}

func TestTranslateFileUsesCache(t *testing.T) {
	tr := newTranslator(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "main.json")
	if err := os.WriteFile(in, []byte(countdownAST), 0o644); err != nil {
		t.Fatalf("write input: %v", err)
	}
	cache, err := OpenDiskCacheAt(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}

	first, err := tr.TranslateFile(in, "-", cache, false)
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if first.Cached {
		t.Fatalf("first run should not be cached")
	}
	second, err := tr.TranslateFile(in, "-", cache, false)
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second run should hit the cache")
	}
	if second.Output != first.Output {
		t.Fatalf("cached output differs:\nfirst  %q\nsecond %q", first.Output, second.Output)
	}
}

func TestFingerprintChangesWithConfig(t *testing.T) {
	base := newTranslator(t)
	m := project.Default()
	m.Translate.IndentWidth = 7
	other, err := New(m)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	src := []byte(countdownAST)
	if base.Fingerprint(src) == other.Fingerprint(src) {
		t.Fatalf("different configurations must not share cache keys")
	}
	if base.Fingerprint(src) != base.Fingerprint(src) {
		t.Fatalf("fingerprint must be deterministic")
	}
}

func TestOutputName(t *testing.T) {
	cases := map[string]string{
		"a/b/main.json": "a/b/main.rb",
		"weird.JSON":    "weird.rb",
		"noext":         "noext.rb",
	}
	for in, want := range cases {
		if got := OutputName(in); got != want {
			t.Fatalf("OutputName(%q) = %q, want %q", in, got, want)
		}
	}
}

type recordingSink struct {
	mu     sync.Mutex
	events []pipeline.Event
}

func (s *recordingSink) OnEvent(evt pipeline.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, evt)
}

func TestTranslateDirReportsEveryStage(t *testing.T) {
	tr := newTranslator(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "main.json"), []byte(countdownAST), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	sink := &recordingSink{}
	results, _, err := tr.TranslateDir(context.Background(), dir, DirOptions{
		Jobs:     1,
		OutDir:   filepath.Join(dir, "out"),
		Progress: sink,
		Timings:  true,
	})
	if err != nil {
		t.Fatalf("TranslateDir failed: %v", err)
	}

	var got []string
	for _, evt := range sink.events {
		got = append(got, string(evt.Stage)+"/"+string(evt.Status))
	}
	want := []string{
		"decode/queued",
		"decode/working",
		"generate/working",
		"correct/working",
		"write/working",
		"write/done",
	}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("event sequence mismatch:\nwant %v\ngot  %v", want, got)
	}
	if len(results) != 1 || results[0].Timer == nil {
		t.Fatalf("expected a phase timer on the result, got %+v", results)
	}
}

func TestTranslateDir(t *testing.T) {
	tr := newTranslator(t)
	dir := t.TempDir()
	for _, name := range []string{"one.json", "sub/two.json"} {
		p := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(p, []byte(countdownAST), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	// A broken input must fail alone, not sink the run.
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	outDir := filepath.Join(dir, "out")
	results, summary, err := tr.TranslateDir(context.Background(), dir, DirOptions{
		Jobs:   2,
		OutDir: outDir,
	})
	if err != nil {
		t.Fatalf("TranslateDir failed: %v", err)
	}
	if summary.Total != 3 || summary.Done != 2 || summary.Failed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d", len(results))
	}
	for _, want := range []string{"one.rb", filepath.Join("sub", "two.rb")} {
		if _, err := os.Stat(filepath.Join(outDir, want)); err != nil {
			t.Fatalf("expected output %s: %v", want, err)
		}
	}
}
