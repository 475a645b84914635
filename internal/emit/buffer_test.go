package emit

import (
	"strings"
	"testing"
)

func TestAddAppliesIndent(t *testing.T) {
	b := New(0)
	b.Add("def f(a)")
	b.Newline()
	b.Indent()
	b.Add("return a")
	b.Newline()
	b.Dedent()
	b.Add("end")
	b.Newline()

	want := "def f(a)\n  return a\nend\n"
	if got := b.String(); got != want {
		t.Fatalf("buffer mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestNewlineCollapses(t *testing.T) {
	b := New(0)
	b.Add("x = 1")
	b.Newline()
	b.Newline()
	b.Newline()
	if got := b.String(); got != "x = 1\n" {
		t.Fatalf("repeated Newline should collapse, got %q", got)
	}
}

func TestNewlineOnEmptyBuffer(t *testing.T) {
	b := New(0)
	b.Newline()
	if got := b.String(); got != "" {
		t.Fatalf("Newline on empty buffer wrote %q", got)
	}
}

func TestTrimDropsTrailingArtifacts(t *testing.T) {
	b := New(0)
	b.Add("x = 1")
	b.Newline()
	b.Add("   ")
	b.Newline()
	b.Trim()
	b.Newline()
	if got := b.String(); got != "x = 1\n" {
		t.Fatalf("Trim left %q", got)
	}
}

func TestTrimEmptyBuffer(t *testing.T) {
	b := New(0)
	b.Trim()
	b.Add("ok")
	if got := b.String(); got != "ok" {
		t.Fatalf("Trim on empty buffer broke Add, got %q", got)
	}
}

func TestDeleteLines(t *testing.T) {
	b := New(0)
	for _, line := range []string{"if x", "  y", "end"} {
		b.Add(line)
		b.Newline()
	}
	b.DeleteLines(1)
	b.Add("else")
	b.Newline()

	want := "if x\n  y\nelse\n"
	if got := b.String(); got != want {
		t.Fatalf("DeleteLines mismatch:\nwant %q\ngot  %q", want, got)
	}
}

func TestDeleteLinesAll(t *testing.T) {
	b := New(0)
	b.Add("only")
	b.Newline()
	b.DeleteLines(1)
	if got := b.String(); got != "" {
		t.Fatalf("expected empty buffer, got %q", got)
	}
	b.Add("again")
	if got := b.String(); got != "again" {
		t.Fatalf("buffer unusable after DeleteLines, got %q", got)
	}
}

func TestDeleteLinesBeyondAvailablePanics(t *testing.T) {
	b := New(0)
	b.Add("one")
	b.Newline()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic for over-deletion")
		}
		if !strings.Contains(r.(string), "DeleteLines") {
			t.Fatalf("unexpected panic payload: %v", r)
		}
	}()
	b.DeleteLines(2)
}

func TestDedentWithoutIndentPanics(t *testing.T) {
	b := New(0)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for unbalanced Dedent")
		}
	}()
	b.Dedent()
}

func TestCustomIndentWidth(t *testing.T) {
	b := New(4)
	b.Add("while x")
	b.Newline()
	b.Indent()
	b.Add("y += 1")
	b.Newline()
	b.Dedent()
	b.Add("end")
	b.Newline()
	want := "while x\n    y += 1\nend\n"
	if got := b.String(); got != want {
		t.Fatalf("indent width mismatch:\nwant %q\ngot  %q", want, got)
	}
}
