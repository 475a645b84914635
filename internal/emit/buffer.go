// Package emit provides the line-oriented output buffer the generator
// writes Ruby text into. One buffer belongs to exactly one translation
// run; nothing here is safe for concurrent use.
package emit

import (
	"bytes"
	"fmt"
	"strings"
)

const defaultIndentWidth = 2

// Buffer accumulates generated output and tracks the indentation level.
// Indentation is applied lazily: the first Add on a fresh line prefixes
// the current indent, so Indent/Dedent can be called between lines
// without emitting anything themselves.
type Buffer struct {
	buf         []byte
	indentWidth int
	indentLevel int
	atLineStart bool
}

// New returns an empty buffer. A non-positive indentWidth selects the
// default of two spaces per level.
func New(indentWidth int) *Buffer {
	if indentWidth <= 0 {
		indentWidth = defaultIndentWidth
	}
	return &Buffer{
		buf:         make([]byte, 0, 256),
		indentWidth: indentWidth,
		atLineStart: true,
	}
}

// Add appends text to the current line, indenting first when the line is
// fresh. Empty input is a no-op.
func (b *Buffer) Add(s string) {
	if s == "" {
		return
	}
	b.writeIndent()
	b.buf = append(b.buf, s...)
	b.updateLineState(s[len(s)-1])
}

// Newline terminates the current line. When the buffer already ends with a
// line break nothing is written, so block-closing code can call it without
// producing blank lines.
func (b *Buffer) Newline() {
	if len(b.buf) > 0 && b.buf[len(b.buf)-1] != '\n' {
		b.buf = append(b.buf, '\n')
	}
	b.atLineStart = true
}

// Indent increases the indentation level.
func (b *Buffer) Indent() {
	b.indentLevel++
}

// Dedent decreases the indentation level. Calls must pair with Indent;
// dropping below zero is a bug in the caller.
func (b *Buffer) Dedent() {
	if b.indentLevel == 0 {
		panic("emit: Dedent without matching Indent")
	}
	b.indentLevel--
}

// Trim removes trailing spaces, tabs and blank lines from the end of the
// buffer. A following Newline re-terminates the last remaining line.
func (b *Buffer) Trim() {
	b.buf = bytes.TrimRight(b.buf, " \t\n")
	b.atLineStart = len(b.buf) == 0
}

// DeleteLines retracts the last n terminated lines. The generator uses it
// to pull back a just-emitted block terminator before attaching an else
// branch. Asking for more lines than the buffer holds is a contract
// violation and panics.
func (b *Buffer) DeleteLines(n int) {
	if n <= 0 {
		return
	}
	total := bytes.Count(b.buf, []byte{'\n'})
	if n > total {
		panic(fmt.Sprintf("emit: DeleteLines(%d) with only %d lines emitted", n, total))
	}
	// Cut right after the (total-n)-th newline.
	keep := 0
	remaining := total - n
	for i := 0; i < remaining; i++ {
		keep += bytes.IndexByte(b.buf[keep:], '\n') + 1
	}
	b.buf = b.buf[:keep]
	b.atLineStart = true
}

// Len reports the number of bytes emitted so far.
func (b *Buffer) Len() int {
	return len(b.buf)
}

// String returns the buffer's full text.
func (b *Buffer) String() string {
	return string(b.buf)
}

func (b *Buffer) writeIndent() {
	if !b.atLineStart {
		return
	}
	b.buf = append(b.buf, strings.Repeat(" ", b.indentLevel*b.indentWidth)...)
	b.atLineStart = false
}

func (b *Buffer) updateLineState(last byte) {
	b.atLineStart = last == '\n'
}
