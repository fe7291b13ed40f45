package util

import (
	"fmt"
	"strings"
)

type CodeBuffer interface {
	IncrementIndent()
	DecrementIndent()
	AddLine(format string, a ...any)
	AddRaw(line string)
	AddBlankLine()
	AddComment(text string)
	WriteTo(other CodeBuffer)
	Len() int
	Bytes() []byte
}

func NewCodeBuffer() CodeBuffer {
	return &codeBuffer{indent: "\t"}
}

type codeBuffer struct {
	lines       []string
	indentLevel int
	indent      string
}

func (cb *codeBuffer) IncrementIndent() {
	cb.indentLevel++
}

func (cb *codeBuffer) DecrementIndent() {
	cb.indentLevel--
	if cb.indentLevel < 0 {
		panic("indentLevel < 0")
	}
}

func (cb *codeBuffer) AddLine(format string, a ...any) {
	cb.AddRaw(fmt.Sprintf(format, a...))
}

// AddRaw adds a line verbatim apart from indentation. Use it for text that may contain
// formatting verbs, such as documentation strings.
func (cb *codeBuffer) AddRaw(line string) {
	if line == "" {
		cb.lines = append(cb.lines, "")
		return
	}
	cb.lines = append(cb.lines, cb.indentSpaces()+line)
}

func (cb *codeBuffer) AddBlankLine() {
	cb.lines = append(cb.lines, "")
}

// AddComment adds text as // comment lines, one per line of text. Blank text adds nothing.
func (cb *codeBuffer) AddComment(text string) {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		cb.AddRaw("// " + line)
	}
}

// WriteTo appends this buffer's lines to other, nested under other's current indentation.
func (cb *codeBuffer) WriteTo(other CodeBuffer) {
	for _, line := range cb.lines {
		other.AddRaw(line)
	}
}

func (cb *codeBuffer) Len() int {
	return len(cb.lines)
}

func (cb *codeBuffer) Bytes() []byte {
	var sb strings.Builder
	for _, line := range cb.lines {
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return []byte(sb.String())
}

func (cb *codeBuffer) indentSpaces() string {
	return strings.Repeat(cb.indent, cb.indentLevel)
}
