// Package compileerr renders the four error kinds of spec.md §7
// (lex, parse, resolution, I/O) with source context, grounded on the
// file:line:column-and-caret formatting of a DWScript-style compiler error.
package compileerr

import (
	"fmt"
	"strings"

	"github.com/waldhauser/jackc/internal/lexer"
)

// Kind classifies a compile-time error.
type Kind int

const (
	Lex Kind = iota
	Parse
	Resolution
	IO
)

func (k Kind) String() string {
	switch k {
	case Lex:
		return "lex error"
	case Parse:
		return "parse error"
	case Resolution:
		return "resolution error"
	case IO:
		return "I/O error"
	default:
		return "error"
	}
}

// Error is a single compile-time error with enough context to render a
// caret-annotated diagnostic. Pos is the zero value for an I/O error that
// has no associated source location.
type Error struct {
	Kind    Kind
	File    string
	Source  string
	Pos     lexer.Position
	Message string
}

// New builds an Error. source and file may be empty for an I/O error.
func New(kind Kind, file, source string, pos lexer.Position, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		File:    file,
		Source:  source,
		Pos:     pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface with the one-line form; use Format
// for the full caret-annotated rendering.
func (e *Error) Error() string {
	if e.File != "" && e.Pos.Line > 0 {
		return fmt.Sprintf("%s: %s:%d:%d: %s", e.Kind, e.File, e.Pos.Line, e.Pos.Column, e.Message)
	}
	if e.File != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.File, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Format renders the error with a source-line excerpt and a caret pointing
// at the offending column, in the DWScript-style error format.
func (e *Error) Format() string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s in %s", e.Kind, e.File)
	} else {
		fmt.Fprintf(&sb, "%s", e.Kind)
	}
	if e.Pos.Line > 0 {
		fmt.Fprintf(&sb, ":%d:%d", e.Pos.Line, e.Pos.Column)
	}
	sb.WriteString("\n")

	if line := sourceLine(e.Source, e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
		sb.WriteString("^\n")
	}

	sb.WriteString(e.Message)
	return sb.String()
}

func sourceLine(source string, lineNum int) string {
	if source == "" || lineNum < 1 {
		return ""
	}
	lines := strings.Split(source, "\n")
	if lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}
