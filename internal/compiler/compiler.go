// Package compiler is the recursive-descent driver of spec.md §4.4: it
// parses the Jack grammar and, at each production, consults the symbol
// table and invokes the VM writer. Parsing and emission are interleaved;
// there is no persistent AST (spec.md §9).
package compiler

import (
	"github.com/waldhauser/jackc/internal/compileerr"
	"github.com/waldhauser/jackc/internal/lexer"
	"github.com/waldhauser/jackc/internal/symtab"
	"github.com/waldhauser/jackc/internal/vmwriter"
)

// tokenSource is the one-token-lookahead cursor the compiler drives.
// Satisfied by *lexer.Cursor; an interface so tests can feed a canned
// token sequence.
type tokenSource interface {
	Current() lexer.Token
	HasMore() bool
	Advance() error
}

// emitter is the subset of vmwriter.Writer the compiler depends on.
type emitter interface {
	WritePush(vmwriter.Segment, int)
	WritePop(vmwriter.Segment, int)
	WriteArithmetic(vmwriter.Op)
	WriteLabel(string)
	WriteGoto(string)
	WriteIf(string)
	WriteCall(string, int)
	WriteFunction(string, int)
	WriteReturn()
}

// subroutineKind distinguishes the three subroutine declaration forms.
type subroutineKind int

const (
	functionKind subroutineKind = iota
	methodKind
	constructorKind
)

// Compiler carries the compilation-wide state of spec.md §3: the current
// class name (for qualifying emitted function names), the current
// subroutine name (for diagnostics), and a per-class label counter. All of
// it is an explicit field on this struct, not process-wide state
// (spec.md §9).
type Compiler struct {
	src    tokenSource
	out    emitter
	tab    *symtab.Table
	file   string
	source string

	className      string
	subroutineName string
	nextLabel      int
}

// New returns a Compiler ready to compile a single class from src, writing
// VM instructions to out. file and source are used only to annotate
// diagnostics.
func New(file, source string, src tokenSource, out emitter) *Compiler {
	return &Compiler{
		src:    src,
		out:    out,
		tab:    symtab.New(),
		file:   file,
		source: source,
	}
}

// Compile parses and emits exactly one Jack class. Compilation of a single
// file is strictly sequential (spec.md §5): there is no concurrency inside
// a Compiler instance.
func (c *Compiler) Compile() error {
	if err := c.src.Advance(); err != nil {
		return c.lexError(err)
	}
	return c.compileClass()
}

func (c *Compiler) tok() lexer.Token {
	return c.src.Current()
}

func (c *Compiler) advance() error {
	if err := c.src.Advance(); err != nil {
		return c.lexError(err)
	}
	return nil
}

// expect verifies the current token matches lexeme, then advances past it.
func (c *Compiler) expect(lexeme string) error {
	if !c.src.HasMore() {
		return c.parseErrorAt(lexer.Position{}, "expected %q, got end of input", lexeme)
	}
	if !c.tok().Is(lexeme) {
		return c.parseErrorAt(c.tok().Pos, "expected %q, got %s", lexeme, c.tok())
	}
	return c.advance()
}

// expectIdentifier verifies the current token is an Identifier, returns
// its lexeme, and advances past it.
func (c *Compiler) expectIdentifier() (string, error) {
	if !c.src.HasMore() {
		return "", c.parseErrorAt(lexer.Position{}, "expected identifier, got end of input")
	}
	tok := c.tok()
	if tok.Type != lexer.Identifier {
		return "", c.parseErrorAt(tok.Pos, "expected identifier, got %s", tok)
	}
	if err := c.advance(); err != nil {
		return "", err
	}
	return tok.Lexeme, nil
}

func (c *Compiler) parseErrorAt(pos lexer.Position, format string, args ...any) error {
	return compileerr.New(compileerr.Parse, c.file, c.source, pos, format, args...)
}

func (c *Compiler) resolutionError(pos lexer.Position, name string) error {
	return compileerr.New(compileerr.Resolution, c.file, c.source, pos, "undeclared identifier %q", name)
}

func (c *Compiler) lexError(err error) error {
	if lerr, ok := err.(*lexer.LexError); ok {
		return compileerr.New(compileerr.Lex, c.file, c.source, lerr.Pos, "%s", lerr.Msg)
	}
	return compileerr.New(compileerr.Lex, c.file, c.source, lexer.Position{}, "%s", err)
}

// allocLabel mints the next unique label suffix within the class
// (spec.md §4.4, "Label scope").
func (c *Compiler) allocLabel() int {
	n := c.nextLabel
	c.nextLabel++
	return n
}

// resolveVariable looks a name up in the symbol table and returns its
// virtual segment and slot index. Failure is always fatal: spec.md §7
// treats an unresolved variable reference as a resolution error, never as
// a signal to emit garbage.
func (c *Compiler) resolveVariable(name string, pos lexer.Position) (vmwriter.Segment, int, error) {
	entry, ok := c.tab.Lookup(name)
	if !ok {
		return "", 0, c.resolutionError(pos, name)
	}
	return segmentFor(entry.Kind), entry.Index, nil
}

func segmentFor(kind symtab.Kind) vmwriter.Segment {
	switch symtab.SegmentOf(kind) {
	case symtab.StaticSegment:
		return vmwriter.Static
	case symtab.ThisSegment:
		return vmwriter.This
	case symtab.ArgumentSegment:
		return vmwriter.Argument
	case symtab.LocalSegment:
		return vmwriter.Local
	default:
		panic("compiler: unreachable segment kind")
	}
}
