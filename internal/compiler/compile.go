package compiler

import (
	"io"

	"github.com/waldhauser/jackc/internal/lexer"
	"github.com/waldhauser/jackc/internal/vmwriter"
)

// CompileSource compiles a single Jack class from source text, writing VM
// instructions to w. file is used only to annotate diagnostics. The
// instruction sink is always flushed before returning, on every exit path
// (spec.md §5).
func CompileSource(file, source string, w io.Writer) error {
	cursor := lexer.New(source)
	out := vmwriter.New(w)

	c := New(file, source, cursor, out)
	compileErr := c.Compile()

	if closeErr := out.Close(); closeErr != nil && compileErr == nil {
		return closeErr
	}
	return compileErr
}
