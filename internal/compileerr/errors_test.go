package compileerr

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/waldhauser/jackc/internal/lexer"
)

func TestErrorOneLine(t *testing.T) {
	err := New(Parse, "Main.jack", "", lexer.Position{Line: 3, Column: 5}, "expected %q, got %q", ";", "}")
	assert.Equal(t, `parse error: Main.jack:3:5: expected ";", got "}"`, err.Error())
}

func TestErrorWithoutPosition(t *testing.T) {
	err := New(IO, "Main.jack", "", lexer.Position{}, "could not open file")
	assert.Equal(t, "I/O error: Main.jack: could not open file", err.Error())
}

func TestFormatIncludesCaret(t *testing.T) {
	src := "class Main {\n  let x = ;\n}"
	err := New(Parse, "Main.jack", src, lexer.Position{Line: 2, Column: 11}, "unexpected token")
	formatted := err.Format()
	assert.True(t, strings.Contains(formatted, "let x = ;"))
	assert.True(t, strings.Contains(formatted, "^"))
	assert.True(t, strings.Contains(formatted, "unexpected token"))
}

func TestFormatWithoutSourceSkipsExcerpt(t *testing.T) {
	err := New(IO, "", "", lexer.Position{}, "disk full")
	formatted := err.Format()
	assert.Equal(t, "I/O error\ndisk full", formatted)
}
