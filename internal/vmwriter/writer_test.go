package vmwriter

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriterEmitsExactLines(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.WritePush(Constant, 42)
	w.WritePop(Local, 1)
	w.WriteArithmetic(Add)
	w.WriteLabel("IF_FALSE0")
	w.WriteGoto("IF_END0")
	w.WriteIf("WHILE_END0")
	w.WriteCall("Math.multiply", 2)
	w.WriteFunction("C.inc", 0)
	w.WriteReturn()

	require.NoError(t, w.Close())

	want := "push constant 42\n" +
		"pop local 1\n" +
		"add\n" +
		"label IF_FALSE0\n" +
		"goto IF_END0\n" +
		"if-goto WHILE_END0\n" +
		"call Math.multiply 2\n" +
		"function C.inc 0\n" +
		"return\n"
	assert.Equal(t, want, buf.String())
}

func TestWriterFlushesOnClose(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)
	w.WriteReturn()
	assert.Empty(t, buf.String(), "unflushed writer should not yet have reached the sink")
	require.NoError(t, w.Close())
	assert.Equal(t, "return\n", buf.String())
}
