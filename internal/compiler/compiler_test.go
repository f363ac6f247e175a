package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, source string) string {
	t.Helper()
	var sb strings.Builder
	err := CompileSource("Test.jack", source, &sb)
	require.NoError(t, err)
	return sb.String()
}

func lines(s string) []string {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

func TestStaticFunctionAddConstants(t *testing.T) {
	out := compile(t, `class C { function int f() { return 1 + 2; } }`)
	assert.Equal(t, []string{
		"function C.f 0",
		"push constant 1",
		"push constant 2",
		"add",
		"return",
	}, lines(out))
}

func TestMethodWithParameter(t *testing.T) {
	out := compile(t, `class C { field int x; method int inc(int d) { let x = x + d; return x; } }`)
	assert.Equal(t, []string{
		"function C.inc 0",
		"push argument 0",
		"pop pointer 0",
		"push this 0",
		"push argument 1",
		"add",
		"pop this 0",
		"push this 0",
		"return",
	}, lines(out))
}

func TestConstructorWithOneField(t *testing.T) {
	out := compile(t, `class C { field int x; constructor C new() { let x = 0; return this; } }`)
	assert.Equal(t, []string{
		"function C.new 0",
		"push constant 1",
		"call Memory.alloc 1",
		"pop pointer 0",
		"push constant 0",
		"pop this 0",
		"push pointer 0",
		"return",
	}, lines(out))
}

func TestConstructorWithNoFields(t *testing.T) {
	out := compile(t, `class C { constructor C new() { return this; } }`)
	got := lines(out)
	require.GreaterOrEqual(t, len(got), 3)
	assert.Equal(t, "push constant 0", got[1])
	assert.Equal(t, "call Memory.alloc 1", got[2])
}

func TestWhileLoop(t *testing.T) {
	out := compile(t, `class C { field int x; method void m() { while (x > 0) { let x = x - 1; } return; } }`)
	got := lines(out)
	assert.Contains(t, got, "label WHILE_START0")
	assert.Contains(t, got, "push this 0")
	assert.Contains(t, got, "push constant 0")
	assert.Contains(t, got, "gt")
	assert.Contains(t, got, "not")
	assert.Contains(t, got, "if-goto WHILE_END0")
	assert.Contains(t, got, "goto WHILE_START0")
	assert.Contains(t, got, "label WHILE_END0")
}

func TestQualifiedStaticCall(t *testing.T) {
	out := compile(t, `class C { function void m() { do Output.printInt(42); return; } }`)
	got := lines(out)
	assert.Contains(t, got, "push constant 42")
	assert.Contains(t, got, "call Output.printInt 1")
	assert.Contains(t, got, "pop temp 0")
}

func TestUnqualifiedMethodCall(t *testing.T) {
	out := compile(t, `class C { method void helper(int n) { return; } method void m() { do helper(1); return; } }`)
	got := lines(out)
	assert.Contains(t, got, "push pointer 0")
	assert.Contains(t, got, "push constant 1")
	assert.Contains(t, got, "call C.helper 2")
	assert.Contains(t, got, "pop temp 0")
}

func TestIfElse(t *testing.T) {
	out := compile(t, `class C { field int x; method void m() { if (true) { let x = 1; } else { let x = 2; } return; } }`)
	got := lines(out)
	assert.Contains(t, got, "label IF_FALSE0")
	assert.Contains(t, got, "label IF_END0")
}

func TestArrayReadAndWrite(t *testing.T) {
	out := compile(t, `class C {
		field Array a;
		method void m() {
			var int i;
			let a[i] = 1;
			let i = a[i];
			return;
		}
	}`)
	got := lines(out)
	assert.Contains(t, got, "pop pointer 1")
	assert.Contains(t, got, "push that 0")
	assert.Contains(t, got, "pop that 0")
}

func TestStringConstant(t *testing.T) {
	out := compile(t, `class C { function void m() { do Output.printString("hi"); return; } }`)
	got := lines(out)
	assert.Contains(t, got, "push constant 2")
	assert.Contains(t, got, "call String.new 1")
	assert.Contains(t, got, "push constant 104")
	assert.Contains(t, got, "call String.appendChar 2")
	assert.Contains(t, got, "push constant 105")
}

func TestEmptyStringConstant(t *testing.T) {
	out := compile(t, `class C { function void m() { do Output.printString(""); return; } }`)
	got := lines(out)
	assert.Contains(t, got, "push constant 0")
	assert.Contains(t, got, "call String.new 1")
}

func TestBooleanAndNullKeywords(t *testing.T) {
	out := compile(t, `class C { function boolean t() { return true; } function boolean f() { return false; } function Object n() { return null; } }`)
	got := lines(out)
	assert.Contains(t, got, "neg")
}

func TestUnresolvedIdentifierIsResolutionError(t *testing.T) {
	var sb strings.Builder
	err := CompileSource("Bad.jack", `class C { function void m() { let x = 1; return; } }`, &sb)
	require.Error(t, err)
}

func TestMalformedTokenAbortsCompilation(t *testing.T) {
	var sb strings.Builder
	err := CompileSource("Bad.jack", "class C { function void m() { let x = \"unterminated; return; } }", &sb)
	require.Error(t, err)
}

func TestEmptyParameterAndExpressionLists(t *testing.T) {
	out := compile(t, `class C { function void noop() { do C.other(); return; } function void other() { return; } }`)
	got := lines(out)
	assert.Contains(t, got, "call C.other 0")
}

func TestSubroutineNamedLikeField(t *testing.T) {
	out := compile(t, `class C { field int value; method int value() { return 0; } }`)
	got := lines(out)
	assert.Equal(t, "function C.value 0", got[0])
}
