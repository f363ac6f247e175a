package compiler

import (
	"github.com/waldhauser/jackc/internal/lexer"
	"github.com/waldhauser/jackc/internal/symtab"
	"github.com/waldhauser/jackc/internal/vmwriter"
)

var primitiveTypes = map[string]bool{"int": true, "char": true, "boolean": true}

// compileClass implements: 'class' className '{' classVarDec* subroutineDec* '}'
func (c *Compiler) compileClass() error {
	if err := c.expect("class"); err != nil {
		return err
	}

	name, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	c.className = name

	if err := c.expect("{"); err != nil {
		return err
	}

	for c.tok().IsAny("static", "field") {
		if err := c.compileClassVarDec(); err != nil {
			return err
		}
	}

	for c.tok().IsAny("constructor", "function", "method") {
		if err := c.compileSubroutineDec(); err != nil {
			return err
		}
	}

	if err := c.expect("}"); err != nil {
		return err
	}
	if c.src.HasMore() {
		return c.parseErrorAt(c.tok().Pos, "unexpected token after class body: %s", c.tok())
	}
	return nil
}

// compileClassVarDec implements: ('static'|'field') type varName (',' varName)* ';'
func (c *Compiler) compileClassVarDec() error {
	var kind symtab.Kind
	switch {
	case c.tok().Is("static"):
		kind = symtab.Static
	case c.tok().Is("field"):
		kind = symtab.Field
	default:
		return c.parseErrorAt(c.tok().Pos, `expected "static" or "field", got %s`, c.tok())
	}
	if err := c.advance(); err != nil {
		return err
	}
	_, err := c.compileVarSequence(kind)
	return err
}

// compileVarSequence parses "type name (',' name)* ';'" and declares each
// name in the scope its kind implies. Shared by class-var and var
// declarations (spec.md §4.4).
func (c *Compiler) compileVarSequence(kind symtab.Kind) (int, error) {
	typ, err := c.parseType()
	if err != nil {
		return 0, err
	}

	count := 0
	for {
		name, err := c.expectIdentifier()
		if err != nil {
			return 0, err
		}
		c.tab.Define(name, typ, kind)
		count++

		if c.tok().Is(",") {
			if err := c.advance(); err != nil {
				return 0, err
			}
			continue
		}
		break
	}
	if err := c.expect(";"); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Compiler) parseType() (string, error) {
	tok := c.tok()
	if tok.Type == lexer.Keyword && primitiveTypes[tok.Lexeme] {
		name := tok.Lexeme
		return name, c.advance()
	}
	if tok.Type == lexer.Identifier {
		return c.expectIdentifier()
	}
	return "", c.parseErrorAt(tok.Pos, "expected type, got %s", tok)
}

// compileSubroutineDec implements:
// ('constructor'|'function'|'method') (type|'void') subroutineName
// '(' parameterList ')' subroutineBody
func (c *Compiler) compileSubroutineDec() error {
	c.tab.StartSubroutine()

	var kind subroutineKind
	switch {
	case c.tok().Is("constructor"):
		kind = constructorKind
	case c.tok().Is("function"):
		kind = functionKind
	case c.tok().Is("method"):
		kind = methodKind
	default:
		return c.parseErrorAt(c.tok().Pos, `expected "constructor", "function" or "method", got %s`, c.tok())
	}

	if kind == methodKind {
		// Bound before the user parameter list is consumed (spec.md §3).
		c.tab.Define("this", c.className, symtab.Arg)
	}

	if err := c.advance(); err != nil {
		return err
	}

	// Return type: 'void' or a type. Neither is needed for codegen.
	if c.tok().Is("void") {
		if err := c.advance(); err != nil {
			return err
		}
	} else if _, err := c.parseType(); err != nil {
		return err
	}

	name, err := c.expectIdentifier()
	if err != nil {
		return err
	}
	c.subroutineName = name

	if err := c.expect("("); err != nil {
		return err
	}
	if !c.tok().Is(")") {
		if err := c.compileParameterList(); err != nil {
			return err
		}
	}
	if err := c.expect(")"); err != nil {
		return err
	}

	return c.compileSubroutineBody(name, kind)
}

// compileParameterList implements: (type varName (',' type varName)*)?
func (c *Compiler) compileParameterList() error {
	for {
		typ, err := c.parseType()
		if err != nil {
			return err
		}
		name, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		c.tab.Define(name, typ, symtab.Arg)

		if c.tok().Is(",") {
			if err := c.advance(); err != nil {
				return err
			}
			continue
		}
		break
	}
	return nil
}

// compileSubroutineBody implements:
// '{' varDec* statements '}', emitting the function header and the
// constructor/method preamble per spec.md §4.4.
func (c *Compiler) compileSubroutineBody(name string, kind subroutineKind) error {
	if err := c.expect("{"); err != nil {
		return err
	}

	for c.tok().Is("var") {
		if _, err := c.compileVarDec(); err != nil {
			return err
		}
	}

	c.out.WriteFunction(c.className+"."+name, c.tab.VarCount(symtab.Var))

	switch kind {
	case constructorKind:
		nFields := c.tab.VarCount(symtab.Field)
		c.out.WritePush(vmwriter.Constant, nFields)
		c.out.WriteCall("Memory.alloc", 1)
		c.out.WritePop(vmwriter.Pointer, 0)
	case methodKind:
		c.out.WritePush(vmwriter.Argument, 0)
		c.out.WritePop(vmwriter.Pointer, 0)
	}

	if err := c.compileStatements(); err != nil {
		return err
	}
	return c.expect("}")
}

// compileVarDec implements: 'var' type varName (',' varName)* ';'
func (c *Compiler) compileVarDec() (int, error) {
	if err := c.expect("var"); err != nil {
		return 0, err
	}
	return c.compileVarSequence(symtab.Var)
}
