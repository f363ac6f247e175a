package compiler

import (
	"strconv"

	"github.com/waldhauser/jackc/internal/lexer"
	"github.com/waldhauser/jackc/internal/vmwriter"
)

// compileStatements implements: statement*
func (c *Compiler) compileStatements() error {
	for !c.tok().Is("}") {
		var err error
		switch {
		case c.tok().Is("let"):
			err = c.compileLet()
		case c.tok().Is("if"):
			err = c.compileIf()
		case c.tok().Is("while"):
			err = c.compileWhile()
		case c.tok().Is("do"):
			err = c.compileDo()
		case c.tok().Is("return"):
			err = c.compileReturn()
		default:
			err = c.parseErrorAt(c.tok().Pos, "expected a statement, got %s", c.tok())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// compileLet implements:
// 'let' varName ('[' expression ']')? '=' expression ';'
func (c *Compiler) compileLet() error {
	if err := c.expect("let"); err != nil {
		return err
	}
	namePos := c.tok().Pos
	name, err := c.expectIdentifier()
	if err != nil {
		return err
	}

	isArray := false
	if c.tok().Is("[") {
		isArray = true
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileArrayOffset(name, namePos); err != nil {
			return err
		}
		if err := c.expect("]"); err != nil {
			return err
		}
	}

	if err := c.expect("="); err != nil {
		return err
	}
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.expect(";"); err != nil {
		return err
	}

	if isArray {
		// Base-plus-offset address is on the stack beneath the RHS value;
		// stash the value, land the address in THAT, then store.
		c.out.WritePop(vmwriter.Temp, 0)
		c.out.WritePop(vmwriter.Pointer, 1)
		c.out.WritePush(vmwriter.Temp, 0)
		c.out.WritePop(vmwriter.That, 0)
		return nil
	}

	segment, index, err := c.resolveVariable(name, namePos)
	if err != nil {
		return err
	}
	c.out.WritePop(segment, index)
	return nil
}

// compileArrayOffset compiles "expression" assuming '[' was just consumed,
// then leaves base+offset on the stack: compile the index, push the
// array's base address, add. Shared by array-read and array-store.
func (c *Compiler) compileArrayOffset(name string, namePos lexer.Position) error {
	if err := c.compileExpression(); err != nil {
		return err
	}
	segment, index, err := c.resolveVariable(name, namePos)
	if err != nil {
		return err
	}
	c.out.WritePush(segment, index)
	c.out.WriteArithmetic(vmwriter.Add)
	return nil
}

func (c *Compiler) compileIf() error {
	if err := c.expect("if"); err != nil {
		return err
	}
	if err := c.expect("("); err != nil {
		return err
	}

	n := c.allocLabel()
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.expect(")"); err != nil {
		return err
	}

	c.out.WriteArithmetic(vmwriter.Not)
	falseLabel := labelName("IF_FALSE", n)
	endLabel := labelName("IF_END", n)
	c.out.WriteIf(falseLabel)

	if err := c.expect("{"); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	if err := c.expect("}"); err != nil {
		return err
	}

	c.out.WriteGoto(endLabel)
	c.out.WriteLabel(falseLabel)

	if c.tok().Is("else") {
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.expect("{"); err != nil {
			return err
		}
		if err := c.compileStatements(); err != nil {
			return err
		}
		if err := c.expect("}"); err != nil {
			return err
		}
	}

	c.out.WriteLabel(endLabel)
	return nil
}

func (c *Compiler) compileWhile() error {
	if err := c.expect("while"); err != nil {
		return err
	}
	if err := c.expect("("); err != nil {
		return err
	}

	n := c.allocLabel()
	startLabel := labelName("WHILE_START", n)
	endLabel := labelName("WHILE_END", n)

	c.out.WriteLabel(startLabel)
	if err := c.compileExpression(); err != nil {
		return err
	}
	if err := c.expect(")"); err != nil {
		return err
	}

	c.out.WriteArithmetic(vmwriter.Not)
	c.out.WriteIf(endLabel)

	if err := c.expect("{"); err != nil {
		return err
	}
	if err := c.compileStatements(); err != nil {
		return err
	}
	if err := c.expect("}"); err != nil {
		return err
	}

	c.out.WriteGoto(startLabel)
	c.out.WriteLabel(endLabel)
	return nil
}

// compileDo implements: 'do' subroutineCall ';'
// Restricted to a subroutine-call term exclusively: the grammar allows no
// other term here (spec.md §9, supplemented feature).
func (c *Compiler) compileDo() error {
	if err := c.expect("do"); err != nil {
		return err
	}
	if err := c.compileSubroutineCall(""); err != nil {
		return err
	}
	c.out.WritePop(vmwriter.Temp, 0)
	return c.expect(";")
}

// compileReturn implements: 'return' expression? ';'
func (c *Compiler) compileReturn() error {
	if err := c.expect("return"); err != nil {
		return err
	}
	if c.tok().Is(";") {
		c.out.WritePush(vmwriter.Constant, 0)
	} else if err := c.compileExpression(); err != nil {
		return err
	}
	c.out.WriteReturn()
	return c.expect(";")
}

func labelName(prefix string, n int) string {
	return prefix + strconv.Itoa(n)
}
