package compiler

import (
	"github.com/waldhauser/jackc/internal/lexer"
	"github.com/waldhauser/jackc/internal/vmwriter"
)

var binaryOps = map[string]vmwriter.Op{
	"+": vmwriter.Add,
	"-": vmwriter.Sub,
	"&": vmwriter.And,
	"|": vmwriter.Or,
	"<": vmwriter.Lt,
	">": vmwriter.Gt,
	"=": vmwriter.Eq,
}

var unaryOps = map[string]vmwriter.Op{
	"-": vmwriter.Neg,
	"~": vmwriter.Not,
}

// compileExpression implements: term (op term)*
// Operators are left-associative with uniform precedence; no precedence
// climbing (spec.md §4.4).
func (c *Compiler) compileExpression() error {
	if err := c.compileTerm(); err != nil {
		return err
	}
	for {
		tok := c.tok()
		if tok.Type != lexer.Symbol {
			return nil
		}
		switch tok.Lexeme {
		case "*":
			if err := c.advance(); err != nil {
				return err
			}
			if err := c.compileTerm(); err != nil {
				return err
			}
			c.out.WriteCall("Math.multiply", 2)
		case "/":
			if err := c.advance(); err != nil {
				return err
			}
			if err := c.compileTerm(); err != nil {
				return err
			}
			c.out.WriteCall("Math.divide", 2)
		default:
			op, ok := binaryOps[tok.Lexeme]
			if !ok {
				return nil
			}
			if err := c.advance(); err != nil {
				return err
			}
			if err := c.compileTerm(); err != nil {
				return err
			}
			c.out.WriteArithmetic(op)
		}
	}
}

// compileExpressionList implements: (expression (',' expression)*)?
// and returns the argument count.
func (c *Compiler) compileExpressionList() (int, error) {
	if c.tok().Is(")") {
		return 0, nil
	}
	count := 0
	for {
		if err := c.compileExpression(); err != nil {
			return 0, err
		}
		count++
		if c.tok().Is(",") {
			if err := c.advance(); err != nil {
				return 0, err
			}
			continue
		}
		break
	}
	return count, nil
}

// compileTerm implements the term production of spec.md §4.4, dispatching
// on the current token.
func (c *Compiler) compileTerm() error {
	tok := c.tok()
	switch {
	case tok.Type == lexer.IntConst:
		c.out.WritePush(vmwriter.Constant, tok.Int)
		return c.advance()

	case tok.Type == lexer.StringConst:
		c.compileStringLiteral(tok.Str)
		return c.advance()

	case tok.Type == lexer.Keyword:
		switch tok.Lexeme {
		case "true":
			c.out.WritePush(vmwriter.Constant, 1)
			c.out.WriteArithmetic(vmwriter.Neg)
		case "false", "null":
			c.out.WritePush(vmwriter.Constant, 0)
		case "this":
			c.out.WritePush(vmwriter.Pointer, 0)
		default:
			return c.parseErrorAt(tok.Pos, "unexpected keyword %q in expression", tok.Lexeme)
		}
		return c.advance()

	case tok.Is("("):
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileExpression(); err != nil {
			return err
		}
		return c.expect(")")

	case tok.Type == lexer.Symbol && unaryOps[tok.Lexeme] != "":
		op := unaryOps[tok.Lexeme]
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileTerm(); err != nil {
			return err
		}
		c.out.WriteArithmetic(op)
		return nil

	case tok.Type == lexer.Identifier:
		return c.compileIdentifierTerm()

	default:
		return c.parseErrorAt(tok.Pos, "unexpected token %s in expression", tok)
	}
}

// compileIdentifierTerm disambiguates the three identifier-led term forms
// using one extra symbol of lookahead: varName, varName '[' expr ']', and
// subroutineCall (spec.md §4.4 "Term").
func (c *Compiler) compileIdentifierTerm() error {
	namePos := c.tok().Pos
	name, err := c.expectIdentifier()
	if err != nil {
		return err
	}

	switch {
	case c.tok().Is("["):
		if err := c.advance(); err != nil {
			return err
		}
		if err := c.compileArrayOffset(name, namePos); err != nil {
			return err
		}
		c.out.WritePop(vmwriter.Pointer, 1)
		c.out.WritePush(vmwriter.That, 0)
		return c.expect("]")

	case c.tok().IsAny("(", "."):
		return c.compileSubroutineCall(name)

	default:
		segment, index, err := c.resolveVariable(name, namePos)
		if err != nil {
			return err
		}
		c.out.WritePush(segment, index)
		return nil
	}
}

// compileStringLiteral lowers a string constant by repeated
// String.appendChar calls, keeping the constructed object's pointer parked
// in temp 0 between appends and leaving it on the stack at the end
// (spec.md §4.4, one of the two equally correct lowerings).
func (c *Compiler) compileStringLiteral(s string) {
	c.out.WritePush(vmwriter.Constant, len(s))
	c.out.WriteCall("String.new", 1)
	c.out.WritePop(vmwriter.Temp, 0)
	for _, ch := range s {
		c.out.WritePush(vmwriter.Temp, 0)
		c.out.WritePush(vmwriter.Constant, int(ch))
		c.out.WriteCall("String.appendChar", 2)
		c.out.WritePop(vmwriter.Temp, 1)
	}
	c.out.WritePush(vmwriter.Temp, 0)
}

// compileSubroutineCall implements subroutineCall, called either with name
// already parsed (from a term context) or name == "" (from a do-statement,
// where the leading identifier hasn't been consumed yet).
func (c *Compiler) compileSubroutineCall(name string) error {
	if name == "" {
		parsed, err := c.expectIdentifier()
		if err != nil {
			return err
		}
		name = parsed
	}

	switch {
	case c.tok().Is("."):
		if err := c.advance(); err != nil {
			return err
		}
		methodName, err := c.expectIdentifier()
		if err != nil {
			return err
		}

		nArgs := 0
		target := name
		if entry, ok := c.tab.Lookup(name); ok {
			c.out.WritePush(segmentFor(entry.Kind), entry.Index)
			nArgs = 1
			target = entry.Type
		}
		fullName := target + "." + methodName

		if err := c.expect("("); err != nil {
			return err
		}
		n, err := c.compileExpressionList()
		if err != nil {
			return err
		}
		nArgs += n
		if err := c.expect(")"); err != nil {
			return err
		}
		c.out.WriteCall(fullName, nArgs)
		return nil

	case c.tok().Is("("):
		// Unqualified call: an implicit method call on this (spec.md §4.4).
		c.out.WritePush(vmwriter.Pointer, 0)
		if err := c.advance(); err != nil {
			return err
		}
		n, err := c.compileExpressionList()
		if err != nil {
			return err
		}
		if err := c.expect(")"); err != nil {
			return err
		}
		c.out.WriteCall(c.className+"."+name, n+1)
		return nil

	default:
		return c.parseErrorAt(c.tok().Pos, `expected "(" or "." in subroutine call, got %s`, c.tok())
	}
}
