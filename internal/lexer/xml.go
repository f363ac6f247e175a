package lexer

import (
	"fmt"
	"io"
	"strings"
)

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// tagName maps a TokenType to the element name used by the classic
// tokenizer XML dump (jackc tokens), one tag per spec.md §3 token class.
func (t TokenType) tagName() string {
	switch t {
	case Keyword:
		return "keyword"
	case Symbol:
		return "symbol"
	case IntConst:
		return "integerConstant"
	case StringConst:
		return "stringConstant"
	case Identifier:
		return "identifier"
	default:
		return "invalid"
	}
}

// text returns the token's textual payload, XML-escaped.
func (t Token) text() string {
	switch t.Type {
	case StringConst:
		return xmlEscaper.Replace(t.Str)
	case IntConst:
		return t.Lexeme
	default:
		return xmlEscaper.Replace(t.Lexeme)
	}
}

// WriteXML dumps every token of src as a flat <tokens> listing, one
// element per token, in source order. It is a debugging aid (jackc
// tokens) rather than part of the compiler's VM-output contract, so a
// lexical error truncates the listing and is returned to the caller
// instead of being embedded in the XML.
func WriteXML(w io.Writer, src string) error {
	c := New(src)
	if _, err := fmt.Fprintln(w, "<tokens>"); err != nil {
		return err
	}
	for {
		if err := c.Advance(); err != nil {
			return err
		}
		if !c.HasMore() {
			break
		}
		tok := c.Current()
		if _, err := fmt.Fprintf(w, "<%s> %s </%s>\n", tok.Type.tagName(), tok.text(), tok.Type.tagName()); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "</tokens>")
	return err
}
