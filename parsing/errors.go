package parsing

import (
	"fmt"

	"gitlab.com/tozd/go/errors"

	"github.com/NickyBoy89/ktdecl/lexer"
)

// ParseError is returned when a file's tokens can't be reconciled with the
// declaration grammar, such as unbalanced braces or a keyword missing the name
// that has to follow it
type ParseError struct {
	lexer.Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: parse error: %s (offset %d)", e.Position, e.Msg, e.Offset)
}

// bailout carries an error up through the parser's recursion, it is recovered
// by ParseFile and never escapes the package
type bailout struct {
	err error
}

func (p *parser) errorf(at lexer.Token, format string, args ...any) {
	pos := at.Pos()
	pos.File = p.name
	panic(bailout{&ParseError{Position: pos, Msg: fmt.Sprintf(format, args...)}})
}

// describe names a token for an error message
func describe(tok lexer.Token) string {
	switch tok.Type {
	case lexer.EOF:
		return "end of file"
	case lexer.NEWLINE:
		return "newline"
	}
	return fmt.Sprintf("%q", tok.Literal)
}

// ErrorPosition returns where a lex or parse error occurred
func ErrorPosition(err error) (lexer.Position, bool) {
	var lexErr *lexer.LexError
	if errors.As(err, &lexErr) {
		return lexErr.Position, true
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Position, true
	}
	return lexer.Position{}, false
}
