package lexer

import "fmt"

// Position is a location in a source file
type Position struct {
	// File is the display name of the source, it may be empty
	File string
	// Offset is the 0-based byte offset
	Offset int
	// Line and Column are 1-based
	Line   int
	Column int
}

func (p Position) String() string {
	if p.File == "" {
		return fmt.Sprintf("%d:%d", p.Line, p.Column)
	}
	return fmt.Sprintf("%s:%d:%d", p.File, p.Line, p.Column)
}

// LexError is returned when the input contains a malformed token, such as an
// unterminated literal or a character that can't start any token
type LexError struct {
	Position
	Msg string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: lex error: %s (offset %d)", e.Position, e.Msg, e.Offset)
}

// InFile returns a copy of the error attributed to the given file
func (e *LexError) InFile(name string) *LexError {
	cp := *e
	cp.File = name
	return &cp
}
