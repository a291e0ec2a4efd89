package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer converts Kotlin source text into tokens, one call to NextToken at a
// time. A Lexer is single-pass, to scan the same input again create a new one
type Lexer struct {
	input string
	// pos is the offset of the next unread byte
	pos int
	// line is the current 1-based line, lineStart the offset where it begins
	line      int
	lineStart int
	// prev is the type of the last token handed out, used to collapse newlines
	prev TokenType
}

// NewLexer creates a new Lexer over the input
func NewLexer(input string) *Lexer {
	l := &Lexer{input: input, line: 1}
	if strings.HasPrefix(input, "\ufeff") {
		l.pos = len("\ufeff")
		l.lineStart = l.pos
	}
	// A shebang line is only valid as the very first line of a file
	if strings.HasPrefix(input[l.pos:], "#!") {
		for !l.eof() && l.input[l.pos] != '\n' {
			l.advance()
		}
	}
	return l
}

// Tokenize drains a lexer over the input. The returned slice always ends with
// an EOF token
func Tokenize(input string) ([]Token, error) {
	l := NewLexer(input)
	var toks []Token
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks, nil
		}
	}
}

// NextToken scans the input and returns the next token. Once the input is
// exhausted it keeps returning EOF
func (l *Lexer) NextToken() (Token, error) {
	for {
		if err := l.skipWhitespaceAndComments(); err != nil {
			return Token{}, err
		}
		if l.eof() {
			return l.emit(EOF, l.position()), nil
		}
		if l.input[l.pos] != '\n' {
			break
		}
		start := l.position()
		l.advance()
		// Blank lines and leading newlines carry no information for the parser
		if l.prev != NEWLINE && l.prev != "" {
			return l.emit(NEWLINE, start), nil
		}
	}

	start := l.position()
	ch := l.input[l.pos]

	switch {
	case ch == '"':
		if err := l.readString(); err != nil {
			return Token{}, err
		}
		return l.emit(STRING, start), nil
	case ch == '\'':
		if err := l.readCharLiteral(); err != nil {
			return Token{}, err
		}
		return l.emit(CHAR, start), nil
	case ch == '`':
		if err := l.readBacktick(); err != nil {
			return Token{}, err
		}
		return l.emit(IDENT, start), nil
	case isDigit(ch) || (ch == '.' && isDigit(l.peek(1)) && !l.afterOperand()):
		if err := l.readNumber(); err != nil {
			return Token{}, err
		}
		return l.emit(NUMBER, start), nil
	}

	r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
	if isLetter(r) {
		l.readIdentifier()
		return l.emit(LookupIdent(l.input[start.Offset:l.pos]), start), nil
	}

	rest := l.input[l.pos:]
	for _, op := range operators {
		if strings.HasPrefix(rest, string(op)) {
			l.advanceN(len(op))
			return l.emit(op, start), nil
		}
	}

	return Token{}, l.errorf(start, "invalid character %q", r)
}

func (l *Lexer) emit(t TokenType, start Position) Token {
	l.prev = t
	return Token{
		Type:    t,
		Literal: l.input[start.Offset:l.pos],
		Offset:  start.Offset,
		End:     l.pos,
		Line:    start.Line,
		Column:  start.Column,
	}
}

func (l *Lexer) errorf(at Position, format string, args ...any) error {
	return &LexError{Position: at, Msg: fmt.Sprintf(format, args...)}
}

func (l *Lexer) eof() bool {
	return l.pos >= len(l.input)
}

// peek looks n bytes past the current one without consuming anything, it
// returns 0 past the end of the input
func (l *Lexer) peek(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

// advance consumes one byte, keeping the line count up to date
func (l *Lexer) advance() {
	if l.input[l.pos] == '\n' {
		l.line++
		l.lineStart = l.pos + 1
	}
	l.pos++
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n && !l.eof(); i++ {
		l.advance()
	}
}

func (l *Lexer) position() Position {
	return Position{Offset: l.pos, Line: l.line, Column: l.pos - l.lineStart + 1}
}

// afterOperand reports whether the previous token ends an operand, in which
// case a '.' is member access rather than the start of a number like `.5`
func (l *Lexer) afterOperand() bool {
	switch l.prev {
	case IDENT, NUMBER, STRING, CHAR, RPAREN, RBRACKET, RBRACE, THIS, SUPER:
		return true
	}
	return false
}

// skipWhitespaceAndComments consumes blanks and comments, but not newlines
func (l *Lexer) skipWhitespaceAndComments() error {
	for !l.eof() {
		ch := l.input[l.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\r' || ch == '\f':
			l.advance()
		case ch == '/' && l.peek(1) == '/':
			for !l.eof() && l.input[l.pos] != '\n' {
				l.advance()
			}
		case ch == '/' && l.peek(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// skipBlockComment consumes a block comment, Kotlin block comments nest
func (l *Lexer) skipBlockComment() error {
	start := l.position()
	l.advanceN(2)
	depth := 1
	for depth > 0 {
		if l.eof() {
			return l.errorf(start, "unterminated block comment")
		}
		switch {
		case l.input[l.pos] == '/' && l.peek(1) == '*':
			l.advanceN(2)
			depth++
		case l.input[l.pos] == '*' && l.peek(1) == '/':
			l.advanceN(2)
			depth--
		default:
			l.advance()
		}
	}
	return nil
}

func (l *Lexer) readIdentifier() {
	for !l.eof() {
		r, size := utf8.DecodeRuneInString(l.input[l.pos:])
		if !isLetter(r) && !unicode.IsDigit(r) {
			return
		}
		l.advanceN(size)
	}
}

func (l *Lexer) readBacktick() error {
	start := l.position()
	l.advance()
	for {
		if l.eof() || l.input[l.pos] == '\n' {
			return l.errorf(start, "unterminated backtick identifier")
		}
		if l.input[l.pos] == '`' {
			l.advance()
			if l.pos-start.Offset == 2 {
				return l.errorf(start, "empty backtick identifier")
			}
			return nil
		}
		l.advance()
	}
}

// readString consumes a string literal, including any templates inside it.
// The content is not interpreted beyond finding where the literal ends
func (l *Lexer) readString() error {
	start := l.position()
	if strings.HasPrefix(l.input[l.pos:], `"""`) {
		return l.readRawString(start)
	}

	l.advance()
	for {
		if l.eof() || l.input[l.pos] == '\n' {
			return l.errorf(start, "unterminated string literal")
		}
		switch l.input[l.pos] {
		case '"':
			l.advance()
			return nil
		case '\\':
			l.advance()
			if l.eof() || l.input[l.pos] == '\n' {
				return l.errorf(start, "unterminated string literal")
			}
			l.advance()
		case '$':
			if l.peek(1) == '{' {
				if err := l.readTemplate(); err != nil {
					return err
				}
			} else {
				l.advance()
			}
		default:
			l.advance()
		}
	}
}

func (l *Lexer) readRawString(start Position) error {
	l.advanceN(3)
	for {
		if l.eof() {
			return l.errorf(start, "unterminated raw string literal")
		}
		if strings.HasPrefix(l.input[l.pos:], `"""`) {
			l.advanceN(3)
			// Extra quotes before the closing delimiter belong to the content
			for !l.eof() && l.input[l.pos] == '"' {
				l.advance()
			}
			return nil
		}
		if l.input[l.pos] == '$' && l.peek(1) == '{' {
			if err := l.readTemplate(); err != nil {
				return err
			}
			continue
		}
		l.advance()
	}
}

// readTemplate consumes a `${...}` template expression inside a string, which
// may itself contain braces, strings and comments
func (l *Lexer) readTemplate() error {
	start := l.position()
	l.advanceN(2)
	depth := 1
	for {
		if l.eof() {
			return l.errorf(start, "unterminated string template")
		}
		ch := l.input[l.pos]
		switch {
		case ch == '{':
			depth++
			l.advance()
		case ch == '}':
			depth--
			l.advance()
			if depth == 0 {
				return nil
			}
		case ch == '"':
			if err := l.readString(); err != nil {
				return err
			}
		case ch == '\'':
			if err := l.readCharLiteral(); err != nil {
				return err
			}
		case ch == '/' && l.peek(1) == '/':
			for !l.eof() && l.input[l.pos] != '\n' {
				l.advance()
			}
		case ch == '/' && l.peek(1) == '*':
			if err := l.skipBlockComment(); err != nil {
				return err
			}
		default:
			l.advance()
		}
	}
}

func (l *Lexer) readCharLiteral() error {
	start := l.position()
	l.advance()
	if l.eof() || l.input[l.pos] == '\n' {
		return l.errorf(start, "unterminated character literal")
	}

	switch l.input[l.pos] {
	case '\'':
		return l.errorf(start, "empty character literal")
	case '\\':
		l.advance()
		if l.eof() || l.input[l.pos] == '\n' {
			return l.errorf(start, "unterminated character literal")
		}
		if l.input[l.pos] == 'u' {
			l.advance()
			for i := 0; i < 4; i++ {
				if l.eof() || !isHexDigit(l.input[l.pos]) {
					return l.errorf(start, "invalid unicode escape in character literal")
				}
				l.advance()
			}
		} else {
			l.advance()
		}
	default:
		_, size := utf8.DecodeRuneInString(l.input[l.pos:])
		l.advanceN(size)
	}

	if l.eof() || l.input[l.pos] != '\'' {
		return l.errorf(start, "unterminated character literal")
	}
	l.advance()
	return nil
}

// readNumber consumes an integer or floating point literal with its suffixes
func (l *Lexer) readNumber() error {
	start := l.position()

	switch {
	case l.input[l.pos] == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X'):
		l.advanceN(2)
		if l.eof() || !isHexDigit(l.input[l.pos]) {
			return l.errorf(start, "malformed hexadecimal literal")
		}
		for !l.eof() && (isHexDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
			l.advance()
		}
	case l.input[l.pos] == '0' && (l.peek(1) == 'b' || l.peek(1) == 'B'):
		l.advanceN(2)
		if l.eof() || (l.input[l.pos] != '0' && l.input[l.pos] != '1') {
			return l.errorf(start, "malformed binary literal")
		}
		for !l.eof() && (l.input[l.pos] == '0' || l.input[l.pos] == '1' || l.input[l.pos] == '_') {
			l.advance()
		}
	default:
		l.readDigits()
		// `1..2` is a range, so the dot only belongs to the number if a digit follows
		if !l.eof() && l.input[l.pos] == '.' && isDigit(l.peek(1)) {
			l.advance()
			l.readDigits()
		}
		if !l.eof() && (l.input[l.pos] == 'e' || l.input[l.pos] == 'E') {
			n := 1
			if l.peek(1) == '+' || l.peek(1) == '-' {
				n = 2
			}
			if isDigit(l.peek(n)) {
				l.advanceN(n)
				l.readDigits()
			}
		}
	}

	for !l.eof() && strings.IndexByte("uUlLfF", l.input[l.pos]) >= 0 {
		l.advance()
	}

	if !l.eof() {
		r, _ := utf8.DecodeRuneInString(l.input[l.pos:])
		if isLetter(r) || unicode.IsDigit(r) {
			return l.errorf(start, "malformed number literal")
		}
	}
	return nil
}

func (l *Lexer) readDigits() {
	for !l.eof() && (isDigit(l.input[l.pos]) || l.input[l.pos] == '_') {
		l.advance()
	}
}

func isLetter(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || 'a' <= ch && ch <= 'f' || 'A' <= ch && ch <= 'F'
}
