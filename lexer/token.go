package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType string

// Token is a single lexical token. Offsets are byte offsets into the source
type Token struct {
	Type    TokenType
	Literal string
	// Offset of the first byte of the token
	Offset int
	// End is the offset just past the last byte of the token
	End int
	// Line and Column are 1-based, the column counts bytes
	Line   int
	Column int
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q)@%d", t.Type, t.Literal, t.Offset)
}

// Pos returns the position where the token starts
func (t Token) Pos() Position {
	return Position{Offset: t.Offset, Line: t.Line, Column: t.Column}
}

const (
	EOF     TokenType = "EOF"
	NEWLINE TokenType = "NEWLINE"

	IDENT  TokenType = "IDENT"
	NUMBER TokenType = "NUMBER"
	STRING TokenType = "STRING"
	CHAR   TokenType = "CHAR"

	// Delimiters
	LPAREN    TokenType = "("
	RPAREN    TokenType = ")"
	LBRACE    TokenType = "{"
	RBRACE    TokenType = "}"
	LBRACKET  TokenType = "["
	RBRACKET  TokenType = "]"
	COMMA     TokenType = ","
	DOT       TokenType = "."
	SEMICOLON TokenType = ";"
	COLON     TokenType = ":"
	COLON2    TokenType = "::"
	AT        TokenType = "@"

	// Operators
	ASSIGN      TokenType = "="
	EQ          TokenType = "=="
	STRICT_EQ   TokenType = "==="
	NOT_EQ      TokenType = "!="
	STRICT_NEQ  TokenType = "!=="
	BANG        TokenType = "!"
	NOT_NULL    TokenType = "!!"
	LT          TokenType = "<"
	GT          TokenType = ">"
	LE          TokenType = "<="
	GE          TokenType = ">="
	PLUS        TokenType = "+"
	MINUS       TokenType = "-"
	ASTERISK    TokenType = "*"
	SLASH       TokenType = "/"
	PERCENT     TokenType = "%"
	INC         TokenType = "++"
	DEC         TokenType = "--"
	PLUS_EQ     TokenType = "+="
	MINUS_EQ    TokenType = "-="
	ASTERISK_EQ TokenType = "*="
	SLASH_EQ    TokenType = "/="
	PERCENT_EQ  TokenType = "%="
	AND         TokenType = "&&"
	OR          TokenType = "||"
	AMPERSAND   TokenType = "&"
	ARROW       TokenType = "->"
	DOUBLEARROW TokenType = "=>"
	RANGE       TokenType = ".."
	RANGE_UNTIL TokenType = "..<"
	QUESTION    TokenType = "?"
	SAFE_CALL   TokenType = "?."
	ELVIS       TokenType = "?:"

	// Hard keywords
	AS        TokenType = "as"
	BREAK     TokenType = "break"
	CLASS     TokenType = "class"
	CONTINUE  TokenType = "continue"
	DO        TokenType = "do"
	ELSE      TokenType = "else"
	FALSE     TokenType = "false"
	FOR       TokenType = "for"
	FUN       TokenType = "fun"
	IF        TokenType = "if"
	IN        TokenType = "in"
	INTERFACE TokenType = "interface"
	IS        TokenType = "is"
	NULL      TokenType = "null"
	OBJECT    TokenType = "object"
	PACKAGE   TokenType = "package"
	RETURN    TokenType = "return"
	SUPER     TokenType = "super"
	THIS      TokenType = "this"
	THROW     TokenType = "throw"
	TRUE      TokenType = "true"
	TRY       TokenType = "try"
	TYPEALIAS TokenType = "typealias"
	TYPEOF    TokenType = "typeof"
	VAL       TokenType = "val"
	VAR       TokenType = "var"
	WHEN      TokenType = "when"
	WHILE     TokenType = "while"
)

// keywords are Kotlin's hard keywords, soft keywords and modifiers are lexed as
// identifiers and interpreted by the parser
var keywords = map[string]TokenType{
	"as":        AS,
	"break":     BREAK,
	"class":     CLASS,
	"continue":  CONTINUE,
	"do":        DO,
	"else":      ELSE,
	"false":     FALSE,
	"for":       FOR,
	"fun":       FUN,
	"if":        IF,
	"in":        IN,
	"interface": INTERFACE,
	"is":        IS,
	"null":      NULL,
	"object":    OBJECT,
	"package":   PACKAGE,
	"return":    RETURN,
	"super":     SUPER,
	"this":      THIS,
	"throw":     THROW,
	"true":      TRUE,
	"try":       TRY,
	"typealias": TYPEALIAS,
	"typeof":    TYPEOF,
	"val":       VAL,
	"var":       VAR,
	"when":      WHEN,
	"while":     WHILE,
}

// operators is ordered so that longer operators are matched first
var operators = []TokenType{
	STRICT_EQ, STRICT_NEQ, RANGE_UNTIL,
	EQ, NOT_EQ, NOT_NULL, LE, GE, INC, DEC, PLUS_EQ, MINUS_EQ, ASTERISK_EQ, SLASH_EQ,
	PERCENT_EQ, AND, OR, ARROW, DOUBLEARROW, RANGE, SAFE_CALL, ELVIS, COLON2,
	LPAREN, RPAREN, LBRACE, RBRACE, LBRACKET, RBRACKET, COMMA, DOT, SEMICOLON, COLON, AT,
	ASSIGN, BANG, LT, GT, PLUS, MINUS, ASTERISK, SLASH, PERCENT, AMPERSAND, QUESTION,
}

// LookupIdent checks the keywords table for an identifier
func LookupIdent(ident string) TokenType {
	if tokType, ok := keywords[ident]; ok {
		return tokType
	}
	return IDENT
}
