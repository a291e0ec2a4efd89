package parsetools

import (
	"strings"

	"github.com/NickyBoy89/ktdecl/lexer"
)

// closers maps each opening bracket to the token that closes it
var closers = map[lexer.TokenType]lexer.TokenType{
	lexer.LPAREN:   lexer.RPAREN,
	lexer.LBRACKET: lexer.RBRACKET,
	lexer.LBRACE:   lexer.RBRACE,
}

// IndexOfMatching returns the index of the token that closes the bracket at
// openingIndex, or -1 if the brackets are unbalanced. All three kinds of
// brackets are tracked, so a stray `)` inside braces also counts as unbalanced
func IndexOfMatching(tokens []lexer.Token, openingIndex int) int {
	if _, ok := closers[tokens[openingIndex].Type]; !ok {
		return -1
	}

	var stack []lexer.TokenType
	for ti := openingIndex; ti < len(tokens); ti++ {
		typ := tokens[ti].Type
		if closing, ok := closers[typ]; ok {
			stack = append(stack, closing)
			continue
		}
		switch typ {
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			if stack[len(stack)-1] != typ {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return ti
			}
		}
	}
	return -1
}

// SplitParameters splits the tokens between the parentheses of a parameter
// list into one group per parameter.
//
// Commas only split at the top level. Parentheses, brackets and braces always
// nest. Angle brackets nest in the declared type of a parameter, and in a
// default value only as the type arguments of a call or reference like
// `emptyMap<K, V>()`, since a default like `a < b` is a comparison
func SplitParameters(tokens []lexer.Token) [][]lexer.Token {
	var (
		params    [][]lexer.Token
		current   []lexer.Token
		depth     int
		angles    int
		inDefault bool
	)

	flush := func() {
		if len(significant(current)) > 0 {
			params = append(params, current)
		}
		current = nil
		angles = 0
		inDefault = false
	}

	for ti := 0; ti < len(tokens); ti++ {
		tok := tokens[ti]
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			depth++
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			if depth > 0 {
				depth--
			}
		case lexer.LT:
			if !inDefault {
				angles++
				break
			}
			if closing := typeArgumentsEnd(tokens, ti); closing >= 0 {
				current = append(current, tokens[ti:closing+1]...)
				ti = closing
				continue
			}
		case lexer.GT:
			if !inDefault && angles > 0 {
				angles--
			}
		case lexer.ASSIGN:
			if depth == 0 && angles == 0 {
				inDefault = true
			}
		case lexer.COMMA:
			if depth == 0 && angles == 0 {
				flush()
				continue
			}
		}
		current = append(current, tok)
	}
	flush()

	return params
}

// typeArgumentsEnd returns the index of the `>` closing the type arguments
// opened by the `<` at open, or -1 when the `<` is a comparison. Type
// arguments follow a name, hold only type tokens, and are followed by a call,
// a `::` or a `.`
func typeArgumentsEnd(tokens []lexer.Token, open int) int {
	if open == 0 || tokens[open-1].Type != lexer.IDENT {
		return -1
	}

	angles, parens := 0, 0
	for ti := open; ti < len(tokens); ti++ {
		switch tokens[ti].Type {
		case lexer.LT:
			angles++
		case lexer.GT:
			angles--
			if angles > 0 {
				continue
			}
			if parens != 0 || ti+1 >= len(tokens) {
				return -1
			}
			switch tokens[ti+1].Type {
			case lexer.LPAREN, lexer.COLON2, lexer.DOT:
				return ti
			}
			return -1
		case lexer.LPAREN:
			parens++
		case lexer.RPAREN:
			if parens == 0 {
				return -1
			}
			parens--
		case lexer.IDENT, lexer.COMMA, lexer.DOT, lexer.QUESTION, lexer.ASTERISK,
			lexer.ARROW, lexer.IN, lexer.NEWLINE:
		default:
			return -1
		}
	}
	return -1
}

// JoinTokens rebuilds the source text of a run of tokens. Tokens that were
// adjacent in the source stay adjacent, any gap between two tokens becomes a
// single space. Newline tokens only count as a gap
func JoinTokens(tokens []lexer.Token) string {
	var builder strings.Builder
	prevEnd := -1
	for _, tok := range significant(tokens) {
		if prevEnd >= 0 && tok.Offset > prevEnd {
			builder.WriteByte(' ')
		}
		builder.WriteString(tok.Literal)
		prevEnd = tok.End
	}
	return builder.String()
}

// significant drops the newline and end of file markers from a token run
func significant(tokens []lexer.Token) []lexer.Token {
	kept := make([]lexer.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type != lexer.NEWLINE && tok.Type != lexer.EOF {
			kept = append(kept, tok)
		}
	}
	return kept
}
