package parsing

import (
	"gitlab.com/tozd/go/errors"

	"github.com/NickyBoy89/ktdecl/keywords"
	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/parsetools"
	"github.com/NickyBoy89/ktdecl/symbol"
)

// context is the kind of block that a declaration appears in
type context int

const (
	topLevel context = iota
	classBody
	functionBody
)

// parser pulls tokens from the lexer on demand. Every token that was read is
// kept, so the parser can look ahead and backtrack by resetting pos
type parser struct {
	name string
	lex  *lexer.Lexer
	toks []lexer.Token
	pos  int
}

// ParseFile parses the source of a single Kotlin file into its declaration
// tree. The name is only used for diagnostics.
//
// On failure no tree is returned, and the error is either a *lexer.LexError
// or a *ParseError attributed to the file
func ParseFile(name string, src []byte) (file *symbol.SourceFile, err error) {
	p := &parser{
		name: name,
		lex:  lexer.NewLexer(string(src)),
	}

	defer func() {
		if r := recover(); r != nil {
			b, ok := r.(bailout)
			if !ok {
				panic(r)
			}
			file, err = nil, b.err
		}
	}()

	return p.parseFile(), nil
}

func (p *parser) parseFile() *symbol.SourceFile {
	file := &symbol.SourceFile{Name: p.name}

	p.skipSeparators()
	for p.cur().Type == lexer.AT && p.peek(1).Literal == "file" && p.peek(2).Type == lexer.COLON {
		p.parseAnnotation()
		p.skipSeparators()
	}

	if p.cur().Type == lexer.PACKAGE {
		p.next()
		file.Package = parsetools.JoinTokens(p.restOfLine())
		p.skipSeparators()
	}

	for p.cur().Type == lexer.IDENT && p.cur().Literal == keywords.Import {
		p.next()
		file.Imports = append(file.Imports, parsetools.JoinTokens(p.restOfLine()))
		p.skipSeparators()
	}

	for {
		p.skipSeparators()
		tok := p.cur()
		if tok.Type == lexer.EOF {
			return file
		}
		decl, ok := p.parseDeclaration(topLevel)
		if !ok {
			p.errorf(tok, "unexpected %s at top level", describe(tok))
		}
		if decl != nil {
			file.Declarations = append(file.Declarations, decl)
		}
	}
}

// peek returns the token n places after the current one, reading more tokens
// from the lexer as needed. Past the end of the input it returns EOF
func (p *parser) peek(n int) lexer.Token {
	for len(p.toks) <= p.pos+n {
		if len(p.toks) > 0 && p.toks[len(p.toks)-1].Type == lexer.EOF {
			return p.toks[len(p.toks)-1]
		}
		tok, err := p.lex.NextToken()
		if err != nil {
			var lexErr *lexer.LexError
			if errors.As(err, &lexErr) {
				err = lexErr.InFile(p.name)
			}
			panic(bailout{err})
		}
		p.toks = append(p.toks, tok)
	}
	return p.toks[p.pos+n]
}

func (p *parser) cur() lexer.Token {
	return p.peek(0)
}

// next consumes the current token and returns it. The parser never moves
// past EOF
func (p *parser) next() lexer.Token {
	tok := p.cur()
	if tok.Type != lexer.EOF {
		p.pos++
	}
	return tok
}

// prev returns the last consumed token
func (p *parser) prev() lexer.Token {
	if p.pos == 0 {
		return lexer.Token{}
	}
	return p.toks[p.pos-1]
}

func (p *parser) skipNewlines() {
	for p.cur().Type == lexer.NEWLINE {
		p.next()
	}
}

// skipSeparators consumes anything that separates two statements
func (p *parser) skipSeparators() {
	for p.cur().Type == lexer.NEWLINE || p.cur().Type == lexer.SEMICOLON {
		p.next()
	}
}

// peekPastNewlines returns the first token that isn't a newline, without
// consuming anything
func (p *parser) peekPastNewlines() lexer.Token {
	return p.peekPastNewlinesFrom(0)
}

// peekPastNewlinesFrom is peekPastNewlines starting n tokens ahead
func (p *parser) peekPastNewlinesFrom(n int) lexer.Token {
	for p.peek(n).Type == lexer.NEWLINE {
		n++
	}
	return p.peek(n)
}

// restOfLine consumes tokens up to the end of the current statement, and
// returns them without the terminator
func (p *parser) restOfLine() []lexer.Token {
	start := p.pos
	for {
		switch p.cur().Type {
		case lexer.NEWLINE, lexer.SEMICOLON, lexer.EOF:
			return p.toks[start:p.pos]
		}
		p.next()
	}
}

// matchAhead returns the distance between the current token and the bracket
// that closes the bracket n tokens ahead, or -1 if it is never closed
func (p *parser) matchAhead(n int) int {
	depth := 0
	for k := n; ; k++ {
		switch p.peek(k).Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			depth++
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			depth--
		case lexer.EOF:
			return -1
		}
		if depth <= 0 {
			break
		}
	}

	closing := parsetools.IndexOfMatching(p.toks, p.pos+n)
	if closing < 0 {
		return -1
	}
	return closing - p.pos
}

var bracketNames = map[lexer.TokenType]string{
	lexer.LPAREN:   "parentheses",
	lexer.LBRACKET: "brackets",
	lexer.LBRACE:   "braces",
}

// skipBalanced consumes the bracket at the current token together with
// everything up to and including its closing bracket
func (p *parser) skipBalanced() []lexer.Token {
	open := p.cur()
	distance := p.matchAhead(0)
	if distance < 0 {
		p.errorf(open, "unbalanced %s", bracketNames[open.Type])
	}
	start := p.pos
	p.pos += distance + 1
	return p.toks[start:p.pos]
}

// skipAngles consumes a type parameter or type argument list starting at `<`
func (p *parser) skipAngles() []lexer.Token {
	open := p.cur()
	start := p.pos
	depth := 0
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.LT:
			depth++
		case lexer.GT:
			depth--
		case lexer.LPAREN, lexer.LBRACKET:
			p.skipBalanced()
			continue
		case lexer.EOF, lexer.LBRACE, lexer.RBRACE, lexer.SEMICOLON, lexer.ASSIGN:
			p.errorf(open, "unbalanced angle brackets")
		}
		p.next()
		if depth == 0 {
			return p.toks[start:p.pos]
		}
	}
}
