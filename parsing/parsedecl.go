package parsing

import (
	"github.com/NickyBoy89/ktdecl/keywords"
	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/symbol"
)

// parseDeclaration parses the declaration at the current token. It returns
// false when there is no declaration to parse, and a nil declaration for
// declarations that are parsed but not kept, like typealiases or init blocks
func (p *parser) parseDeclaration(ctx context) (symbol.Declaration, bool) {
	mods := p.parseModifiers()
	tok := p.cur()

	switch tok.Type {
	case lexer.FUN:
		if p.peek(1).Type == lexer.INTERFACE {
			p.next()
			return p.parseClassLike(mods), true
		}
		fn := p.parseFunction(mods)
		if fn.IsAnonymous() {
			return nil, true
		}
		return fn, true
	case lexer.VAL, lexer.VAR:
		return p.parseProperty(mods, ctx), true
	case lexer.CLASS, lexer.INTERFACE, lexer.OBJECT:
		return p.parseClassLike(mods), true
	case lexer.TYPEALIAS:
		p.parseTypealias()
		return nil, true
	case lexer.IDENT:
		if ctx != classBody {
			break
		}
		switch tok.Literal {
		case keywords.Constructor:
			p.parseSecondaryConstructor()
			return nil, true
		case keywords.Init:
			if mods.empty() && p.peekPastNewlinesFrom(1).Type == lexer.LBRACE {
				p.next()
				p.skipNewlines()
				p.skipBalanced()
				return nil, true
			}
		}
	}

	if !mods.empty() && ctx != functionBody {
		p.errorf(tok, "expected a declaration after modifiers, got %s", describe(tok))
	}
	return nil, false
}

// declarationAhead reports whether a declaration starts at the current token,
// without consuming anything. Anonymous functions and object expressions are
// expressions, not declarations
func (p *parser) declarationAhead() bool {
	save := p.pos
	defer func() { p.pos = save }()

	p.parseModifiers()
	switch p.cur().Type {
	case lexer.VAL, lexer.VAR, lexer.CLASS, lexer.INTERFACE, lexer.TYPEALIAS:
		return true
	case lexer.OBJECT:
		return p.peek(1).Type == lexer.IDENT
	case lexer.FUN:
		if p.peek(1).Type != lexer.LPAREN {
			return true
		}
		closing := p.matchAhead(1)
		if closing < 0 {
			return false
		}
		after := p.peek(closing + 1)
		return after.Type == lexer.DOT || after.Type == lexer.SAFE_CALL
	}
	return false
}

// parseBlock parses the statements of a function body, starting at its `{`.
// Declarations made directly inside the block are returned in source order,
// everything else is skipped
func (p *parser) parseBlock() []symbol.Declaration {
	open := p.next()
	var decls []symbol.Declaration
	for {
		p.skipSeparators()
		tok := p.cur()
		switch tok.Type {
		case lexer.RBRACE:
			p.next()
			return decls
		case lexer.EOF:
			p.errorf(open, "unbalanced braces")
		}

		if p.declarationAhead() {
			if decl, _ := p.parseDeclaration(functionBody); decl != nil {
				decls = append(decls, decl)
			}
			continue
		}
		p.skipStatement()
	}
}

// lineContinuations are the tokens that can't end an expression, so a newline
// after them doesn't end the statement
var lineContinuations = map[lexer.TokenType]bool{
	lexer.ASSIGN: true, lexer.PLUS_EQ: true, lexer.MINUS_EQ: true, lexer.ASTERISK_EQ: true,
	lexer.SLASH_EQ: true, lexer.PERCENT_EQ: true,
	lexer.EQ: true, lexer.NOT_EQ: true, lexer.STRICT_EQ: true, lexer.STRICT_NEQ: true,
	lexer.LE: true, lexer.GE: true,
	lexer.PLUS: true, lexer.MINUS: true, lexer.ASTERISK: true, lexer.SLASH: true, lexer.PERCENT: true,
	lexer.AND: true, lexer.OR: true, lexer.ARROW: true, lexer.DOT: true, lexer.SAFE_CALL: true,
	lexer.ELVIS: true, lexer.COMMA: true, lexer.COLON: true, lexer.COLON2: true,
	lexer.RANGE: true, lexer.RANGE_UNTIL: true, lexer.AT: true,
	lexer.AS: true, lexer.IS: true, lexer.IN: true,
}

// continuesAfterNewline reports whether the statement carries on past the
// newline at the current token
func (p *parser) continuesAfterNewline() bool {
	if lineContinuations[p.prev().Type] {
		return true
	}
	next := p.peek(1)
	switch next.Type {
	case lexer.DOT, lexer.SAFE_CALL, lexer.ELVIS, lexer.AND, lexer.OR, lexer.AS, lexer.ELSE, lexer.COLON2:
		return true
	case lexer.IDENT:
		return next.Literal == "catch" || next.Literal == "finally"
	}
	return false
}

// skipStatement consumes a single statement or expression as a balanced run
// of tokens, and returns its tokens without the terminator. A `}` belongs to
// the enclosing block and is left alone
func (p *parser) skipStatement() []lexer.Token {
	start := p.pos
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.EOF, lexer.RBRACE:
			return p.toks[start:p.pos]
		case lexer.RPAREN, lexer.RBRACKET:
			p.errorf(tok, "unexpected %s", describe(tok))
		case lexer.SEMICOLON:
			end := p.pos
			p.next()
			return p.toks[start:end]
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			p.skipBalanced()
			continue
		case lexer.NEWLINE:
			if !p.continuesAfterNewline() {
				end := p.pos
				p.next()
				return p.toks[start:end]
			}
		}
		p.next()
	}
}

// captureType consumes a type reference and returns its tokens. When
// accessors is set, a `get` or `set` after the type ends it
func (p *parser) captureType(accessors bool) []lexer.Token {
	start := p.pos
	angles := 0
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACKET:
			p.skipBalanced()
			continue
		case lexer.LT:
			angles++
		case lexer.GT:
			if angles > 0 {
				angles--
			}
		case lexer.NEWLINE:
			if angles == 0 && !lineContinuations[p.prev().Type] && p.peek(1).Type != lexer.ARROW {
				return p.toks[start:p.pos]
			}
		case lexer.COMMA:
			if angles == 0 {
				return p.toks[start:p.pos]
			}
		case lexer.EOF, lexer.SEMICOLON, lexer.LBRACE, lexer.RBRACE, lexer.ASSIGN, lexer.RPAREN, lexer.RBRACKET:
			return p.toks[start:p.pos]
		case lexer.IDENT:
			if angles > 0 || p.prev().Type == lexer.DOT {
				break
			}
			switch tok.Literal {
			case keywords.By, keywords.Where:
				return p.toks[start:p.pos]
			case keywords.Getter, keywords.Setter:
				if accessors && p.pos > start {
					return p.toks[start:p.pos]
				}
			}
		}
		p.next()
	}
}

// skipWhere consumes a `where` clause of type parameter constraints
func (p *parser) skipWhere() {
	p.next()
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACKET:
			p.skipBalanced()
			continue
		case lexer.NEWLINE:
			if !lineContinuations[p.prev().Type] && p.peek(1).Type != lexer.COMMA {
				return
			}
		case lexer.EOF, lexer.SEMICOLON, lexer.LBRACE, lexer.RBRACE, lexer.ASSIGN:
			return
		}
		p.next()
	}
}
