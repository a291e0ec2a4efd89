package parsing

import (
	"github.com/NickyBoy89/ktdecl/keywords"
	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/parsetools"
	"github.com/NickyBoy89/ktdecl/symbol"
)

// parseProperty parses a property starting at its `val` or `var` keyword,
// along with any accessors that follow it
func (p *parser) parseProperty(mods modifierList, ctx context) *symbol.Property {
	prop := &symbol.Property{Mutable: p.next().Type == lexer.VAR}

	if p.cur().Type == lexer.LT {
		prop.TypeParameters = parsetools.JoinTokens(p.skipAngles())
	}

	if p.cur().Type == lexer.LPAREN {
		// Destructuring declarations don't introduce a single name
		p.skipBalanced()
		prop.Decl = mods.decl("")
	} else {
		receiver, name := p.parsePropertyHead()
		prop.Decl = mods.decl(name)
		prop.Receiver = receiver
	}

	if p.cur().Type == lexer.COLON {
		p.next()
		prop.Type = parsetools.JoinTokens(p.captureType(ctx != functionBody))
	}
	if p.cur().Type == lexer.IDENT && p.cur().Literal == keywords.Where {
		p.skipWhere()
	}

	switch {
	case p.cur().Type == lexer.ASSIGN:
		p.next()
		prop.Initializer = parsetools.JoinTokens(p.captureExpression())
	case p.cur().Type == lexer.IDENT && p.cur().Literal == keywords.By:
		p.next()
		prop.Delegate = parsetools.JoinTokens(p.captureExpression())
	}

	// Local variables can't have accessors
	if ctx != functionBody {
		if p.parseAccessor() {
			p.parseAccessor()
		}
	}

	return prop
}

// captureExpression consumes an initializer or delegate expression and
// returns its tokens. A terminating newline is left alone, so an accessor on
// the following line can still be found
func (p *parser) captureExpression() []lexer.Token {
	start := p.pos
	toks := p.skipStatement()
	if p.pos > start && p.prev().Type == lexer.NEWLINE {
		p.pos--
	}
	return toks
}

// parsePropertyHead reads the optional receiver type and the name of a
// property. Names and type segments alternate with dots, so two identifiers
// in a row end the head, as in `val x by lazy`
func (p *parser) parsePropertyHead() (receiver, name string) {
	start := p.pos
	for {
		tok := p.cur()
		var last lexer.TokenType
		if p.pos > start {
			last = p.prev().Type
		}
		afterDot := last == lexer.DOT || last == lexer.SAFE_CALL

		switch {
		case tok.Type == lexer.LPAREN && p.pos == start:
			p.skipBalanced()
			continue
		case tok.Type == lexer.IDENT && (p.pos == start || afterDot):
			p.next()
			continue
		case tok.Type == lexer.LT && last == lexer.IDENT:
			p.skipAngles()
			continue
		case tok.Type == lexer.QUESTION && (last == lexer.IDENT || last == lexer.GT || last == lexer.RPAREN):
			p.next()
			continue
		case (tok.Type == lexer.DOT || tok.Type == lexer.SAFE_CALL) && p.pos > start && !afterDot:
			p.next()
			continue
		}
		break
	}

	head := p.toks[start:p.pos]
	if len(head) == 0 || head[len(head)-1].Type != lexer.IDENT {
		p.errorf(p.cur(), "expected property name, got %s", describe(p.cur()))
	}

	last := head[len(head)-1]
	if len(head) > 2 {
		receiver = parsetools.JoinTokens(head[:len(head)-2])
		// `?.` is lexed as a single token, the `?` belongs to the receiver
		if head[len(head)-2].Type == lexer.SAFE_CALL {
			receiver += "?"
		}
	}
	return receiver, last.Literal
}

// parseAccessor consumes a getter or setter if one follows, possibly on the
// next line
func (p *parser) parseAccessor() bool {
	save := p.pos
	p.skipNewlines()
	p.parseModifiers()

	tok := p.cur()
	if tok.Type != lexer.IDENT || (tok.Literal != keywords.Getter && tok.Literal != keywords.Setter) {
		p.pos = save
		return false
	}
	switch p.peek(1).Type {
	case lexer.LPAREN, lexer.ASSIGN, lexer.LBRACE, lexer.COLON, lexer.NEWLINE, lexer.SEMICOLON, lexer.RBRACE, lexer.EOF:
	default:
		p.pos = save
		return false
	}
	p.next()

	if p.cur().Type == lexer.LPAREN {
		p.skipBalanced()
	}
	if p.cur().Type == lexer.COLON {
		p.next()
		p.captureType(false)
	}
	switch p.peekPastNewlines().Type {
	case lexer.LBRACE:
		p.skipNewlines()
		p.skipBalanced()
	case lexer.ASSIGN:
		p.skipNewlines()
		p.next()
		p.captureExpression()
	}
	return true
}

// parseTypealias consumes a typealias, which is not kept in the tree
func (p *parser) parseTypealias() {
	keyword := p.next()
	if p.cur().Type != lexer.IDENT {
		p.errorf(p.cur(), "expected name after %s, got %s", keyword.Literal, describe(p.cur()))
	}
	p.next()
	if p.cur().Type == lexer.LT {
		p.skipAngles()
	}
	if p.cur().Type != lexer.ASSIGN {
		p.errorf(p.cur(), "expected = in typealias, got %s", describe(p.cur()))
	}
	p.next()
	p.skipStatement()
}
