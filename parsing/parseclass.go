package parsing

import (
	"github.com/NickyBoy89/ktdecl/keywords"
	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/symbol"
)

// companionName is the name the compiler gives to an unnamed companion object
const companionName = "Companion"

// parseClassLike parses a class, interface or object starting at its keyword
func (p *parser) parseClassLike(mods modifierList) *symbol.ClassLike {
	keyword := p.next()
	class := &symbol.ClassLike{}
	switch keyword.Type {
	case lexer.CLASS:
		class.Kind = symbol.KindClass
	case lexer.INTERFACE:
		class.Kind = symbol.KindInterface
	case lexer.OBJECT:
		class.Kind = symbol.KindObject
	}

	name := ""
	switch {
	case p.cur().Type == lexer.IDENT:
		name = p.next().Literal
	case class.Kind == symbol.KindObject && mods.has("companion"):
		name = companionName
	default:
		p.errorf(p.cur(), "expected name after %s, got %s", keyword.Literal, describe(p.cur()))
	}
	class.Decl = mods.decl(name)

	if p.cur().Type == lexer.LT {
		p.skipAngles()
	}
	p.skipPrimaryConstructor()

	if p.cur().Type == lexer.COLON {
		p.next()
		p.skipNewlines()
		p.skipSupertypes()
	}
	if p.cur().Type == lexer.IDENT && p.cur().Literal == keywords.Where {
		p.skipWhere()
	}

	if p.peekPastNewlines().Type == lexer.LBRACE {
		p.skipNewlines()
		class.Members = p.parseClassBody(mods.has("enum"))
	}
	return class
}

// skipPrimaryConstructor consumes the primary constructor of a class header,
// which may carry its own modifiers and the `constructor` keyword. Its
// parameters aren't members of the class
func (p *parser) skipPrimaryConstructor() {
	save := p.pos
	mods := p.parseModifiers()
	if p.cur().Type == lexer.IDENT && p.cur().Literal == keywords.Constructor {
		p.next()
	} else if !mods.empty() {
		p.pos = save
		return
	}
	if p.cur().Type == lexer.LPAREN {
		p.skipBalanced()
	}
}

// skipSupertypes consumes the supertype list of a class header, including
// constructor calls and delegation with `by`
func (p *parser) skipSupertypes() {
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
		case lexer.LBRACE:
			if angles == 0 {
				return
			}
		case lexer.NEWLINE:
			if angles == 0 && !lineContinuations[p.prev().Type] && p.peek(1).Type != lexer.COMMA {
				return
			}
		case lexer.RBRACE, lexer.SEMICOLON, lexer.EOF:
			return
		case lexer.IDENT:
			if angles == 0 && tok.Literal == keywords.Where {
				return
			}
		}
		p.next()
	}
}

// parseClassBody parses the members of a class body starting at its `{`
func (p *parser) parseClassBody(enum bool) []symbol.Declaration {
	open := p.next()
	if enum {
		p.skipEnumEntries()
	}

	var members []symbol.Declaration
	for {
		p.skipSeparators()
		tok := p.cur()
		switch tok.Type {
		case lexer.RBRACE:
			p.next()
			return members
		case lexer.EOF:
			p.errorf(open, "unbalanced braces")
		}

		decl, ok := p.parseDeclaration(classBody)
		if !ok {
			p.errorf(tok, "unexpected %s in class body", describe(tok))
		}
		if decl != nil {
			members = append(members, decl)
		}
	}
}

// skipEnumEntries consumes the entries at the start of an enum class body,
// up to the `;` that separates them from the members
func (p *parser) skipEnumEntries() {
	for {
		p.skipNewlines()
		tok := p.cur()
		if tok.Type == lexer.SEMICOLON {
			p.next()
			return
		}
		if tok.Type != lexer.IDENT && tok.Type != lexer.AT {
			return
		}
		if p.declarationAhead() {
			return
		}

		p.parseModifiers()
		if p.cur().Type != lexer.IDENT {
			return
		}
		p.next()
		if p.cur().Type == lexer.LPAREN {
			p.skipBalanced()
		}
		if p.cur().Type == lexer.LBRACE {
			p.skipBalanced()
		}

		p.skipNewlines()
		switch p.cur().Type {
		case lexer.COMMA:
			p.next()
		case lexer.SEMICOLON:
			p.next()
			return
		default:
			return
		}
	}
}

// parseSecondaryConstructor consumes a secondary constructor, which is not
// kept in the tree
func (p *parser) parseSecondaryConstructor() {
	keyword := p.next()
	if p.cur().Type != lexer.LPAREN {
		p.errorf(p.cur(), "expected ( after %s, got %s", keyword.Literal, describe(p.cur()))
	}
	p.skipBalanced()

	if p.cur().Type == lexer.COLON {
		p.next()
		p.skipNewlines()
		delegate := p.next()
		if delegate.Type != lexer.THIS && delegate.Type != lexer.SUPER {
			p.errorf(delegate, "expected this or super after :, got %s", describe(delegate))
		}
		if p.cur().Type != lexer.LPAREN {
			p.errorf(p.cur(), "expected ( after %s, got %s", delegate.Literal, describe(p.cur()))
		}
		p.skipBalanced()
	}

	if p.peekPastNewlines().Type == lexer.LBRACE {
		p.skipNewlines()
		p.skipBalanced()
	}
}
