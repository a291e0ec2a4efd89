package parsing

import (
	"golang.org/x/exp/slices"

	"github.com/NickyBoy89/ktdecl/keywords"
	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/parsetools"
	"github.com/NickyBoy89/ktdecl/symbol"
)

// modifierList is everything that was written in front of a declaration's
// keyword
type modifierList struct {
	words       []string
	annotations []string
	visibility  symbol.Visibility
	explicit    bool
	// offset of the first token of the declaration
	offset int
}

func (m modifierList) has(word string) bool {
	return slices.Contains(m.words, word)
}

func (m modifierList) empty() bool {
	return len(m.words) == 0 && len(m.annotations) == 0
}

// decl builds the common header of a declaration with the given name
func (m modifierList) decl(name string) symbol.Decl {
	return symbol.Decl{
		Name:        name,
		Visibility:  m.visibility,
		Explicit:    m.explicit,
		Modifiers:   m.words,
		Annotations: m.annotations,
		Offset:      m.offset,
	}
}

// parseModifiers consumes any annotations and modifier words in front of a
// declaration. The last visibility modifier wins
func (p *parser) parseModifiers() modifierList {
	mods := modifierList{offset: p.cur().Offset}
	for {
		switch {
		case p.cur().Type == lexer.AT:
			mods.annotations = append(mods.annotations, p.parseAnnotation())
		case p.modifierAt(0):
			word := p.next().Literal
			if vis, ok := symbol.ParseVisibility(word); ok {
				mods.visibility = vis
				mods.explicit = true
			}
			mods.words = append(mods.words, word)
		default:
			return mods
		}
		// Annotations and modifiers are commonly written on their own line
		if !mods.empty() && p.peekPastNewlines().Type != lexer.EOF {
			save := p.pos
			p.skipNewlines()
			if tok := p.cur(); tok.Type != lexer.AT && !p.modifierAt(0) && !declarationKeyword(tok) {
				p.pos = save
				return mods
			}
		}
	}
}

// modifierAt reports whether the token n places ahead is a modifier word.
// Modifier words are soft keywords, so they only count as a modifier when
// they are followed by another modifier, an annotation or a declaration keyword
func (p *parser) modifierAt(n int) bool {
	tok := p.peek(n)
	if tok.Type != lexer.IDENT || !keywords.IsModifier(tok.Literal) {
		return false
	}

	n++
	for p.peek(n).Type == lexer.NEWLINE {
		n++
	}
	following := p.peek(n)
	if following.Type == lexer.AT || declarationKeyword(following) {
		return true
	}
	return p.modifierAt(n)
}

// declarationKeyword reports whether a declaration may start with the token,
// once its modifiers are out of the way
func declarationKeyword(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.FUN, lexer.VAL, lexer.VAR, lexer.CLASS, lexer.INTERFACE, lexer.OBJECT, lexer.TYPEALIAS:
		return true
	case lexer.IDENT:
		switch tok.Literal {
		case keywords.Constructor, keywords.Getter, keywords.Setter:
			return true
		}
	}
	return false
}

// parseAnnotation consumes a single annotation starting at `@`, and returns
// its text without the `@`. This covers use-site targets like `@get:Foo`,
// qualified names, arguments, and the `@[A B]` form
func (p *parser) parseAnnotation() string {
	p.next()
	start := p.pos

	if p.cur().Type == lexer.LBRACKET {
		p.skipBalanced()
		return parsetools.JoinTokens(p.toks[start:p.pos])
	}

	if p.cur().Type == lexer.IDENT && p.peek(1).Type == lexer.COLON {
		p.next()
		p.next()
		if p.cur().Type == lexer.LBRACKET {
			p.skipBalanced()
			return parsetools.JoinTokens(p.toks[start:p.pos])
		}
	}

	if p.cur().Type != lexer.IDENT {
		p.errorf(p.cur(), "expected annotation name, got %s", describe(p.cur()))
	}
	p.next()
	for p.cur().Type == lexer.DOT && p.peek(1).Type == lexer.IDENT {
		p.next()
		p.next()
	}
	if p.cur().Type == lexer.LT {
		p.skipAngles()
	}
	if p.cur().Type == lexer.LPAREN {
		p.skipBalanced()
	}
	return parsetools.JoinTokens(p.toks[start:p.pos])
}
