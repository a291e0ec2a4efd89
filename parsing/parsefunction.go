package parsing

import (
	"github.com/NickyBoy89/ktdecl/keywords"
	"github.com/NickyBoy89/ktdecl/lexer"
	"github.com/NickyBoy89/ktdecl/parsetools"
	"github.com/NickyBoy89/ktdecl/symbol"
)

// parseFunction parses a function starting at the `fun` keyword. An anonymous
// function is parsed in full and returned without a name
func (p *parser) parseFunction(mods modifierList) *symbol.Function {
	p.next()
	fn := &symbol.Function{}

	if p.cur().Type == lexer.LT {
		fn.TypeParameters = parsetools.JoinTokens(p.skipAngles())
	}

	receiver, name := p.parseFunctionHead()
	fn.Decl = mods.decl(name)
	fn.Receiver = receiver

	if p.cur().Type != lexer.LPAREN {
		p.errorf(p.cur(), "expected ( after function name %s, got %s", name, describe(p.cur()))
	}
	fn.Parameters = p.parseParameters()

	if p.cur().Type == lexer.COLON {
		p.next()
		fn.ReturnType = parsetools.JoinTokens(p.captureType(false))
	}
	if p.cur().Type == lexer.IDENT && p.cur().Literal == keywords.Where {
		p.skipWhere()
	}

	switch p.peekPastNewlines().Type {
	case lexer.LBRACE:
		p.skipNewlines()
		fn.HasBody = true
		fn.Body = p.parseBlock()
	case lexer.ASSIGN:
		p.skipNewlines()
		p.next()
		fn.HasBody = true
		p.skipStatement()
	}

	return fn
}

// parseFunctionHead reads the optional receiver type and the name of a
// function, up to the `(` of its parameter list
func (p *parser) parseFunctionHead() (receiver, name string) {
	start := p.pos
	for {
		tok := p.cur()
		switch tok.Type {
		case lexer.LPAREN:
			// A parenthesized receiver, as in `fun (A.() -> Unit).name()`
			if closing := p.matchAhead(0); closing > 0 {
				after := p.peek(closing + 1).Type
				if after == lexer.DOT || after == lexer.SAFE_CALL {
					p.skipBalanced()
					continue
				}
			}
		case lexer.LT:
			p.skipAngles()
			continue
		case lexer.IDENT, lexer.DOT, lexer.SAFE_CALL, lexer.QUESTION:
			p.next()
			continue
		}
		break
	}

	head := p.toks[start:p.pos]
	if len(head) == 0 {
		if p.cur().Type == lexer.LPAREN {
			return "", ""
		}
		p.errorf(p.cur(), "expected function name, got %s", describe(p.cur()))
	}

	last := head[len(head)-1]
	if last.Type != lexer.IDENT {
		p.errorf(last, "expected function name, got %s", describe(last))
	}
	if len(head) > 2 {
		receiver = parsetools.JoinTokens(head[:len(head)-2])
		// `?.` is lexed as a single token, the `?` belongs to the receiver
		if head[len(head)-2].Type == lexer.SAFE_CALL {
			receiver += "?"
		}
	}
	return receiver, last.Literal
}

// parseParameters parses a parenthesized list of value parameters
func (p *parser) parseParameters() []symbol.Parameter {
	toks := p.skipBalanced()
	var params []symbol.Parameter
	for _, group := range parsetools.SplitParameters(toks[1 : len(toks)-1]) {
		params = append(params, p.parseParameter(group))
	}
	return params
}

// parseParameter reads a single parameter from its tokens, in the form
// `[modifiers] name[: Type][ = default]`
func (p *parser) parseParameter(toks []lexer.Token) symbol.Parameter {
	var stripped []lexer.Token
	for _, tok := range toks {
		if tok.Type != lexer.NEWLINE {
			stripped = append(stripped, tok)
		}
	}
	toks = stripped

	var param symbol.Parameter
	i := 0
	for i < len(toks) {
		tok := toks[i]
		if tok.Type == lexer.AT {
			i = skipAnnotationTokens(toks, i)
			continue
		}
		// A modifier word directly before the `:` is the parameter's name
		if i+1 < len(toks) && isParameterModifier(tok) && toks[i+1].Type != lexer.COLON && toks[i+1].Type != lexer.ASSIGN {
			param.Modifiers = append(param.Modifiers, tok.Literal)
			i++
			continue
		}
		break
	}

	if i >= len(toks) || toks[i].Type != lexer.IDENT {
		at := toks[len(toks)-1]
		if i < len(toks) {
			at = toks[i]
		}
		p.errorf(at, "expected parameter name, got %s", describe(at))
	}
	param.Name = toks[i].Literal
	i++

	rest := toks[i:]
	assign := len(rest)
	depth, angles := 0, 0
	for ri, tok := range rest {
		switch tok.Type {
		case lexer.LPAREN, lexer.LBRACKET, lexer.LBRACE:
			depth++
		case lexer.RPAREN, lexer.RBRACKET, lexer.RBRACE:
			depth--
		case lexer.LT:
			angles++
		case lexer.GT:
			angles--
		}
		if tok.Type == lexer.ASSIGN && depth == 0 && angles <= 0 {
			assign = ri
			break
		}
	}

	if len(rest) > 0 && rest[0].Type == lexer.COLON {
		param.Type = parsetools.JoinTokens(rest[1:assign])
	}
	if assign < len(rest) {
		param.Default = parsetools.JoinTokens(rest[assign+1:])
	}
	return param
}

// isParameterModifier reports whether the token may appear among the
// modifiers of a parameter, including `val` and `var` for constructors
func isParameterModifier(tok lexer.Token) bool {
	switch tok.Type {
	case lexer.VAL, lexer.VAR, lexer.IDENT:
		return keywords.IsParameterModifier(tok.Literal)
	}
	return false
}

// skipAnnotationTokens returns the index just past the annotation at toks[i]
func skipAnnotationTokens(toks []lexer.Token, i int) int {
	i++
	if i < len(toks) && toks[i].Type == lexer.IDENT && i+1 < len(toks) && toks[i+1].Type == lexer.COLON {
		i += 2
	}
	if i < len(toks) && toks[i].Type == lexer.LBRACKET {
		return skipGroup(toks, i)
	}
	if i < len(toks) && toks[i].Type == lexer.IDENT {
		i++
	}
	for i+1 < len(toks) && toks[i].Type == lexer.DOT && toks[i+1].Type == lexer.IDENT {
		i += 2
	}
	if i < len(toks) && toks[i].Type == lexer.LPAREN {
		return skipGroup(toks, i)
	}
	return i
}

// skipGroup returns the index just past the bracket group opened at toks[i]
func skipGroup(toks []lexer.Token, i int) int {
	closing := parsetools.IndexOfMatching(toks, i)
	if closing < 0 {
		return len(toks)
	}
	return closing + 1
}
