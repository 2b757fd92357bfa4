package parser

import (
	"sealscan/internal/diag"
	"sealscan/internal/token"
)

// isDeclStarter reports whether tok can open a declaration.
func isDeclStarter(tok token.Token) bool {
	if tok.IsModifier() {
		return true
	}
	if tok.Kind == token.Ident {
		return token.IsSoftModifier(tok.Text) || tok.Text == "init" || tok.Text == "constructor"
	}
	switch tok.Kind {
	case token.KwClass, token.KwInterface, token.KwObject, token.KwTypealias,
		token.KwFun, token.KwVal, token.KwVar, token.At, token.KwImport, token.KwPackage:
		return true
	}
	return false
}

func isOpen(k token.Kind) bool {
	return k == token.LParen || k == token.LBracket || k == token.LBrace
}

func isClose(k token.Kind) bool {
	return k == token.RParen || k == token.RBracket || k == token.RBrace
}

// skipStatement consumes tokens up to the end of the current declaration or
// statement: a ';' (consumed), a '}' closing the enclosing block (left in
// place), or a declaration starter on a fresh line. It may consume nothing;
// callers guarantee progress.
func (p *Parser) skipStatement() {
	p.skipUntil()
}

// skipUntil is skipStatement that additionally stops before any of stops at depth 0.
func (p *Parser) skipUntil(stops ...token.Kind) {
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == token.EOF {
			return
		}
		if depth == 0 {
			if tok.NewlineBefore && isDeclStarter(tok) {
				return
			}
			if tok.Kind == token.Semicolon {
				p.advance()
				return
			}
			if tok.Kind == token.RBrace {
				return
			}
			for _, k := range stops {
				if tok.Kind == k {
					return
				}
			}
		}
		switch {
		case isOpen(tok.Kind):
			depth++
		case isClose(tok.Kind) && depth > 0:
			depth--
		}
		p.advance()
	}
}

// skipBalanced consumes a bracketed group starting at the current open token.
func (p *Parser) skipBalanced() {
	open := p.advance()
	depth := 1
	for depth > 0 {
		tok := p.peek()
		if tok.Kind == token.EOF {
			code := diag.SynUnclosedParen
			if open.Kind == token.LBrace {
				code = diag.SynUnclosedBrace
			}
			p.report(code, open.Span, "unclosed '"+open.Text+"'")
			return
		}
		switch {
		case isOpen(tok.Kind):
			depth++
		case isClose(tok.Kind):
			depth--
		}
		p.advance()
	}
}

// skipAngles consumes a `<...>` group, tolerating nested angles and brackets.
func (p *Parser) skipAngles() {
	p.advance()
	depth := 1
	for depth > 0 {
		tok := p.peek()
		switch tok.Kind {
		case token.EOF, token.LBrace, token.RBrace, token.Semicolon:
			return
		case token.Lt:
			depth++
		case token.Gt:
			depth--
		case token.LParen, token.LBracket:
			p.skipBalanced()
			continue
		}
		p.advance()
	}
}

// skipAnnotations drops `@Name`, `@a.b.Name(args)` and `@file:Name` prefixes.
func (p *Parser) skipAnnotations() {
	for p.at(token.At) {
		p.advance()
		if !p.at(token.Ident) {
			return
		}
		p.advance()
		if p.at(token.Colon) {
			p.advance()
			if p.at(token.LBracket) {
				p.skipBalanced()
				continue
			}
			if !p.at(token.Ident) {
				return
			}
			p.advance()
		}
		for p.at(token.Dot) {
			p.advance()
			if !p.at(token.Ident) {
				return
			}
			p.advance()
		}
		if p.at(token.Lt) {
			p.skipAngles()
		}
		if p.at(token.LParen) && !p.peek().NewlineBefore {
			p.skipBalanced()
		}
	}
}
