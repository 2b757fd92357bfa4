package parser

import (
	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/source"
	"sealscan/internal/token"
)

// parseTypeParams reads `<in T, out R : Bound, reified S>` and returns the names.
func (p *Parser) parseTypeParams() []source.StringID {
	p.advance()
	var names []source.StringID
	for !p.atOr(token.Gt, token.EOF, token.LBrace, token.Semicolon) {
		p.skipAnnotations()
		for p.atIdent("in") || p.atIdent("out") || p.atIdent("reified") {
			p.advance()
		}
		tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected type parameter name")
		if !ok {
			p.skipUntilAngleEnd()
			return names
		}
		names = append(names, p.intern(tok))
		if p.at(token.Colon) {
			p.advance()
			if _, ok := p.parseTypeRef(); !ok {
				p.skipUntilAngleEnd()
				return names
			}
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type parameters")
	return names
}

func (p *Parser) skipUntilAngleEnd() {
	for !p.atOr(token.Gt, token.EOF, token.LBrace, token.Semicolon) {
		p.advance()
	}
	if p.at(token.Gt) {
		p.advance()
	}
}

// parseTypeRef reads a type: `a.b.C<T, *>?`, `(A) -> B` or `suspend () -> Unit`.
func (p *Parser) parseTypeRef() (ast.TypeRefID, bool) {
	p.skipAnnotations()
	start := p.peek().Span
	if p.atIdent("suspend") {
		p.advance()
	}

	if p.at(token.LParen) {
		p.skipBalanced()
		ref := ast.TypeRef{Kind: ast.TypeRefFunction}
		if p.at(token.Arrow) {
			p.advance()
			ret, ok := p.parseTypeRef()
			if !ok {
				return ast.NoTypeRefID, false
			}
			ref.Args = []ast.TypeRefID{ret}
		}
		if p.at(token.Question) {
			p.advance()
			ref.Nullable = true
		}
		ref.Span = start.Cover(p.lastSpan)
		return p.arenas.TypeRefs.New(ref), true
	}

	first, ok := p.expect(token.Ident, diag.SynExpectType, "expected type")
	if !ok {
		return ast.NoTypeRefID, false
	}
	ref := ast.TypeRef{Segments: []source.StringID{p.intern(first)}}
	for {
		if p.at(token.Lt) {
			ref.Args = append(ref.Args, p.parseTypeArgs()...)
		}
		if !p.at(token.Dot) {
			break
		}
		p.advance()
		seg, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after '.'")
		if !ok {
			break
		}
		ref.Segments = append(ref.Segments, p.intern(seg))
	}
	if p.at(token.Question) {
		p.advance()
		ref.Nullable = true
	}
	ref.Span = start.Cover(p.lastSpan)
	return p.arenas.TypeRefs.New(ref), true
}

func (p *Parser) parseTypeArgs() []ast.TypeRefID {
	p.advance()
	var args []ast.TypeRefID
	for !p.atOr(token.Gt, token.EOF, token.LBrace, token.Semicolon) {
		switch {
		case p.at(token.Star):
			p.advance()
		default:
			if p.atIdent("in") || p.atIdent("out") {
				p.advance()
			}
			arg, ok := p.parseTypeRef()
			if !ok {
				p.skipUntilAngleEnd()
				return args
			}
			args = append(args, arg)
		}
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	p.expect(token.Gt, diag.SynUnexpectedToken, "expected '>' to close type arguments")
	return args
}
