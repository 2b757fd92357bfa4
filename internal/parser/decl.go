package parser

import (
	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/source"
	"sealscan/internal/token"
)

type modifiers struct {
	modality    ast.Modality
	hasModality bool
	enum        bool
	companion   bool
	span        source.Span
	hasSpan     bool
}

// parseModifiers consumes annotations and modifier keywords in any order.
func (p *Parser) parseModifiers() modifiers {
	var mods modifiers
	for {
		p.skipAnnotations()
		tok := p.peek()
		if tok.Kind == token.Ident && token.IsSoftModifier(tok.Text) {
			p.advance()
			continue
		}
		if !tok.IsModifier() {
			return mods
		}
		p.advance()
		if !mods.hasSpan {
			mods.span, mods.hasSpan = tok.Span, true
		} else {
			mods.span = mods.span.Cover(tok.Span)
		}

		var m ast.Modality
		switch tok.Kind {
		case token.KwSealed:
			m = ast.ModalitySealed
		case token.KwOpen:
			m = ast.ModalityOpen
		case token.KwAbstract:
			m = ast.ModalityAbstract
		case token.KwFinal:
			m = ast.ModalityFinal
		case token.KwEnum:
			mods.enum = true
			continue
		case token.KwCompanion:
			mods.companion = true
			continue
		default:
			continue
		}
		if mods.hasModality && mods.modality != m {
			p.report(diag.SynConflictModality, tok.Span, "modifier '"+tok.Text+"' conflicts with '"+mods.modality.String()+"'")
			continue
		}
		mods.modality, mods.hasModality = m, true
	}
}

// parseDecl parses one declaration. parent is the enclosing class item or NoItemID.
func (p *Parser) parseDecl(parent ast.ItemID) (ast.ItemID, bool) {
	start := p.peek().Span
	mods := p.parseModifiers()
	if mods.hasSpan {
		start = start.Cover(mods.span)
	}

	switch p.peek().Kind {
	case token.KwClass:
		kind := ast.ClassKindClass
		if mods.enum {
			kind = ast.ClassKindEnum
		}
		return p.parseClass(mods, kind, start, parent)
	case token.KwInterface:
		return p.parseClass(mods, ast.ClassKindInterface, start, parent)
	case token.KwObject:
		return p.parseClass(mods, ast.ClassKindObject, start, parent)
	case token.KwTypealias:
		return p.parseAlias(start, parent)
	case token.KwFun:
		if p.lx.PeekN(1).Kind == token.KwInterface {
			p.advance()
			return p.parseClass(mods, ast.ClassKindInterface, start, parent)
		}
		return p.parseCallable(ast.ItemFun, start, parent)
	case token.KwVal, token.KwVar:
		return p.parseCallable(ast.ItemProperty, start, parent)
	}

	if parent.IsValid() {
		p.report(diag.SynUnexpectedToken, p.peek().Span, "unexpected token in class body")
	} else {
		p.report(diag.SynUnexpectedTopLevel, p.peek().Span, "unexpected top-level construct")
	}
	return ast.NoItemID, false
}

func (p *Parser) classIDFor(parent ast.ItemID, name string) ast.ClassID {
	if cls, ok := p.arenas.Items.Class(parent); ok {
		return cls.ID.Nested(name)
	}
	return ast.NewClassID(p.pkg, name)
}

func defaultModality(kind ast.ClassKind) ast.Modality {
	if kind == ast.ClassKindInterface {
		return ast.ModalityAbstract
	}
	return ast.ModalityFinal
}

func (p *Parser) parseClass(mods modifiers, kind ast.ClassKind, start source.Span, parent ast.ItemID) (ast.ItemID, bool) {
	kw := p.advance()

	var nameTok token.Token
	switch {
	case p.at(token.Ident):
		nameTok = p.advance()
	case kind == ast.ClassKindObject && mods.companion:
		nameTok = token.Token{Kind: token.Ident, Text: "Companion", Span: kw.Span}
	default:
		p.report(diag.SynExpectIdentifier, p.peek().Span, "expected "+kind.String()+" name")
		return ast.NoItemID, false
	}

	modality := defaultModality(kind)
	if mods.hasModality {
		modality = mods.modality
	}
	name := p.intern(nameTok)
	decl := ast.ClassItem{
		ID:       p.classIDFor(parent, p.arenas.Name(name)),
		Kind:     kind,
		Modality: modality,
		NameSpan: nameTok.Span,
	}
	if p.at(token.Lt) {
		decl.TypeParams = p.parseTypeParams()
	}
	p.skipPrimaryConstructor()
	if p.at(token.Colon) {
		p.advance()
		decl.Supertypes = p.parseSupertypes()
	}
	if p.atIdent("where") {
		p.skipUntil(token.LBrace)
	}

	itemID := p.arenas.Items.NewClass(name, p.file, parent, start, decl)
	if p.at(token.LBrace) {
		p.parseClassBody(itemID, kind)
	}
	p.arenas.Items.Get(itemID).Span = start.Cover(p.lastSpan)
	return itemID, true
}

// skipPrimaryConstructor drops `[annotations] [modifiers] constructor (params)`
// or a bare `(params)` after the class header. Annotations and modifiers are
// only consumed when `constructor` follows them, so a bodiless class never
// eats the prefix of the next declaration.
func (p *Parser) skipPrimaryConstructor() {
	if p.primaryConstructorAhead() {
		for !p.atIdent("constructor") {
			if p.at(token.LParen) {
				p.skipBalanced()
				continue
			}
			p.advance()
		}
		p.advance()
	}
	if p.at(token.LParen) {
		p.skipBalanced()
	}
}

// primaryConstructorAhead looks past annotations and modifier keywords for
// the `constructor` keyword without consuming anything.
func (p *Parser) primaryConstructorAhead() bool {
	depth := 0
	prev := token.Invalid
	for i := 0; ; i++ {
		tok := p.lx.PeekN(i)
		if depth > 0 {
			switch {
			case tok.Kind == token.EOF:
				return false
			case isOpen(tok.Kind):
				depth++
			case isClose(tok.Kind):
				depth--
				if depth == 0 {
					prev = token.RParen
				}
			}
			continue
		}
		switch {
		case tok.Kind == token.Ident && tok.Text == "constructor":
			return true
		case tok.Kind == token.At, tok.IsModifier():
		case tok.Kind == token.Ident && (prev == token.At || prev == token.Dot || prev == token.Colon):
		case (tok.Kind == token.Dot || tok.Kind == token.Colon) && prev == token.Ident:
		case tok.Kind == token.LParen && prev == token.Ident:
			depth++
			continue
		default:
			return false
		}
		prev = tok.Kind
	}
}

// parseSupertypes reads `A(), B<T>, C by delegate`.
func (p *Parser) parseSupertypes() []ast.TypeRefID {
	var supers []ast.TypeRefID
	for {
		ref, ok := p.parseTypeRef()
		if !ok {
			p.skipUntil(token.Comma, token.LBrace)
		} else {
			supers = append(supers, ref)
		}
		if p.at(token.LParen) {
			p.skipBalanced()
		}
		if p.atIdent("by") {
			p.advance()
			p.skipUntil(token.Comma, token.LBrace)
		}
		if !p.at(token.Comma) {
			return supers
		}
		p.advance()
	}
}

func (p *Parser) parseClassBody(owner ast.ItemID, kind ast.ClassKind) {
	open := p.advance()
	if kind == ast.ClassKindEnum {
		p.skipEnumEntries()
	}
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.report(diag.SynUnclosedBrace, open.Span, "unclosed class body")
			return
		}
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		if p.atIdent("init") || p.atIdent("constructor") {
			p.advance()
			p.skipStatement()
			continue
		}
		before := p.peek().Span
		member, ok := p.parseDecl(owner)
		if ok {
			p.arenas.PushMember(owner, member)
			continue
		}
		p.skipStatement()
		if p.peek().Span == before {
			p.advance()
		}
	}
	p.advance()
}

// skipEnumEntries consumes the entry list of an enum body up to ';' or '}'.
func (p *Parser) skipEnumEntries() {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == token.EOF || tok.Kind == token.RBrace:
			return
		case tok.Kind == token.Semicolon:
			p.advance()
			return
		case isOpen(tok.Kind):
			p.skipBalanced()
		default:
			p.advance()
		}
	}
}

func (p *Parser) parseAlias(start source.Span, parent ast.ItemID) (ast.ItemID, bool) {
	p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected typealias name")
	if !ok {
		return ast.NoItemID, false
	}
	name := p.intern(nameTok)
	decl := ast.AliasItem{
		ID:       p.classIDFor(parent, p.arenas.Name(name)),
		NameSpan: nameTok.Span,
	}
	if p.at(token.Lt) {
		decl.TypeParams = p.parseTypeParams()
	}
	if _, ok := p.expect(token.Assign, diag.SynExpectEquals, "expected '=' in typealias"); !ok {
		return ast.NoItemID, false
	}
	target, ok := p.parseTypeRef()
	if !ok {
		return ast.NoItemID, false
	}
	decl.Target = target
	p.eatSemicolon()
	return p.arenas.Items.NewAlias(name, p.file, parent, start.Cover(p.lastSpan), decl), true
}

// parseCallable records a function or property by name and skips its body.
func (p *Parser) parseCallable(kind ast.ItemKind, start source.Span, parent ast.ItemID) (ast.ItemID, bool) {
	p.advance()
	name := source.NoStringID
loop:
	for {
		switch tok := p.peek(); tok.Kind {
		case token.Ident:
			name = p.intern(tok)
			p.advance()
		case token.Dot, token.Question:
			p.advance()
		case token.Lt:
			p.skipAngles()
		case token.LParen:
			if kind == ast.ItemFun && name == source.NoStringID {
				// `fun (A).ext()` receiver in parentheses
				p.skipBalanced()
				continue
			}
			break loop
		default:
			break loop
		}
	}
	if name == source.NoStringID {
		p.report(diag.SynExpectIdentifier, p.peek().Span, "expected "+kind.String()+" name")
		return ast.NoItemID, false
	}
	p.skipStatement()
	return p.arenas.Items.New(kind, name, p.file, parent, start.Cover(p.lastSpan), ast.NoPayloadID), true
}
