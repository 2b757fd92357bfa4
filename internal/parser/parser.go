package parser

import (
	"slices"

	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/lexer"
	"sealscan/internal/source"
	"sealscan/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough reports whether the error budget is used up.
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	File ast.FileID
}

// Parser holds the state for one file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	pkg      string
	opts     Options
	lastSpan source.Span
}

// ParseFile parses a whole compilation unit into arenas.
func ParseFile(lx *lexer.Lexer, arenas *ast.Builder, opts Options) Result {
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := Parser{
		lx:       lx,
		arenas:   arenas,
		file:     arenas.NewFile(lx.File().ID, lx.EmptySpan()),
		opts:     opts,
		lastSpan: lx.EmptySpan(),
	}
	p.parseFile()
	return Result{File: p.file}
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) atIdent(text string) bool {
	tok := p.lx.Peek()
	return tok.Kind == token.Ident && tok.Text == text
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// expect consumes a token of kind k or reports code at the current token.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.report(code, p.peek().Span, msg)
	return token.Token{}, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	if p.opts.Enough() {
		return
	}
	p.opts.CurrentErrors++
	diag.ReportError(p.opts.Reporter, code, sp, msg).Emit()
}

func (p *Parser) intern(tok token.Token) source.StringID {
	return p.arenas.Strings.InternIdent(tok.Text)
}

func (p *Parser) parseFile() {
	start := p.peek().Span
	p.parseHeader()
	for !p.at(token.EOF) {
		if p.at(token.Semicolon) {
			p.advance()
			continue
		}
		before := p.peek().Span
		itemID, ok := p.parseDecl(ast.NoItemID)
		if ok {
			p.arenas.PushItem(p.file, itemID)
			continue
		}
		p.skipStatement()
		if p.peek().Span == before {
			p.advance()
		}
	}
	f := p.arenas.Files.Get(p.file)
	f.Span = start.Cover(p.lastSpan)
}

// parseHeader reads the optional package directive and the import list.
func (p *Parser) parseHeader() {
	f := p.arenas.Files.Get(p.file)
	p.skipAnnotations()
	if p.at(token.KwPackage) {
		p.advance()
		f.Package = p.parseDottedPath()
		p.pkg = p.arenas.JoinPath(f.Package)
		p.eatSemicolon()
	}
	for p.at(token.KwImport) {
		start := p.advance().Span
		var imp ast.Import
		imp.Path, imp.Star = p.parseImportPath()
		if p.at(token.KwAs) {
			p.advance()
			if tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected alias name after 'as'"); ok {
				imp.Alias = p.intern(tok)
			}
		}
		imp.Span = start.Cover(p.lastSpan)
		f.Imports = append(f.Imports, imp)
		p.eatSemicolon()
	}
	if p.at(token.KwPackage) {
		p.report(diag.SynPackagePosition, p.advance().Span, "package directive must precede imports and declarations")
		p.skipStatement()
	}
}

// parseImportPath reads `a.b.C` or `a.b.*`.
func (p *Parser) parseImportPath() (segs []source.StringID, star bool) {
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected import path")
	if !ok {
		return nil, false
	}
	segs = append(segs, p.intern(tok))
	for p.at(token.Dot) {
		p.advance()
		if p.at(token.Star) {
			p.advance()
			return segs, true
		}
		next, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after '.'")
		if !ok {
			break
		}
		segs = append(segs, p.intern(next))
	}
	return segs, false
}

func (p *Parser) parseDottedPath() []source.StringID {
	var segs []source.StringID
	tok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier")
	if !ok {
		return nil
	}
	segs = append(segs, p.intern(tok))
	for p.at(token.Dot) {
		p.advance()
		next, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected identifier after '.'")
		if !ok {
			break
		}
		segs = append(segs, p.intern(next))
	}
	return segs
}

func (p *Parser) eatSemicolon() {
	if p.at(token.Semicolon) {
		p.advance()
	}
}
