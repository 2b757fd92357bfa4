package lexer

import (
	"sealscan/internal/source"
	"sealscan/internal/token"
)

type Lexer struct {
	file    *source.File
	cursor  Cursor
	opts    Options
	ahead   []token.Token
	newline bool // a line break was skipped since the last token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next returns the next significant token. After EOF it keeps returning EOF.
func (lx *Lexer) Next() token.Token {
	if len(lx.ahead) > 0 {
		tok := lx.ahead[0]
		lx.ahead = lx.ahead[1:]
		return tok
	}
	return lx.scan()
}

func (lx *Lexer) scan() token.Token {
	lx.skipTrivia()
	nl := lx.newline
	lx.newline = false

	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.EmptySpan(), NewlineBefore: nl}
	}

	ch := lx.cursor.Peek()
	var tok token.Token
	switch {
	case isIdentStartByte(ch) || ch >= utf8RuneSelf:
		tok = lx.scanIdentOrKeyword()
	case ch == '`':
		tok = lx.scanQuotedIdent()
	case isDec(ch):
		tok = lx.scanNumber()
	case ch == '"' || ch == '\'':
		tok = lx.scanString(ch)
	default:
		tok = lx.scanOperatorOrPunct()
	}
	tok.NewlineBefore = nl
	return tok
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	return lx.PeekN(0)
}

// PeekN returns the token n positions past the next one without consuming
// anything. Diagnostics for buffered tokens are reported once, when scanned.
func (lx *Lexer) PeekN(n int) token.Token {
	for len(lx.ahead) <= n {
		lx.ahead = append(lx.ahead, lx.scan())
	}
	return lx.ahead[n]
}

func (lx *Lexer) EmptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) File() *source.File {
	return lx.file
}
