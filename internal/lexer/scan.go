package lexer

import (
	"unicode"
	"unicode/utf8"

	"sealscan/internal/diag"
	"sealscan/internal/token"
)

const utf8RuneSelf = 0x80

func isIdentStartByte(b byte) bool {
	return b == '_' || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool {
	return '0' <= b && b <= '9'
}

func isIdentStartRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinueRune(r rune) bool {
	return isIdentStartRune(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

func (lx *Lexer) peekRune() (rune, int) {
	if lx.cursor.EOF() {
		return 0, 0
	}
	return utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
}

func (lx *Lexer) bumpRune() {
	_, sz := lx.peekRune()
	for range sz {
		lx.cursor.Bump()
	}
}

// scanIdentOrKeyword reads an ASCII or Unicode identifier and classifies keywords.
func (lx *Lexer) scanIdentOrKeyword() token.Token {
	start := lx.cursor.Mark()
	r, sz := lx.peekRune()
	if sz == 0 || !isIdentStartRune(r) {
		return lx.scanOperatorOrPunct()
	}
	lx.bumpRune()
	for {
		b := lx.cursor.Peek()
		if b < utf8RuneSelf {
			if !isIdentContinueByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r2, sz2 := lx.peekRune()
		if sz2 == 0 || !isIdentContinueRune(r2) {
			break
		}
		lx.bumpRune()
	}

	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if k, ok := token.LookupKeyword(text); ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	return token.Token{Kind: token.Ident, Span: sp, Text: text}
}

// scanQuotedIdent reads a backtick-escaped identifier; keywords inside backticks are plain names.
func (lx *Lexer) scanQuotedIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() && lx.cursor.Peek() != '`' && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
	if !lx.cursor.Eat('`') {
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnterminatedString, sp, "unterminated quoted identifier")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: string(lx.file.Content[sp.Start+1 : sp.End-1])}
}

func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if !isIdentContinueByte(b) && b != '.' {
			break
		}
		if b == '.' {
			if _, next, ok := lx.cursor.Peek2(); !ok || !isDec(next) {
				break
			}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.NumberLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

// scanString reads a quoted literal, honouring backslash escapes. Raw
// triple-quoted strings may span lines.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	if quote == '"' && lx.atTripleQuote() {
		for range 3 {
			lx.cursor.Bump()
		}
		for !lx.cursor.EOF() {
			if lx.atTripleQuote() {
				for range 3 {
					lx.cursor.Bump()
				}
				return lx.stringToken(start)
			}
			lx.cursor.Bump()
		}
		lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated raw string")
		return lx.stringToken(start)
	}

	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '\n' {
			break
		}
		lx.cursor.Bump()
		if b == '\\' {
			lx.cursor.Bump()
			continue
		}
		if b == quote {
			return lx.stringToken(start)
		}
	}
	lx.errLex(diag.LexUnterminatedString, lx.cursor.SpanFrom(start), "unterminated string literal")
	return lx.stringToken(start)
}

func (lx *Lexer) atTripleQuote() bool {
	off := lx.cursor.Off
	return off+2 < lx.cursor.Limit &&
		lx.file.Content[off] == '"' && lx.file.Content[off+1] == '"' && lx.file.Content[off+2] == '"'
}

func (lx *Lexer) stringToken(start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.StringLit, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
}

var punct = map[byte]token.Kind{
	':': token.Colon,
	',': token.Comma,
	'.': token.Dot,
	';': token.Semicolon,
	'=': token.Assign,
	'?': token.Question,
	'*': token.Star,
	'@': token.At,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'<': token.Lt,
	'>': token.Gt,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '-' && b1 == '>' {
		lx.cursor.Bump()
		lx.cursor.Bump()
		return token.Token{Kind: token.Arrow, Span: lx.cursor.SpanFrom(start), Text: "->"}
	}

	b := lx.cursor.Peek()
	if b >= utf8RuneSelf {
		lx.bumpRune()
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, "unknown character")
		return token.Token{Kind: token.Invalid, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}
	lx.cursor.Bump()
	sp := lx.cursor.SpanFrom(start)
	text := string(lx.file.Content[sp.Start:sp.End])
	if k, ok := punct[b]; ok {
		return token.Token{Kind: k, Span: sp, Text: text}
	}
	if isOperatorByte(b) {
		return token.Token{Kind: token.Other, Span: sp, Text: text}
	}
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return token.Token{Kind: token.Invalid, Span: sp, Text: text}
}

func isOperatorByte(b byte) bool {
	switch b {
	case '+', '-', '/', '%', '!', '&', '|', '^', '~', '#', '$', '\\':
		return true
	}
	return false
}
