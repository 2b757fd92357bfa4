package token

import (
	"sealscan/internal/source"
)

// Token represents a single significant source token.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	// NewlineBefore is set when at least one line break separates this token
	// from the previous one. Declarations may end at a newline.
	NewlineBefore bool
}

// IsModifier reports whether the token is a declaration modifier.
func (t Token) IsModifier() bool {
	switch t.Kind {
	case KwSealed, KwOpen, KwAbstract, KwFinal, KwEnum, KwData, KwInner, KwCompanion,
		KwPublic, KwPrivate, KwInternal, KwProtected:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a reserved word.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwPackage && t.Kind <= KwProtected
}

func (t Token) IsIdent() bool { return t.Kind == Ident }
