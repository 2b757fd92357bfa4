package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003

	// syntax
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnexpectedTopLevel Code = 2002
	SynExpectIdentifier   Code = 2003
	SynUnclosedBrace      Code = 2004
	SynUnclosedParen      Code = 2005
	SynExpectType         Code = 2006
	SynExpectEquals       Code = 2007
	SynPackagePosition    Code = 2008
	SynConflictModality   Code = 2009

	// semantic
	SemaInfo            Code = 3000
	SemaDuplicateSymbol Code = 3001
	SemaUnresolvedType  Code = 3002
	SemaAmbiguousImport Code = 3003

	// io
	IOLoadFileError Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:                 "Unknown error",
	LexInfo:                     "Lexical information",
	LexUnknownChar:              "Unknown character",
	LexUnterminatedString:       "Unterminated string literal",
	LexUnterminatedBlockComment: "Unterminated block comment",
	SynInfo:                     "Syntax information",
	SynUnexpectedToken:          "Unexpected token",
	SynUnexpectedTopLevel:       "Unexpected top-level construct",
	SynExpectIdentifier:         "Expected identifier",
	SynUnclosedBrace:            "Unclosed brace",
	SynUnclosedParen:            "Unclosed parenthesis",
	SynExpectType:               "Expected type",
	SynExpectEquals:             "Expected '='",
	SynPackagePosition:          "Package directive must come first",
	SynConflictModality:         "Conflicting modality modifiers",
	SemaInfo:                    "Semantic information",
	SemaDuplicateSymbol:         "Duplicate declaration",
	SemaUnresolvedType:          "Unresolved type reference",
	SemaAmbiguousImport:         "Conflicting import alias",
	IOLoadFileError:             "I/O load file error",
}

// ID returns the stable short form, e.g. SYN2001.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

// String is the short ID; the title is a category, not part of a message.
func (c Code) String() string {
	return c.ID()
}
