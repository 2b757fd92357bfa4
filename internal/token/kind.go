package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	StringLit
	NumberLit

	KwPackage   // package
	KwImport    // import
	KwAs        // as
	KwClass     // class
	KwInterface // interface
	KwObject    // object
	KwTypealias // typealias
	KwFun       // fun
	KwVal       // val
	KwVar       // var

	// modifiers
	KwSealed    // sealed
	KwOpen      // open
	KwAbstract  // abstract
	KwFinal     // final
	KwEnum      // enum
	KwData      // data
	KwInner     // inner
	KwCompanion // companion
	KwPublic    // public
	KwPrivate   // private
	KwInternal  // internal
	KwProtected // protected

	Colon     // :
	Comma     // ,
	Dot       // .
	Semicolon // ;
	Assign    // =
	Question  // ?
	Star      // *
	At        // @
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	LBracket  // [
	RBracket  // ]
	Lt        // <
	Gt        // >
	Arrow     // ->
	Other     // any other operator byte
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	EOF:         "EOF",
	Ident:       "Ident",
	StringLit:   "StringLit",
	NumberLit:   "NumberLit",
	KwPackage:   "package",
	KwImport:    "import",
	KwAs:        "as",
	KwClass:     "class",
	KwInterface: "interface",
	KwObject:    "object",
	KwTypealias: "typealias",
	KwFun:       "fun",
	KwVal:       "val",
	KwVar:       "var",
	KwSealed:    "sealed",
	KwOpen:      "open",
	KwAbstract:  "abstract",
	KwFinal:     "final",
	KwEnum:      "enum",
	KwData:      "data",
	KwInner:     "inner",
	KwCompanion: "companion",
	KwPublic:    "public",
	KwPrivate:   "private",
	KwInternal:  "internal",
	KwProtected: "protected",
	Colon:       ":",
	Comma:       ",",
	Dot:         ".",
	Semicolon:   ";",
	Assign:      "=",
	Question:    "?",
	Star:        "*",
	At:          "@",
	LParen:      "(",
	RParen:      ")",
	LBrace:      "{",
	RBrace:      "}",
	LBracket:    "[",
	RBracket:    "]",
	Lt:          "<",
	Gt:          ">",
	Arrow:       "->",
	Other:       "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
