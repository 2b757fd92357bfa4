package token

var keywords = map[string]Kind{
	"package":   KwPackage,
	"import":    KwImport,
	"as":        KwAs,
	"class":     KwClass,
	"interface": KwInterface,
	"object":    KwObject,
	"typealias": KwTypealias,
	"fun":       KwFun,
	"val":       KwVal,
	"var":       KwVar,
	"sealed":    KwSealed,
	"open":      KwOpen,
	"abstract":  KwAbstract,
	"final":     KwFinal,
	"enum":      KwEnum,
	"data":      KwData,
	"inner":     KwInner,
	"companion": KwCompanion,
	"public":    KwPublic,
	"private":   KwPrivate,
	"internal":  KwInternal,
	"protected": KwProtected,
}

// LookupKeyword reports whether ident is a keyword. Keywords are case-sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// softModifiers are modifier words that stay ordinary identifiers outside
// declaration headers (`val value = 1` is legal).
var softModifiers = map[string]struct{}{
	"override":    {},
	"inline":      {},
	"suspend":     {},
	"lateinit":    {},
	"const":       {},
	"operator":    {},
	"infix":       {},
	"tailrec":     {},
	"external":    {},
	"value":       {},
	"annotation":  {},
	"expect":      {},
	"actual":      {},
	"crossinline": {},
	"noinline":    {},
	"vararg":      {},
}

// IsSoftModifier reports whether an identifier acts as a modifier in declaration position.
func IsSoftModifier(text string) bool {
	_, ok := softModifiers[text]
	return ok
}
