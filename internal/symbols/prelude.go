package symbols

import "sealscan/internal/ast"

// defaultImports are the packages every file sees without an import.
var defaultImports = []string{
	"kotlin",
	"kotlin.collections",
}

var builtinClassifiers = map[string][]string{
	"kotlin": {
		"Any", "Nothing", "Unit", "String", "CharSequence",
		"Int", "Long", "Short", "Byte", "Double", "Float", "Boolean", "Char", "Number",
		"Comparable", "Enum", "Array", "Function",
		"Throwable", "Exception", "RuntimeException", "Error",
		"IllegalStateException", "IllegalArgumentException",
	},
	"kotlin.collections": {
		"Iterable", "Collection", "List", "Set", "Map", "Iterator",
		"MutableIterable", "MutableCollection", "MutableList", "MutableSet", "MutableMap",
	},
}

func (t *Table) declareBuiltins() {
	for pkg, names := range builtinClassifiers {
		for _, name := range names {
			id := ast.NewClassID(pkg, name)
			t.byID[id] = Symbol{Kind: SymbolBuiltin, ID: id}
		}
		t.packages[pkg] = struct{}{}
	}
}
