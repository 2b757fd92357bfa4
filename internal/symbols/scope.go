package symbols

import (
	"slices"
	"strings"

	"sealscan/internal/ast"
	"sealscan/internal/source"
)

// fileScope holds the names a file brings into scope through its header.
type fileScope struct {
	pkg      string
	explicit map[string]ast.ClassID
	stars    [][]string
}

// scope is the lexical position of a type reference.
type scope struct {
	file       *fileScope
	enclosing  []ast.ClassID // outermost first
	typeParams []source.StringID
}

func (s *scope) hasTypeParam(name source.StringID) bool {
	return slices.Contains(s.typeParams, name)
}

func (s *scope) enter(cls ast.ClassID, typeParams []source.StringID) *scope {
	enclosing := make([]ast.ClassID, len(s.enclosing), len(s.enclosing)+1)
	copy(enclosing, s.enclosing)
	return &scope{
		file:       s.file,
		enclosing:  append(enclosing, cls),
		typeParams: typeParams,
	}
}

func (s *scope) withTypeParams(typeParams []source.StringID) *scope {
	return &scope{file: s.file, enclosing: s.enclosing, typeParams: typeParams}
}

// findClassPath splits a dotted path into package and relative name, trying
// the longest package first.
func (t *Table) findClassPath(path []string) (ast.ClassID, bool) {
	for k := len(path) - 1; k >= 0; k-- {
		id := ast.NewClassID(strings.Join(path[:k], "."), strings.Join(path[k:], "."))
		if _, ok := t.Lookup(id); ok {
			return id, true
		}
	}
	return ast.ClassID{}, false
}

// starMember resolves name through a star import of path, which may name a
// package or a class.
func (t *Table) starMember(path []string, name string) (ast.ClassID, bool) {
	pkg := strings.Join(path, ".")
	if id := ast.NewClassID(pkg, name); t.HasPackage(pkg) {
		if _, ok := t.Lookup(id); ok {
			return id, true
		}
	}
	if owner, ok := t.findClassPath(path); ok {
		id := owner.Nested(name)
		if _, ok := t.Lookup(id); ok {
			return id, true
		}
	}
	return ast.ClassID{}, false
}
