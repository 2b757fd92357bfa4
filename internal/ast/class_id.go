package ast

import "strings"

// ClassID is the fully-qualified identity of a classifier declaration:
// a dotted package plus the dotted chain of enclosing class names.
// It renders as "zoo/animals/Outer.Inner".
type ClassID struct {
	Package  string
	Relative string
}

// NewClassID builds an id from a dotted package and a relative class path.
func NewClassID(pkg, relative string) ClassID {
	return ClassID{Package: pkg, Relative: relative}
}

// ParseClassID accepts the rendered form "a/b/Outer.Inner" (no slash means the root package).
func ParseClassID(s string) ClassID {
	idx := strings.LastIndexByte(s, '/')
	if idx < 0 {
		return ClassID{Relative: s}
	}
	return ClassID{Package: strings.ReplaceAll(s[:idx], "/", "."), Relative: s[idx+1:]}
}

func (id ClassID) IsZero() bool {
	return id.Relative == ""
}

// Nested returns the id of a classifier named name declared inside id.
func (id ClassID) Nested(name string) ClassID {
	return ClassID{Package: id.Package, Relative: id.Relative + "." + name}
}

// Outer returns the enclosing class id, or false for a top-level class.
func (id ClassID) Outer() (ClassID, bool) {
	idx := strings.LastIndexByte(id.Relative, '.')
	if idx < 0 {
		return ClassID{}, false
	}
	return ClassID{Package: id.Package, Relative: id.Relative[:idx]}, true
}

// ShortName is the last segment of the relative name.
func (id ClassID) ShortName() string {
	idx := strings.LastIndexByte(id.Relative, '.')
	return id.Relative[idx+1:]
}

func (id ClassID) String() string {
	if id.Package == "" {
		return id.Relative
	}
	return strings.ReplaceAll(id.Package, ".", "/") + "/" + id.Relative
}

// FqName is the dotted form used in source code, e.g. "zoo.animals.Outer.Inner".
func (id ClassID) FqName() string {
	if id.Package == "" {
		return id.Relative
	}
	return id.Package + "." + id.Relative
}
