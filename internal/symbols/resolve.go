package symbols

import (
	"fmt"
	"slices"

	"sealscan/internal/ast"
	"sealscan/internal/diag"
	"sealscan/internal/source"
)

// Stats summarises one ResolveFile run.
type Stats struct {
	Resolved   int
	TypeParams int
	Unresolved int
}

type resolver struct {
	table *Table
	tree  *ast.Builder
	opts  Options
	stats Stats
}

// ResolveFile fills Kind and Lookup on every type reference of file.
// The table must already hold the declarations of every scanned file.
// Unresolved references stay TypeRefUnresolved and get a warning.
func ResolveFile(t *Table, tree *ast.Builder, file ast.FileID, opts Options) Stats {
	f := tree.Files.Get(file)
	if f == nil {
		return Stats{}
	}
	r := &resolver{table: t, tree: tree, opts: opts}
	root := &scope{file: r.fileScope(f)}
	for _, id := range f.Items {
		r.resolveItem(id, root)
	}
	return r.stats
}

func (r *resolver) fileScope(f *ast.File) *fileScope {
	fs := &fileScope{
		pkg:      r.tree.JoinPath(f.Package),
		explicit: make(map[string]ast.ClassID, len(f.Imports)),
	}
	for _, imp := range f.Imports {
		path := r.names(imp.Path)
		if imp.Star {
			fs.stars = append(fs.stars, path)
			continue
		}
		id, ok := r.table.findClassPath(path)
		if !ok {
			// functions and properties can be imported too
			continue
		}
		visible := path[len(path)-1]
		if imp.Alias != source.NoStringID {
			visible = r.tree.Name(imp.Alias)
		}
		fs.explicit[visible] = id
	}
	return fs
}

func (r *resolver) names(segs []source.StringID) []string {
	out := make([]string, len(segs))
	for i, s := range segs {
		out[i] = r.tree.Name(s)
	}
	return out
}

func (r *resolver) resolveItem(id ast.ItemID, sc *scope) {
	item := r.tree.Items.Get(id)
	if item == nil {
		return
	}
	switch item.Kind {
	case ast.ItemClass:
		cls, ok := r.tree.Items.Class(id)
		if !ok {
			return
		}
		header := sc.withTypeParams(cls.TypeParams)
		for _, ref := range cls.Supertypes {
			r.resolveRef(ref, header)
		}
		body := sc.enter(cls.ID, cls.TypeParams)
		for _, m := range cls.Members {
			r.resolveItem(m, body)
		}
	case ast.ItemAlias:
		al, ok := r.tree.Items.Alias(id)
		if !ok {
			return
		}
		r.resolveRef(al.Target, sc.withTypeParams(al.TypeParams))
	}
}

func (r *resolver) resolveRef(id ast.TypeRefID, sc *scope) {
	ref := r.tree.TypeRefs.Get(id)
	if ref == nil {
		return
	}
	for _, arg := range ref.Args {
		r.resolveRef(arg, sc)
	}
	if ref.Kind == ast.TypeRefFunction || len(ref.Segments) == 0 {
		return
	}
	if len(ref.Segments) == 1 && sc.hasTypeParam(ref.Segments[0]) {
		ref.Kind = ast.TypeRefTypeParam
		r.stats.TypeParams++
		return
	}
	path := r.names(ref.Segments)
	cid, ok := r.resolvePath(path, sc, ref.Span)
	if !ok {
		ref.Kind = ast.TypeRefUnresolved
		ref.Lookup = ast.ClassID{}
		r.stats.Unresolved++
		if r.opts.Reporter != nil {
			diag.ReportWarning(r.opts.Reporter, diag.SemaUnresolvedType, ref.Span,
				fmt.Sprintf("unresolved reference '%s'", r.tree.JoinPath(ref.Segments))).Emit()
		}
		return
	}
	ref.Kind = ast.TypeRefClassifier
	ref.Lookup = cid
	r.stats.Resolved++
}

// resolvePath resolves the head segment through the scope chain and walks
// the remaining segments as nested classes. A path whose head is not in
// scope is tried as a fully-qualified name.
func (r *resolver) resolvePath(path []string, sc *scope, at source.Span) (ast.ClassID, bool) {
	if head, ok := r.lookupName(path[0], sc, at); ok {
		id := head
		for _, seg := range path[1:] {
			id = id.Nested(seg)
		}
		if _, ok := r.table.Lookup(id); ok {
			return id, true
		}
	}
	if len(path) > 1 {
		return r.table.findClassPath(path)
	}
	return ast.ClassID{}, false
}

// lookupName applies the classifier scope order: enclosing classes from the
// innermost out, explicit imports, the file's package, star imports, then
// the default imports.
func (r *resolver) lookupName(name string, sc *scope, at source.Span) (ast.ClassID, bool) {
	for i := len(sc.enclosing) - 1; i >= 0; i-- {
		outer := sc.enclosing[i]
		if id := outer.Nested(name); r.known(id) {
			return id, true
		}
		if outer.ShortName() == name {
			return outer, true
		}
	}
	if id, ok := sc.file.explicit[name]; ok {
		return id, true
	}
	if id := ast.NewClassID(sc.file.pkg, name); r.known(id) {
		return id, true
	}

	var found []ast.ClassID
	for _, star := range sc.file.stars {
		if id, ok := r.table.starMember(star, name); ok && !slices.Contains(found, id) {
			found = append(found, id)
		}
	}
	if len(found) > 0 {
		if len(found) > 1 && r.opts.Reporter != nil {
			diag.ReportWarning(r.opts.Reporter, diag.SemaAmbiguousImport, at,
				fmt.Sprintf("'%s' is imported by several star imports; using %s", name, found[0].FqName())).Emit()
		}
		return found[0], true
	}

	for _, pkg := range defaultImports {
		if id := ast.NewClassID(pkg, name); r.known(id) {
			return id, true
		}
	}
	return ast.ClassID{}, false
}

func (r *resolver) known(id ast.ClassID) bool {
	_, ok := r.table.Lookup(id)
	return ok
}
