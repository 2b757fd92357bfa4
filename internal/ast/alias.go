package ast

import (
	"sealscan/internal/source"
)

// AliasItem is a `typealias Name = Target` declaration.
type AliasItem struct {
	ID         ClassID
	TypeParams []source.StringID
	Target     TypeRefID
	NameSpan   source.Span
}

func (i *Items) NewAlias(name source.StringID, unit FileID, parent ItemID, span source.Span, decl AliasItem) ItemID {
	payload := PayloadID(i.Aliases.Allocate(decl))
	return i.New(ItemAlias, name, unit, parent, span, payload)
}
