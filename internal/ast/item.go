package ast

import (
	"sealscan/internal/source"
)

// ItemKind enumerates every declaration node kind the tree can hold.
type ItemKind uint8

const (
	ItemInvalid ItemKind = iota
	ItemClass
	ItemAlias
	ItemFun
	ItemProperty
)

func (k ItemKind) String() string {
	switch k {
	case ItemInvalid:
		return "invalid"
	case ItemClass:
		return "class"
	case ItemAlias:
		return "typealias"
	case ItemFun:
		return "fun"
	case ItemProperty:
		return "property"
	default:
		return "unknown"
	}
}

// Item is the common header of every declaration. Payload indexes the
// kind-specific arena (Classes or Aliases); functions and properties have none.
type Item struct {
	Kind    ItemKind
	Name    source.StringID
	Span    source.Span
	Unit    FileID
	Parent  ItemID
	Payload PayloadID
}

type Items struct {
	Arena   *Arena[Item]
	Classes *Arena[ClassItem]
	Aliases *Arena[AliasItem]
}

// NewItems allocates per-kind arenas; capHint 0 selects 1<<7.
func NewItems(capHint uint) *Items {
	if capHint == 0 {
		capHint = 1 << 7
	}
	return &Items{
		Arena:   NewArena[Item](capHint),
		Classes: NewArena[ClassItem](capHint),
		Aliases: NewArena[AliasItem](capHint / 4),
	}
}

func (i *Items) New(kind ItemKind, name source.StringID, unit FileID, parent ItemID, span source.Span, payload PayloadID) ItemID {
	return ItemID(i.Arena.Allocate(Item{
		Kind:    kind,
		Name:    name,
		Span:    span,
		Unit:    unit,
		Parent:  parent,
		Payload: payload,
	}))
}

func (i *Items) Get(id ItemID) *Item {
	return i.Arena.Get(uint32(id))
}

// Class returns the class payload of id, or false if id is not a class.
func (i *Items) Class(id ItemID) (*ClassItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemClass || !item.Payload.IsValid() {
		return nil, false
	}
	cls := i.Classes.Get(uint32(item.Payload))
	return cls, cls != nil
}

// Alias returns the alias payload of id, or false if id is not an alias.
func (i *Items) Alias(id ItemID) (*AliasItem, bool) {
	item := i.Get(id)
	if item == nil || item.Kind != ItemAlias || !item.Payload.IsValid() {
		return nil, false
	}
	al := i.Aliases.Get(uint32(item.Payload))
	return al, al != nil
}
