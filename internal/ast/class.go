package ast

import (
	"sealscan/internal/source"
)

// ClassItem is a class, interface, object or enum class declaration.
type ClassItem struct {
	ID         ClassID
	Kind       ClassKind
	Modality   Modality
	TypeParams []source.StringID
	Supertypes []TypeRefID
	Members    []ItemID
	NameSpan   source.Span

	// Inheritors is filled by the sealed-inheritor pass for sealed classes:
	// the direct subclasses declared in the same unit, in discovery order.
	Inheritors []ClassID
	// InheritorsSet records that the pass has written Inheritors.
	InheritorsSet bool
}

func (c *ClassItem) IsSealed() bool {
	return c != nil && c.Modality == ModalitySealed
}

// SetInheritors replaces the inheritor list.
func (c *ClassItem) SetInheritors(list []ClassID) {
	c.Inheritors = list
	c.InheritorsSet = true
}

func (i *Items) NewClass(name source.StringID, unit FileID, parent ItemID, span source.Span, decl ClassItem) ItemID {
	payload := PayloadID(i.Classes.Allocate(decl))
	return i.New(ItemClass, name, unit, parent, span, payload)
}
