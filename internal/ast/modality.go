package ast

// Modality controls who may extend a class.
type Modality uint8

const (
	ModalityFinal Modality = iota
	ModalityOpen
	ModalityAbstract
	ModalitySealed
)

func (m Modality) String() string {
	switch m {
	case ModalityFinal:
		return "final"
	case ModalityOpen:
		return "open"
	case ModalityAbstract:
		return "abstract"
	case ModalitySealed:
		return "sealed"
	default:
		return "unknown"
	}
}

// ClassKind distinguishes the classifier flavours sharing ClassItem.
type ClassKind uint8

const (
	ClassKindClass ClassKind = iota
	ClassKindInterface
	ClassKindObject
	ClassKindEnum
)

func (k ClassKind) String() string {
	switch k {
	case ClassKindClass:
		return "class"
	case ClassKindInterface:
		return "interface"
	case ClassKindObject:
		return "object"
	case ClassKindEnum:
		return "enum class"
	default:
		return "unknown"
	}
}
