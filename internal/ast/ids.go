package ast

type (
	FileID    uint32
	ItemID    uint32
	TypeRefID uint32
	PayloadID uint32
)

const (
	NoFileID    FileID    = 0
	NoItemID    ItemID    = 0
	NoTypeRefID TypeRefID = 0
	NoPayloadID PayloadID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id TypeRefID) IsValid() bool { return id != NoTypeRefID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
