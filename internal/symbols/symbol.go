package symbols

import (
	"c0c/internal/source"
	"c0c/internal/types"
)

// StorageKind selects the addressing instruction for a symbol.
type StorageKind uint8

const (
	Global StorageKind = iota
	Param
	Local
)

func (k StorageKind) String() string {
	switch k {
	case Global:
		return "global"
	case Param:
		return "param"
	case Local:
		return "local"
	default:
		return "invalid"
	}
}

// Symbol is a named (or anonymous) storage slot.
type Symbol struct {
	Name  string
	Kind  StorageKind
	Type  types.ValueType
	Addr  uint32
	Const bool
	// Value holds the payload of anonymous string constants.
	Value string
	Span  source.Span
}

// Anonymous reports whether the symbol is hidden from name lookup.
func (s *Symbol) Anonymous() bool {
	return s.Name == ""
}

// ByteSize is the number of bytes the module reserves for a global.
func (s *Symbol) ByteSize() int {
	if s.Type == types.String {
		return len(s.Value)
	}
	return 8
}
