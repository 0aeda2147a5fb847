package program

import (
	"c0c/internal/bytecode"
	"c0c/internal/source"
	"c0c/internal/symbols"
	"c0c/internal/types"
)

// Function describes one compiled function.
type Function struct {
	ID       uint32
	Name     string
	NameAddr uint32 // global holding the name string
	Return   types.ValueType
	Params   []types.ValueType
	Span     source.Span

	ReturnSlots uint32
	ParamSlots  uint32
	LocalSlots  uint32

	Code *bytecode.Stream
}

// IsVoid reports whether calls produce no value.
func (f *Function) IsVoid() bool {
	return f.Return == types.Void
}

// Finish records the slot usage of frame and seals the code.
func (f *Function) Finish(frame *symbols.Frame) {
	f.ReturnSlots = f.Return.Slots()
	if frame != nil {
		f.ParamSlots = frame.Args.Count() - f.ReturnSlots
		f.LocalSlots = frame.Locals.Count()
	}
	f.Code.Seal()
}
