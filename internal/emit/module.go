// Package emit lowers a finished program into the binary module layout and
// packs it big-endian. Read decodes a module back for inspection.
package emit

import (
	"fmt"

	"fortio.org/safecast"

	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/program"
	"c0c/internal/types"
)

// Global is one entry of the module's global table.
type Global struct {
	Const bool
	Value []byte // raw string bytes, or 8 zero bytes for numeric slots
}

// Func is one function record; the entry function comes first.
type Func struct {
	ID          uint32
	ReturnSlots uint32
	ParamSlots  uint32
	LocalSlots  uint32
	Code        []bytecode.Instruction
}

// Module mirrors the on-disk layout field by field.
type Module struct {
	Magic   uint32
	Version uint32
	Globals []Global
	Funcs   []Func
}

// Lower copies prog into a Module. prog must have passed Validate.
func Lower(prog *program.Program) (*Module, error) {
	if prog == nil {
		return nil, diag.Internalf("lower: nil program")
	}
	m := &Module{
		Magic:   prog.Magic,
		Version: prog.Version,
		Globals: make([]Global, 0, prog.Globals.Len()),
	}
	for _, sym := range prog.Globals.All() {
		g := Global{Const: sym.Const}
		if sym.Type == types.String {
			g.Value = []byte(sym.Value)
		} else {
			g.Value = make([]byte, 8)
		}
		m.Globals = append(m.Globals, g)
	}

	fns := prog.Functions()
	m.Funcs = make([]Func, 0, len(fns))
	for _, fn := range fns {
		if !fn.Code.Sealed() {
			return nil, diag.Internalf("lower: function %q is not finished", fn.Name)
		}
		code := fn.Code.Instructions()
		for i, in := range code {
			if in.IsBreak() {
				return nil, diag.Internalf("lower: function %q: unresolved break at %d", fn.Name, i)
			}
		}
		m.Funcs = append(m.Funcs, Func{
			ID:          fn.ID,
			ReturnSlots: fn.ReturnSlots,
			ParamSlots:  fn.ParamSlots,
			LocalSlots:  fn.LocalSlots,
			Code:        code,
		})
	}
	return m, nil
}

// Size returns the exact encoded length in bytes.
func (m *Module) Size() int {
	n := 4 + 4 + 4
	for _, g := range m.Globals {
		n += 1 + 4 + len(g.Value)
	}
	n += 4
	for _, fn := range m.Funcs {
		n += 5 * 4
		for _, in := range fn.Code {
			n += 1 + operandSize(in)
		}
	}
	return n
}

// operandSize follows the wire rule: a float operand is 8 bytes, push is
// always 8 bytes, any other integer operand is 4 bytes.
func operandSize(in bytecode.Instruction) int {
	switch {
	case in.Operand.Kind == bytecode.OperandFloat:
		return 8
	case in.Op == bytecode.OpPush:
		return 8
	case in.Operand.Kind == bytecode.OperandInt:
		return 4
	}
	return 0
}

func count(what string, n int) (uint32, error) {
	v, err := safecast.Conv[uint32](n)
	if err != nil {
		return 0, diag.Internalf("%s count %d does not fit the module format: %v", what, n, err)
	}
	return v, nil
}

func (fn Func) String() string {
	return fmt.Sprintf("fn #%d (ret=%d params=%d locals=%d, %d instructions)",
		fn.ID, fn.ReturnSlots, fn.ParamSlots, fn.LocalSlots, len(fn.Code))
}
