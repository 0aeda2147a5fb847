package emit

import (
	"encoding/binary"
	"io"
	"math"

	"fortio.org/safecast"

	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/program"
)

// Bytes lowers prog and returns the encoded module.
func Bytes(prog *program.Program) ([]byte, error) {
	m, err := Lower(prog)
	if err != nil {
		return nil, err
	}
	return m.MarshalBinary()
}

// MarshalBinary encodes m big-endian.
func (m *Module) MarshalBinary() ([]byte, error) {
	buf := make([]byte, 0, m.Size())
	buf = binary.BigEndian.AppendUint32(buf, m.Magic)
	buf = binary.BigEndian.AppendUint32(buf, m.Version)

	n, err := count("global", len(m.Globals))
	if err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint32(buf, n)
	for _, g := range m.Globals {
		if g.Const {
			buf = append(buf, 1)
		} else {
			buf = append(buf, 0)
		}
		size, err := count("global byte", len(g.Value))
		if err != nil {
			return nil, err
		}
		buf = binary.BigEndian.AppendUint32(buf, size)
		buf = append(buf, g.Value...)
	}

	if n, err = count("function", len(m.Funcs)); err != nil {
		return nil, err
	}
	buf = binary.BigEndian.AppendUint32(buf, n)
	for _, fn := range m.Funcs {
		instrs, err := count("instruction", len(fn.Code))
		if err != nil {
			return nil, err
		}
		buf = binary.BigEndian.AppendUint32(buf, fn.ID)
		buf = binary.BigEndian.AppendUint32(buf, fn.ReturnSlots)
		buf = binary.BigEndian.AppendUint32(buf, fn.ParamSlots)
		buf = binary.BigEndian.AppendUint32(buf, fn.LocalSlots)
		buf = binary.BigEndian.AppendUint32(buf, instrs)
		for i, in := range fn.Code {
			if buf, err = appendInstruction(buf, in); err != nil {
				return nil, diag.Internalf("function #%d instruction %d: %v", fn.ID, i, err)
			}
		}
	}
	return buf, nil
}

func appendInstruction(buf []byte, in bytecode.Instruction) ([]byte, error) {
	buf = append(buf, byte(in.Op))
	switch {
	case in.Operand.Kind == bytecode.OperandFloat:
		return binary.BigEndian.AppendUint64(buf, math.Float64bits(in.Operand.Float)), nil
	case in.Op == bytecode.OpPush:
		return binary.BigEndian.AppendUint64(buf, uint64(in.Operand.Int)), nil
	case in.Operand.Kind == bytecode.OperandInt:
		v, err := safecast.Conv[int32](in.Operand.Int)
		if err != nil {
			return nil, err
		}
		return binary.BigEndian.AppendUint32(buf, uint32(v)), nil
	}
	return buf, nil
}

// WriteTo writes the encoded module to w.
func (m *Module) WriteTo(w io.Writer) (int64, error) {
	data, err := m.MarshalBinary()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(data)
	return int64(n), err
}
