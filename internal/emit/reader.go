package emit

import (
	"encoding/binary"
	"errors"
	"fmt"

	"c0c/internal/bytecode"
	"c0c/internal/program"
)

var (
	ErrTruncated = errors.New("module is truncated")
	ErrBadMagic  = errors.New("not a c0 module")
)

// Read decodes a module produced by MarshalBinary.
// A push operand is 8 bytes either way on the wire, so it comes back as an
// integer carrying the raw bits.
func Read(data []byte) (*Module, error) {
	r := &reader{data: data}
	m := &Module{}
	m.Magic = r.u32()
	if r.err == nil && m.Magic != program.Magic {
		return nil, fmt.Errorf("%w: magic 0x%08x", ErrBadMagic, m.Magic)
	}
	m.Version = r.u32()
	if r.err == nil && m.Version != program.Version {
		return nil, fmt.Errorf("unsupported module version %d", m.Version)
	}

	globals := r.u32()
	for i := uint32(0); i < globals && r.err == nil; i++ {
		isConst := r.u8()
		size := r.u32()
		if r.err == nil && isConst > 1 {
			return nil, fmt.Errorf("global %d: is_const byte %d", i, isConst)
		}
		m.Globals = append(m.Globals, Global{Const: isConst == 1, Value: r.bytes(size)})
	}

	funcs := r.u32()
	for i := uint32(0); i < funcs && r.err == nil; i++ {
		fn := Func{
			ID:          r.u32(),
			ReturnSlots: r.u32(),
			ParamSlots:  r.u32(),
			LocalSlots:  r.u32(),
		}
		instrs := r.u32()
		for j := uint32(0); j < instrs && r.err == nil; j++ {
			in, err := r.instruction()
			if err != nil {
				return nil, fmt.Errorf("function #%d instruction %d: %w", fn.ID, j, err)
			}
			fn.Code = append(fn.Code, in)
		}
		m.Funcs = append(m.Funcs, fn)
	}
	if r.err != nil {
		return nil, r.err
	}
	if r.off != len(data) {
		return nil, fmt.Errorf("%d trailing bytes after module", len(data)-r.off)
	}
	return m, nil
}

type reader struct {
	data []byte
	off  int
	err  error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.data)-r.off < n {
		r.err = fmt.Errorf("%w: need %d bytes at offset %d", ErrTruncated, n, r.off)
		return nil
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b
}

func (r *reader) u8() uint8 {
	if b := r.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (r *reader) u32() uint32 {
	if b := r.take(4); b != nil {
		return binary.BigEndian.Uint32(b)
	}
	return 0
}

func (r *reader) u64() uint64 {
	if b := r.take(8); b != nil {
		return binary.BigEndian.Uint64(b)
	}
	return 0
}

func (r *reader) bytes(n uint32) []byte {
	b := r.take(int(n))
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

func (r *reader) instruction() (bytecode.Instruction, error) {
	op := bytecode.Opcode(r.u8())
	if r.err != nil {
		return bytecode.Instruction{}, r.err
	}
	if !op.Valid() {
		return bytecode.Instruction{}, fmt.Errorf("unknown opcode 0x%02x", uint8(op))
	}
	switch op.Width() {
	case bytecode.Width64:
		return bytecode.OpInt(op, int64(r.u64())), r.err
	case bytecode.Width32:
		return bytecode.OpInt(op, int64(int32(r.u32()))), r.err
	}
	return bytecode.Op0(op), nil
}
