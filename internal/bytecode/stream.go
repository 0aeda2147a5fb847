package bytecode

import (
	"c0c/internal/diag"
)

// Stream is an index-addressable, patchable instruction list of one function.
// Instructions keep their position forever; Seal freezes the list.
type Stream struct {
	code   []Instruction
	sealed bool
}

func NewStream() *Stream {
	return &Stream{code: make([]Instruction, 0, 16)}
}

// Emit appends in and returns its index.
func (s *Stream) Emit(in Instruction) (int, error) {
	if s.sealed {
		return 0, diag.Internalf("emit %s into a sealed stream", in.Op)
	}
	s.code = append(s.code, in)
	return len(s.code) - 1, nil
}

// Len is the number of instructions; it is also the index of the next one.
func (s *Stream) Len() int {
	return len(s.code)
}

// At returns the instruction at index i.
func (s *Stream) At(i int) Instruction {
	return s.code[i]
}

// Instructions returns the backing slice. Do not modify it.
func (s *Stream) Instructions() []Instruction {
	return s.code
}

// PatchTarget rewrites the branch at index so that it lands on target.
func (s *Stream) PatchTarget(index, target int) error {
	if s.sealed {
		return diag.Internalf("patch at %d in a sealed stream", index)
	}
	if index < 0 || index >= len(s.code) {
		return diag.Internalf("patch index %d out of range [0,%d)", index, len(s.code))
	}
	in := &s.code[index]
	if !in.Op.IsBranch() {
		return diag.Internalf("patch at %d: %s is not a branch", index, in.Op)
	}
	in.Operand = Operand{Kind: OperandInt, Int: Displacement(index, target)}
	return nil
}

// PatchBreaks resolves every break placeholder in [from, len) to target.
func (s *Stream) PatchBreaks(from, target int) error {
	for i := from; i < len(s.code); i++ {
		if s.code[i].IsBreak() {
			if err := s.PatchTarget(i, target); err != nil {
				return err
			}
		}
	}
	return nil
}

// Seal freezes the stream.
func (s *Stream) Seal() {
	s.sealed = true
}

func (s *Stream) Sealed() bool {
	return s.sealed
}
