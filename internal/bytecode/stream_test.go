package bytecode_test

import (
	"strings"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/bytecode"
	"c0c/internal/diag"
)

func TestPatchTargetDisplacement(t *testing.T) {
	s := bytecode.NewStream()
	for _, in := range []bytecode.Instruction{
		bytecode.Op0(bytecode.OpNop),
		bytecode.OpInt(bytecode.OpBrFalse, 0),
		bytecode.Op0(bytecode.OpNop),
		bytecode.Op0(bytecode.OpNop),
		bytecode.OpInt(bytecode.OpBr, 0),
	} {
		if _, err := s.Emit(in); err != nil {
			t.Fatalf("emit: %v", err)
		}
	}

	tests := []struct{ index, target int }{
		{1, 4},
		{1, 2},
		{4, 0},
		{4, 5},
	}
	for _, tt := range tests {
		be.Err(t, s.PatchTarget(tt.index, tt.target), nil)
		d := s.At(tt.index).Operand.Int
		if int64(tt.index)+1+d != int64(tt.target) {
			t.Fatalf("branch %d -> %d: displacement %d", tt.index, tt.target, d)
		}
		got, ok := s.At(tt.index).Target(tt.index)
		be.True(t, ok)
		be.Equal(t, got, tt.target)
	}
}

func TestPatchRejectsNonBranchAndRange(t *testing.T) {
	s := bytecode.NewStream()
	_, _ = s.Emit(bytecode.OpInt(bytecode.OpPush, 1))
	be.True(t, diag.IsInternal(s.PatchTarget(0, 0)))
	be.True(t, diag.IsInternal(s.PatchTarget(3, 0)))
}

func TestPatchBreaks(t *testing.T) {
	s := bytecode.NewStream()
	_, _ = s.Emit(bytecode.OpInt(bytecode.OpBr, bytecode.BreakSentinel))
	_, _ = s.Emit(bytecode.Op0(bytecode.OpNop))
	_, _ = s.Emit(bytecode.OpInt(bytecode.OpBr, bytecode.BreakSentinel))
	_, _ = s.Emit(bytecode.OpInt(bytecode.OpBr, bytecode.BreakSentinel))
	_, _ = s.Emit(bytecode.Op0(bytecode.OpNop))

	be.Err(t, s.PatchBreaks(1, 4), nil)
	be.True(t, s.At(0).IsBreak())
	for _, i := range []int{2, 3} {
		target, ok := s.At(i).Target(i)
		be.True(t, ok)
		be.Equal(t, target, 4)
	}
}

func TestSealedStreamIsFrozen(t *testing.T) {
	s := bytecode.NewStream()
	_, _ = s.Emit(bytecode.OpInt(bytecode.OpBr, 0))
	s.Seal()
	_, err := s.Emit(bytecode.Op0(bytecode.OpRet))
	be.True(t, diag.IsInternal(err))
	be.True(t, diag.IsInternal(s.PatchTarget(0, 1)))
	be.Equal(t, s.Len(), 1)
}

func TestOpcodeTable(t *testing.T) {
	be.Equal(t, uint8(bytecode.OpPrintLn), uint8(0x58))
	be.Equal(t, bytecode.OpPush.Width(), bytecode.Width64)
	be.Equal(t, bytecode.OpCall.Width(), bytecode.Width32)
	be.Equal(t, bytecode.OpAddI.Width(), bytecode.WidthNone)
	be.True(t, !bytecode.Opcode(0x04).Valid())
	be.True(t, bytecode.OpCall.IsControlTransfer())
	be.True(t, !bytecode.OpBr.FallsThrough())
	be.True(t, bytecode.OpBrTrue.FallsThrough())
}

func TestDisassembler(t *testing.T) {
	var b strings.Builder
	d := bytecode.NewDisassembler(&b)
	err := d.Function("fn main [1]", []bytecode.Instruction{
		bytecode.OpInt(bytecode.OpLocA, 0),
		bytecode.OpFloat(bytecode.OpPush, 1.5),
		bytecode.OpInt(bytecode.OpBr, -3),
		bytecode.Op0(bytecode.OpRet),
	})
	be.Err(t, err, nil)
	want := "fn main [1]:\n" +
		"     0  loca 0\n" +
		"     1  push 1.5\n" +
		"     2  br -3  ; -> 0\n" +
		"     3  ret\n"
	be.Equal(t, b.String(), want)
}
