package bytecode

import (
	"fmt"
	"math"
	"strconv"
)

// BreakSentinel marks a break placeholder awaiting the loop exit.
const BreakSentinel int64 = math.MaxInt64

// OperandKind tags which Operand field is meaningful.
type OperandKind uint8

const (
	OperandNone OperandKind = iota
	OperandInt
	OperandFloat
)

// Operand is absent, a signed 64-bit integer or a 64-bit float.
type Operand struct {
	Kind  OperandKind
	Int   int64
	Float float64
}

type Instruction struct {
	Op      Opcode
	Operand Operand
}

// Op0 builds an instruction without operand.
func Op0(op Opcode) Instruction {
	return Instruction{Op: op}
}

// OpInt builds an instruction with an integer operand.
func OpInt(op Opcode, v int64) Instruction {
	return Instruction{Op: op, Operand: Operand{Kind: OperandInt, Int: v}}
}

// OpFloat builds an instruction with a float operand.
func OpFloat(op Opcode, v float64) Instruction {
	return Instruction{Op: op, Operand: Operand{Kind: OperandFloat, Float: v}}
}

// IsBreak reports an unresolved break placeholder.
func (in Instruction) IsBreak() bool {
	return in.Op == OpBr && in.Operand.Kind == OperandInt && in.Operand.Int == BreakSentinel
}

// Target returns index+1+displacement for branch instructions.
func (in Instruction) Target(index int) (int, bool) {
	if !in.Op.IsBranch() || in.Operand.Kind != OperandInt || in.IsBreak() {
		return 0, false
	}
	return index + 1 + int(in.Operand.Int), true
}

func (in Instruction) String() string {
	switch in.Operand.Kind {
	case OperandInt:
		if in.IsBreak() {
			return in.Op.String() + " <break>"
		}
		return fmt.Sprintf("%s %d", in.Op, in.Operand.Int)
	case OperandFloat:
		return in.Op.String() + " " + strconv.FormatFloat(in.Operand.Float, 'g', -1, 64)
	default:
		return in.Op.String()
	}
}

// Displacement returns the operand that makes a branch at from land on to.
func Displacement(from, to int) int64 {
	return int64(to - from - 1)
}
