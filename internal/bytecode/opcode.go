package bytecode

import "fmt"

// Opcode is the one-byte operation code of the target VM.
type Opcode uint8

const (
	OpNop        Opcode = 0x00
	OpPush       Opcode = 0x01
	OpPop        Opcode = 0x02
	OpPopN       Opcode = 0x03
	OpLocA       Opcode = 0x0a
	OpArgA       Opcode = 0x0b
	OpGlobA      Opcode = 0x0c
	OpLoad64     Opcode = 0x13
	OpStore64    Opcode = 0x17
	OpStackAlloc Opcode = 0x1a
	OpAddI       Opcode = 0x20
	OpSubI       Opcode = 0x21
	OpMulI       Opcode = 0x22
	OpDivI       Opcode = 0x23
	OpAddF       Opcode = 0x24
	OpSubF       Opcode = 0x25
	OpMulF       Opcode = 0x26
	OpDivF       Opcode = 0x27
	OpNot        Opcode = 0x2e
	OpCmpI       Opcode = 0x30
	OpCmpF       Opcode = 0x32
	OpNegI       Opcode = 0x34
	OpNegF       Opcode = 0x35
	OpIToF       Opcode = 0x36
	OpFToI       Opcode = 0x37
	OpSetLt      Opcode = 0x39
	OpSetGt      Opcode = 0x3a
	OpBr         Opcode = 0x41
	OpBrFalse    Opcode = 0x42
	OpBrTrue     Opcode = 0x43
	OpCall       Opcode = 0x48
	OpRet        Opcode = 0x49
	OpCallName   Opcode = 0x4a
	OpScanI      Opcode = 0x50
	OpScanC      Opcode = 0x51
	OpScanF      Opcode = 0x52
	OpPrintI     Opcode = 0x54
	OpPrintC     Opcode = 0x55
	OpPrintF     Opcode = 0x56
	OpPrintS     Opcode = 0x57
	OpPrintLn    Opcode = 0x58
)

// OperandWidth is the number of operand bytes following an opcode on the wire.
type OperandWidth uint8

const (
	WidthNone OperandWidth = 0
	Width32   OperandWidth = 4
	Width64   OperandWidth = 8
)

type opInfo struct {
	name  string
	width OperandWidth
}

var opTable = map[Opcode]opInfo{
	OpNop:        {"nop", WidthNone},
	OpPush:       {"push", Width64},
	OpPop:        {"pop", WidthNone},
	OpPopN:       {"popn", Width32},
	OpLocA:       {"loca", Width32},
	OpArgA:       {"arga", Width32},
	OpGlobA:      {"globa", Width32},
	OpLoad64:     {"load.64", WidthNone},
	OpStore64:    {"store.64", WidthNone},
	OpStackAlloc: {"stackalloc", Width32},
	OpAddI:       {"add.i", WidthNone},
	OpSubI:       {"sub.i", WidthNone},
	OpMulI:       {"mul.i", WidthNone},
	OpDivI:       {"div.i", WidthNone},
	OpAddF:       {"add.f", WidthNone},
	OpSubF:       {"sub.f", WidthNone},
	OpMulF:       {"mul.f", WidthNone},
	OpDivF:       {"div.f", WidthNone},
	OpNot:        {"not", WidthNone},
	OpCmpI:       {"cmp.i", WidthNone},
	OpCmpF:       {"cmp.f", WidthNone},
	OpNegI:       {"neg.i", WidthNone},
	OpNegF:       {"neg.f", WidthNone},
	OpIToF:       {"itof", WidthNone},
	OpFToI:       {"ftoi", WidthNone},
	OpSetLt:      {"set.lt", WidthNone},
	OpSetGt:      {"set.gt", WidthNone},
	OpBr:         {"br", Width32},
	OpBrFalse:    {"br.false", Width32},
	OpBrTrue:     {"br.true", Width32},
	OpCall:       {"call", Width32},
	OpRet:        {"ret", WidthNone},
	OpCallName:   {"callname", Width32},
	OpScanI:      {"scan.i", WidthNone},
	OpScanC:      {"scan.c", WidthNone},
	OpScanF:      {"scan.f", WidthNone},
	OpPrintI:     {"print.i", WidthNone},
	OpPrintC:     {"print.c", WidthNone},
	OpPrintF:     {"print.f", WidthNone},
	OpPrintS:     {"print.s", WidthNone},
	OpPrintLn:    {"println", WidthNone},
}

// Valid reports whether op is part of the instruction set.
func (op Opcode) Valid() bool {
	_, ok := opTable[op]
	return ok
}

func (op Opcode) String() string {
	if info, ok := opTable[op]; ok {
		return info.name
	}
	return fmt.Sprintf("op(0x%02x)", uint8(op))
}

// Width returns how many operand bytes follow op in a module.
func (op Opcode) Width() OperandWidth {
	return opTable[op].width
}

// IsBranch reports whether op carries a relative displacement.
func (op Opcode) IsBranch() bool {
	return op == OpBr || op == OpBrFalse || op == OpBrTrue
}

// IsControlTransfer reports whether op ends a basic block.
func (op Opcode) IsControlTransfer() bool {
	return op.IsBranch() || op == OpCall || op == OpCallName || op == OpRet
}

// FallsThrough reports whether control may continue at the next instruction.
func (op Opcode) FallsThrough() bool {
	return op != OpBr && op != OpRet
}
