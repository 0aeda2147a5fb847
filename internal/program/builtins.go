package program

import (
	"c0c/internal/bytecode"
	"c0c/internal/types"
)

// Builtin is an I/O routine mapped directly onto a VM opcode.
type Builtin struct {
	Name   string
	Op     bytecode.Opcode
	Params []types.ValueType
	Return types.ValueType
}

var builtins = map[string]Builtin{
	"getint":    {Name: "getint", Op: bytecode.OpScanI, Return: types.Int},
	"getdouble": {Name: "getdouble", Op: bytecode.OpScanF, Return: types.Double},
	"getchar":   {Name: "getchar", Op: bytecode.OpScanC, Return: types.Int},
	"putint":    {Name: "putint", Op: bytecode.OpPrintI, Params: []types.ValueType{types.Int}},
	"putdouble": {Name: "putdouble", Op: bytecode.OpPrintF, Params: []types.ValueType{types.Double}},
	"putchar":   {Name: "putchar", Op: bytecode.OpPrintC, Params: []types.ValueType{types.Int}},
	"putstr":    {Name: "putstr", Op: bytecode.OpPrintS, Params: []types.ValueType{types.String}},
	"putln":     {Name: "putln", Op: bytecode.OpPrintLn},
}

// LookupBuiltin returns the builtin called name.
func LookupBuiltin(name string) (Builtin, bool) {
	b, ok := builtins[name]
	return b, ok
}

// Accepts reports whether argument i may have type vt.
// putstr also takes an Int holding a string global address.
func (b Builtin) Accepts(i int, vt types.ValueType) bool {
	if i >= len(b.Params) {
		return false
	}
	if b.Op == bytecode.OpPrintS && vt == types.Int {
		return true
	}
	return b.Params[i] == vt
}
