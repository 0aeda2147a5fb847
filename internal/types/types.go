// Package types defines the closed set of static value types of the language.
package types

import "fmt"

// ValueType drives type checking and opcode variant selection.
type ValueType uint8

const (
	Void ValueType = iota
	Int
	Double
	String
	Bool
)

func (t ValueType) String() string {
	switch t {
	case Void:
		return "void"
	case Int:
		return "int"
	case Double:
		return "double"
	case String:
		return "string"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("ValueType(%d)", t)
	}
}

// IsNumeric reports whether arithmetic and comparison operators accept t.
func (t ValueType) IsNumeric() bool {
	return t == Int || t == Double
}

// IsCondition reports whether t may control an if or while.
func (t ValueType) IsCondition() bool {
	return t == Bool || t == Int
}

// IsIntRepr reports whether values of t live on the stack as 64-bit integers.
func (t ValueType) IsIntRepr() bool {
	return t == Int || t == Bool
}

// Slots returns the number of stack slots a value of t occupies.
func (t ValueType) Slots() uint32 {
	if t == Void {
		return 0
	}
	return 1
}

// FromName maps a type keyword spelling to a ValueType.
func FromName(name string) (ValueType, bool) {
	switch name {
	case "void":
		return Void, true
	case "int":
		return Int, true
	case "double":
		return Double, true
	case "string":
		return String, true
	case "bool":
		return Bool, true
	}
	return Void, false
}
