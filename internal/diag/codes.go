package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexBadChar            Code = 1004
	LexBadEscape          Code = 1005

	// Синтаксические
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynExpectSemicolon    Code = 2002
	SynExpectIdentifier   Code = 2003
	SynExpectType         Code = 2004
	SynExpectExpression   Code = 2005
	SynExpectBlock        Code = 2006
	SynUnclosedParen      Code = 2007
	SynUnclosedBrace      Code = 2008
	SynLoopControlOutside Code = 2009
	SynReturnOutsideFn    Code = 2010
	SynNestedFn           Code = 2011
	SynTooManyArgs        Code = 2012

	// Семантические
	SemaInfo              Code = 3000
	SemaTypeMismatch      Code = 3001
	SemaDuplicateSymbol   Code = 3002
	SemaDuplicateFunction Code = 3003
	SemaUnknownSymbol     Code = 3004
	SemaConstAssignment   Code = 3005
	SemaMissingReturn     Code = 3006
	SemaNoEntryPoint      Code = 3007
	SemaArgCount          Code = 3008

	// Нарушения внутренних инвариантов таблиц и потока инструкций
	InternalInfo        Code = 9000
	InternalConsistency Code = 9001
)

var codeDescription = map[Code]string{
	UnknownCode:           "Unknown error",
	LexInfo:               "Lexical information",
	LexUnknownChar:        "Unknown character",
	LexUnterminatedString: "Unterminated string literal",
	LexBadNumber:          "Malformed number literal",
	LexBadChar:            "Malformed character literal",
	LexBadEscape:          "Unknown escape sequence",
	SynInfo:               "Syntax information",
	SynUnexpectedToken:    "Unexpected token",
	SynExpectSemicolon:    "Missing semicolon",
	SynExpectIdentifier:   "Expected identifier",
	SynExpectType:         "Expected type",
	SynExpectExpression:   "Expected expression",
	SynExpectBlock:        "Expected block",
	SynUnclosedParen:      "Unclosed parenthesis",
	SynUnclosedBrace:      "Unclosed brace",
	SynLoopControlOutside: "Loop control outside of a loop",
	SynReturnOutsideFn:    "Return outside of a function",
	SynNestedFn:           "Nested function declaration",
	SynTooManyArgs:        "Too many call arguments",
	SemaInfo:              "Semantic information",
	SemaTypeMismatch:      "Type mismatch",
	SemaDuplicateSymbol:   "Duplicate symbol",
	SemaDuplicateFunction: "Duplicate function",
	SemaUnknownSymbol:     "Unknown symbol",
	SemaConstAssignment:   "Assignment to constant",
	SemaMissingReturn:     "Missing return",
	SemaNoEntryPoint:      "Missing entry point",
	SemaArgCount:          "Wrong number of arguments",
	InternalInfo:          "Internal information",
	InternalConsistency:   "Internal table consistency violation",
}

// Class groups codes by pipeline phase.
type Class uint8

const (
	ClassUnknown Class = iota
	ClassLex
	ClassSyntax
	ClassSema
	ClassInternal
)

func (c Code) Class() Class {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return ClassLex
	case ic >= 2000 && ic < 3000:
		return ClassSyntax
	case ic >= 3000 && ic < 4000:
		return ClassSema
	case ic >= 9000:
		return ClassInternal
	}
	return ClassUnknown
}

func (c Code) ID() string {
	ic := int(c)
	switch c.Class() {
	case ClassLex:
		return fmt.Sprintf("LEX%04d", ic)
	case ClassSyntax:
		return fmt.Sprintf("SYN%04d", ic)
	case ClassSema:
		return fmt.Sprintf("SEM%04d", ic)
	case ClassInternal:
		return fmt.Sprintf("INT%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
