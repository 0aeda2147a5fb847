package token

import (
	"c0c/internal/source"
)

// LitKind tags the payload stored in Literal.
type LitKind uint8

const (
	LitNone LitKind = iota
	LitInt
	LitFloat
	LitString
)

// Literal is the decoded value of a literal token.
type Literal struct {
	Kind  LitKind
	Int   int64
	Float float64
	Str   string
}

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Lit  Literal
	Line uint32
}

// IsLiteral reports whether the token is a numeric, character or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, CharLit, StringLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwFn && t.Kind <= KwContinue
}

// IsComparison reports whether the token is one of < <= > >= == !=.
func (t Token) IsComparison() bool {
	switch t.Kind {
	case Lt, LtEq, Gt, GtEq, EqEq, BangEq:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
