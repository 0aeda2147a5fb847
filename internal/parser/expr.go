package parser

import (
	"fmt"
	"strconv"

	"c0c/internal/source"
	"c0c/internal/token"
	"c0c/internal/types"
)

// ExprKind tags the closed set of expression forms.
type ExprKind uint8

const (
	ExprAssign ExprKind = iota
	ExprBinary
	ExprCall
	ExprGrouping
	ExprLiteral
	ExprUnary // unary minus or an 'as' cast
	ExprVariable
)

func (k ExprKind) String() string {
	switch k {
	case ExprAssign:
		return "assign"
	case ExprBinary:
		return "binary"
	case ExprCall:
		return "call"
	case ExprGrouping:
		return "grouping"
	case ExprLiteral:
		return "literal"
	case ExprUnary:
		return "unary"
	case ExprVariable:
		return "variable"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// Expr describes an expression whose code has already been emitted.
type Expr struct {
	Kind ExprKind
	Type types.ValueType
	Span source.Span

	Op    token.Kind // Binary/Unary operator; KwAs for casts
	Name  string     // Assign target, Call callee, Variable name
	Value token.Literal

	X    *Expr // Unary/Grouping operand, Binary left, Assign value
	Y    *Expr // Binary right
	Args []*Expr
}

// IsConst reports whether Value holds a precomputed constant.
func (e *Expr) IsConst() bool {
	return e != nil && e.Value.Kind != token.LitNone
}

func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	switch e.Kind {
	case ExprAssign:
		return fmt.Sprintf("(%s = %s)", e.Name, e.X)
	case ExprBinary:
		return fmt.Sprintf("(%s %s %s)", e.X, e.Op.Lexeme(), e.Y)
	case ExprCall:
		s := e.Name + "("
		for i, a := range e.Args {
			if i > 0 {
				s += ", "
			}
			s += a.String()
		}
		return s + ")"
	case ExprGrouping:
		return "(" + e.X.String() + ")"
	case ExprLiteral:
		return literalString(e.Value)
	case ExprUnary:
		if e.Op == token.KwAs {
			return fmt.Sprintf("(%s as %s)", e.X, e.Type)
		}
		return fmt.Sprintf("(-%s)", e.X)
	case ExprVariable:
		return e.Name
	}
	return "<?>"
}

func literalString(v token.Literal) string {
	switch v.Kind {
	case token.LitInt:
		return strconv.FormatInt(v.Int, 10)
	case token.LitFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case token.LitString:
		return strconv.Quote(v.Str)
	}
	return "?"
}

// negate folds unary minus over a constant operand.
func negate(v token.Literal) token.Literal {
	switch v.Kind {
	case token.LitInt:
		v.Int = -v.Int
	case token.LitFloat:
		v.Float = -v.Float
	default:
		return token.Literal{}
	}
	return v
}

// convert folds an int/double cast over a constant operand.
func convert(v token.Literal, to types.ValueType) token.Literal {
	switch {
	case v.Kind == token.LitInt && to == types.Double:
		return token.Literal{Kind: token.LitFloat, Float: float64(v.Int)}
	case v.Kind == token.LitFloat && to == types.Int:
		return token.Literal{Kind: token.LitInt, Int: int64(v.Float)}
	case v.Kind == token.LitInt && to == types.Int, v.Kind == token.LitFloat && to == types.Double:
		return v
	}
	return token.Literal{}
}
