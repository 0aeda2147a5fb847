package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	KwFn       // fn
	KwLet      // let
	KwConst    // const
	KwAs       // as
	KwWhile    // while
	KwIf       // if
	KwElse     // else
	KwReturn   // return
	KwBreak    // break
	KwContinue // continue

	// IntLit represents an unsigned decimal integer literal.
	IntLit
	// FloatLit represents a double literal (digits '.' digits [exponent]).
	FloatLit
	// CharLit represents a single-quoted character literal.
	CharLit
	// StringLit represents a double-quoted string literal.
	StringLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	EqEq      // ==
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	Arrow     // ->
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
	Comma     // ,
	Colon     // :
	Semicolon // ;
)

var kindNames = [...]string{
	Invalid:    "Invalid",
	EOF:        "EOF",
	Ident:      "Ident",
	KwFn:       "KwFn",
	KwLet:      "KwLet",
	KwConst:    "KwConst",
	KwAs:       "KwAs",
	KwWhile:    "KwWhile",
	KwIf:       "KwIf",
	KwElse:     "KwElse",
	KwReturn:   "KwReturn",
	KwBreak:    "KwBreak",
	KwContinue: "KwContinue",
	IntLit:     "IntLit",
	FloatLit:   "FloatLit",
	CharLit:    "CharLit",
	StringLit:  "StringLit",
	Plus:       "Plus",
	Minus:      "Minus",
	Star:       "Star",
	Slash:      "Slash",
	Assign:     "Assign",
	EqEq:       "EqEq",
	BangEq:     "BangEq",
	Lt:         "Lt",
	LtEq:       "LtEq",
	Gt:         "Gt",
	GtEq:       "GtEq",
	Arrow:      "Arrow",
	LParen:     "LParen",
	RParen:     "RParen",
	LBrace:     "LBrace",
	RBrace:     "RBrace",
	Comma:      "Comma",
	Colon:      "Colon",
	Semicolon:  "Semicolon",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

var kindSpelling = map[Kind]string{
	KwFn: "fn", KwLet: "let", KwConst: "const", KwAs: "as", KwWhile: "while",
	KwIf: "if", KwElse: "else", KwReturn: "return", KwBreak: "break", KwContinue: "continue",
	Plus: "+", Minus: "-", Star: "*", Slash: "/", Assign: "=", EqEq: "==", BangEq: "!=",
	Lt: "<", LtEq: "<=", Gt: ">", GtEq: ">=", Arrow: "->",
	LParen: "(", RParen: ")", LBrace: "{", RBrace: "}",
	Comma: ",", Colon: ":", Semicolon: ";",
}

// Spelling returns the fixed source text of keywords and punctuation,
// or a descriptive name for the remaining kinds. Used in diagnostics.
func (k Kind) Spelling() string {
	if s, ok := kindSpelling[k]; ok {
		return "'" + s + "'"
	}
	switch k {
	case EOF:
		return "end of file"
	case Ident:
		return "identifier"
	case IntLit, FloatLit:
		return "number"
	case CharLit:
		return "character literal"
	case StringLit:
		return "string literal"
	default:
		return k.String()
	}
}

// Lexeme returns the fixed source text of operators and keywords, "" otherwise.
func (k Kind) Lexeme() string {
	return kindSpelling[k]
}
