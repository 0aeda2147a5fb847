package token

var keywords = map[string]Kind{
	"fn":       KwFn,
	"let":      KwLet,
	"const":    KwConst,
	"as":       KwAs,
	"while":    KwWhile,
	"if":       KwIf,
	"else":     KwElse,
	"return":   KwReturn,
	"break":    KwBreak,
	"continue": KwContinue,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
