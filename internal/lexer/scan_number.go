package lexer

import (
	"strconv"

	"c0c/internal/diag"
	"c0c/internal/token"
)

// scanNumber: digits ['.' digits [('e'|'E') ['+'|'-'] digits]].
// Экспонента без цифр не поглощается.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.eatDigits()

	isFloat := false
	if b0, b1, ok := lx.cursor.Peek2(); ok && b0 == '.' && isDec(b1) {
		isFloat = true
		lx.cursor.Bump()
		lx.eatDigits()

		exp := lx.cursor.Mark()
		if lx.cursor.Eat('e') || lx.cursor.Eat('E') {
			if !lx.cursor.Eat('+') {
				lx.cursor.Eat('-')
			}
			if isDec(lx.cursor.Peek()) {
				lx.eatDigits()
			} else {
				lx.cursor.Reset(exp)
			}
		}
	}

	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)
	if isFloat {
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			lx.errLex(diag.LexBadNumber, sp, "double literal out of range: "+text)
			return token.Token{Kind: token.Invalid, Span: sp, Text: text}
		}
		return token.Token{Kind: token.FloatLit, Span: sp, Text: text, Lit: token.Literal{Kind: token.LitFloat, Float: v}}
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		lx.errLex(diag.LexBadNumber, sp, "integer literal out of range: "+text)
		return token.Token{Kind: token.Invalid, Span: sp, Text: text}
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text, Lit: token.Literal{Kind: token.LitInt, Int: v}}
}

func (lx *Lexer) eatDigits() {
	for isDec(lx.cursor.Peek()) {
		lx.cursor.Bump()
	}
}
