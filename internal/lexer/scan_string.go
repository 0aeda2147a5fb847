package lexer

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"c0c/internal/diag"
	"c0c/internal/token"
)

// scanString: "..." с escape \\ \" \' \n \r \t. Значение приводится к NFC.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '"'
	var sb strings.Builder
	bad := false
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		if b == '"' {
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			if bad {
				return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
			}
			return token.Token{
				Kind: token.StringLit,
				Span: sp,
				Text: lx.text(sp),
				Lit:  token.Literal{Kind: token.LitString, Str: norm.NFC.String(sb.String())},
			}
		}
		if b == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		}
		if b == '\\' {
			escStart := lx.cursor.Mark()
			lx.cursor.Bump()
			v, ok := escapeValue(lx.cursor.Peek())
			if !ok {
				if lx.cursor.Peek() != '\n' {
					lx.cursor.Bump()
				}
				lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(escStart), "unknown escape sequence")
				bad = true
				continue
			}
			lx.cursor.Bump()
			sb.WriteByte(v)
			continue
		}
		sb.WriteByte(lx.cursor.Bump())
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

// scanChar: 'c' или '\n'; значение - код символа.
func (lx *Lexer) scanChar() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // opening '\''

	var value rune
	ok := true
	switch b := lx.cursor.Peek(); {
	case lx.cursor.EOF(), b == '\'', b == '\n':
		ok = false
	case b == '\\':
		lx.cursor.Bump()
		v, esc := escapeValue(lx.cursor.Peek())
		if !esc {
			ok = false
			break
		}
		lx.cursor.Bump()
		value = rune(v)
	case b < utf8.RuneSelf:
		lx.cursor.Bump()
		value = rune(b)
	default:
		r, size := utf8.DecodeRune(lx.file.Content[lx.cursor.Off:lx.cursor.Limit])
		for range size {
			lx.cursor.Bump()
		}
		value = r
	}

	if !ok || !lx.cursor.Eat('\'') {
		for !lx.cursor.EOF() && lx.cursor.Peek() != '\'' && lx.cursor.Peek() != '\n' {
			lx.cursor.Bump()
		}
		lx.cursor.Eat('\'')
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexBadChar, sp, "malformed character literal")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.CharLit, Span: sp, Text: lx.text(sp), Lit: token.Literal{Kind: token.LitInt, Int: int64(value)}}
}
