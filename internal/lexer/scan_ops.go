package lexer

import (
	"fmt"

	"c0c/internal/diag"
	"c0c/internal/token"
)

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()

	// двухсимвольные сначала (жадность)
	switch {
	case lx.try2('-', '>'):
		return lx.op(start, token.Arrow)
	case lx.try2('=', '='):
		return lx.op(start, token.EqEq)
	case lx.try2('!', '='):
		return lx.op(start, token.BangEq)
	case lx.try2('<', '='):
		return lx.op(start, token.LtEq)
	case lx.try2('>', '='):
		return lx.op(start, token.GtEq)
	}

	b := lx.cursor.Bump()
	var kind token.Kind
	switch b {
	case '+':
		kind = token.Plus
	case '-':
		kind = token.Minus
	case '*':
		kind = token.Star
	case '/':
		kind = token.Slash
	case '=':
		kind = token.Assign
	case '<':
		kind = token.Lt
	case '>':
		kind = token.Gt
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case ',':
		kind = token.Comma
	case ':':
		kind = token.Colon
	case ';':
		kind = token.Semicolon
	default:
		// съедаем всю руну, чтобы не резать UTF-8 посередине
		for !lx.cursor.EOF() && lx.cursor.Peek()&0xC0 == 0x80 {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.errLex(diag.LexUnknownChar, sp, fmt.Sprintf("unknown character %q", lx.text(sp)))
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
	}
	return lx.op(start, kind)
}

func (lx *Lexer) op(start Mark, kind token.Kind) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}
