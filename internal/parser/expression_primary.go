package parser

import (
	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/token"
	"c0c/internal/types"
)

// parsePrimary: literal | IDENT | '(' expr ')'.
func (p *Parser) parsePrimary() (*Expr, error) {
	tok := p.peek()
	switch tok.Kind {
	case token.IntLit, token.CharLit:
		p.advance()
		p.emit(bytecode.OpInt(bytecode.OpPush, tok.Lit.Int))
		return &Expr{Kind: ExprLiteral, Type: types.Int, Span: tok.Span, Value: token.Literal{Kind: token.LitInt, Int: tok.Lit.Int}}, nil

	case token.FloatLit:
		p.advance()
		p.emit(bytecode.OpFloat(bytecode.OpPush, tok.Lit.Float))
		return &Expr{Kind: ExprLiteral, Type: types.Double, Span: tok.Span, Value: tok.Lit}, nil

	case token.StringLit:
		p.advance()
		// каждое вхождение получает свою анонимную константу, без дедупликации
		sym, err := p.prog.Globals.AddString(tok.Lit.Str)
		if err != nil {
			return nil, err
		}
		sym.Span = tok.Span
		p.emit(bytecode.OpInt(bytecode.OpPush, int64(sym.Addr)))
		return &Expr{Kind: ExprLiteral, Type: types.String, Span: tok.Span, Value: tok.Lit}, nil

	case token.Ident:
		p.advance()
		sym, err := p.scope.Resolve(tok.Text, tok.Span)
		if err != nil {
			return nil, err
		}
		p.emitAddr(sym)
		p.emit(bytecode.Op0(bytecode.OpLoad64))
		return &Expr{Kind: ExprVariable, Type: sym.Type, Span: tok.Span, Name: sym.Name}, nil

	case token.LParen:
		open := p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		closeTok, err := p.expect(token.RParen, diag.SynUnclosedParen, "')' after expression")
		if err != nil {
			return nil, err
		}
		return &Expr{Kind: ExprGrouping, Type: inner.Type, Span: open.Span.Cover(closeTok.Span), Value: inner.Value, X: inner}, nil
	}
	return nil, p.unexpected(diag.SynExpectExpression, "expression")
}
