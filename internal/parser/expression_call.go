package parser

import (
	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/program"
	"c0c/internal/token"
	"c0c/internal/types"
)

const maxCallArgs = 255

// parseCall: IDENT '(' args ')' | primary.
func (p *Parser) parseCall() (*Expr, error) {
	if !p.at(token.Ident) || p.peekNext().Kind != token.LParen {
		return p.parsePrimary()
	}
	nameTok := p.advance()
	p.advance() // '('

	if b, ok := program.LookupBuiltin(nameTok.Text); ok {
		return p.parseBuiltinCall(nameTok, b)
	}
	callee, ok := p.prog.Funcs.ByName(nameTok.Text)
	if !ok {
		return nil, p.errorf(diag.SemaUnknownSymbol, nameTok.Span, "unknown function %s", quoted(nameTok.Text))
	}

	// слот результата резервируется до аргументов
	if !callee.IsVoid() {
		p.emit(bytecode.OpInt(bytecode.OpStackAlloc, 1))
	}
	args, closeTok, err := p.parseArgs(nameTok, func(i int, arg *Expr) error {
		if i >= len(callee.Params) {
			return p.errorf(diag.SemaArgCount, arg.Span, "too many arguments to %s: want %d", quoted(callee.Name), len(callee.Params))
		}
		if arg.Type != callee.Params[i] {
			return p.errorf(diag.SemaTypeMismatch, arg.Span,
				"argument %d of %s: expected %s, found %s", i+1, quoted(callee.Name), callee.Params[i], arg.Type)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(args) != len(callee.Params) {
		return nil, p.errorf(diag.SemaArgCount, closeTok.Span,
			"%s expects %d argument(s), got %d", quoted(callee.Name), len(callee.Params), len(args))
	}
	p.emit(bytecode.OpInt(bytecode.OpCall, int64(callee.ID)))
	return &Expr{Kind: ExprCall, Type: callee.Return, Span: nameTok.Span.Cover(closeTok.Span), Name: callee.Name, Args: args}, nil
}

func (p *Parser) parseBuiltinCall(nameTok token.Token, b program.Builtin) (*Expr, error) {
	args, closeTok, err := p.parseArgs(nameTok, func(i int, arg *Expr) error {
		if i >= len(b.Params) {
			return p.errorf(diag.SemaArgCount, arg.Span, "too many arguments to %s: want %d", quoted(b.Name), len(b.Params))
		}
		if !b.Accepts(i, arg.Type) {
			return p.errorf(diag.SemaTypeMismatch, arg.Span,
				"argument %d of %s: expected %s, found %s", i+1, quoted(b.Name), b.Params[i], arg.Type)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(args) != len(b.Params) {
		return nil, p.errorf(diag.SemaArgCount, closeTok.Span,
			"%s expects %d argument(s), got %d", quoted(b.Name), len(b.Params), len(args))
	}
	p.emit(bytecode.Op0(b.Op))
	return &Expr{Kind: ExprCall, Type: b.Return, Span: nameTok.Span.Cover(closeTok.Span), Name: b.Name, Args: args}, nil
}

// parseArgs parses "expr {, expr} )" after '(' and checks each argument as soon as its code is emitted.
func (p *Parser) parseArgs(nameTok token.Token, check func(i int, arg *Expr) error) ([]*Expr, token.Token, error) {
	var args []*Expr
	if !p.at(token.RParen) {
		for {
			if len(args) >= maxCallArgs {
				return nil, token.Token{}, p.errorf(diag.SynTooManyArgs, p.peek().Span, "more than %d arguments", maxCallArgs)
			}
			arg, err := p.parseExpr()
			if err != nil {
				return nil, token.Token{}, err
			}
			if arg.Type == types.Void {
				return nil, token.Token{}, p.errorf(diag.SemaTypeMismatch, arg.Span, "void value used as an argument")
			}
			if err := check(len(args), arg); err != nil {
				return nil, token.Token{}, err
			}
			args = append(args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	closeTok, err := p.expect(token.RParen, diag.SynUnclosedParen, "')' after arguments of "+quoted(nameTok.Text))
	if err != nil {
		return nil, token.Token{}, err
	}
	return args, closeTok, nil
}
