package parser

import (
	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/token"
	"c0c/internal/types"
)

// Приоритеты (от слабого к сильному):
// assignment < comparison < additive < multiplicative < as < unary < call/primary.
// Каждый уровень эмитит код своего оператора сразу при разборе.

func (p *Parser) parseExpr() (*Expr, error) {
	return p.parseAssignment()
}

// parseAssignment: IDENT '=' assignment | comparison.
// Адрес цели кладётся до вычисления правой части.
func (p *Parser) parseAssignment() (*Expr, error) {
	if !p.at(token.Ident) || p.peekNext().Kind != token.Assign {
		return p.parseComparison()
	}
	nameTok := p.advance()
	sym, err := p.scope.Resolve(nameTok.Text, nameTok.Span)
	if err != nil {
		return nil, err
	}
	if sym.Const {
		return nil, &diag.Error{Diag: diag.NewError(diag.SemaConstAssignment, nameTok.Span,
			"cannot assign to constant "+quoted(sym.Name)).WithNote(sym.Span, "declared as const here")}
	}
	p.advance() // '='
	p.emitAddr(sym)

	value, err := p.parseAssignment()
	if err != nil {
		return nil, err
	}
	if value.Type != sym.Type {
		return nil, p.errorf(diag.SemaTypeMismatch, value.Span,
			"cannot assign %s to %s of type %s", value.Type, quoted(sym.Name), sym.Type)
	}
	p.emit(bytecode.Op0(bytecode.OpStore64))
	return &Expr{
		Kind: ExprAssign,
		Type: types.Void,
		Span: nameTok.Span.Cover(value.Span),
		Name: sym.Name,
		X:    value,
	}, nil
}

// parseComparison: additive { ('<'|'<='|'>'|'>='|'=='|'!=') additive }.
func (p *Parser) parseComparison() (*Expr, error) {
	left, err := p.parseAdditive()
	if err != nil {
		return nil, err
	}
	for p.peek().IsComparison() {
		opTok := p.advance()
		right, err := p.parseAdditive()
		if err != nil {
			return nil, err
		}
		if err := p.checkOperands(opTok, left, right); err != nil {
			return nil, err
		}
		if left.Type == types.Int {
			p.emit(bytecode.Op0(bytecode.OpCmpI))
		} else {
			p.emit(bytecode.Op0(bytecode.OpCmpF))
		}
		for _, op := range compareTail(opTok.Kind) {
			p.emit(bytecode.Op0(op))
		}
		left = &Expr{Kind: ExprBinary, Type: types.Bool, Span: left.Span.Cover(right.Span), Op: opTok.Kind, X: left, Y: right}
	}
	return left, nil
}

// compareTail lists what follows cmp for each operator.
// cmp leaves -1, 0 or 1; not maps 0 to 1 and anything else to 0.
func compareTail(op token.Kind) []bytecode.Opcode {
	switch op {
	case token.Lt:
		return []bytecode.Opcode{bytecode.OpSetLt}
	case token.Gt:
		return []bytecode.Opcode{bytecode.OpSetGt}
	case token.LtEq:
		return []bytecode.Opcode{bytecode.OpSetGt, bytecode.OpNot}
	case token.GtEq:
		return []bytecode.Opcode{bytecode.OpSetLt, bytecode.OpNot}
	case token.EqEq:
		return []bytecode.Opcode{bytecode.OpNot}
	default: // '!=': ненулевой результат cmp уже истина
		return nil
	}
}

// parseAdditive: multiplicative { ('+'|'-') multiplicative }.
func (p *Parser) parseAdditive() (*Expr, error) {
	left, err := p.parseMultiplicative()
	if err != nil {
		return nil, err
	}
	for p.atOr(token.Plus, token.Minus) {
		opTok := p.advance()
		right, err := p.parseMultiplicative()
		if err != nil {
			return nil, err
		}
		if left, err = p.arith(opTok, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

// parseMultiplicative: cast { ('*'|'/') cast }.
func (p *Parser) parseMultiplicative() (*Expr, error) {
	left, err := p.parseCast()
	if err != nil {
		return nil, err
	}
	for p.atOr(token.Star, token.Slash) {
		opTok := p.advance()
		right, err := p.parseCast()
		if err != nil {
			return nil, err
		}
		if left, err = p.arith(opTok, left, right); err != nil {
			return nil, err
		}
	}
	return left, nil
}

var arithOps = map[token.Kind][2]bytecode.Opcode{
	token.Plus:  {bytecode.OpAddI, bytecode.OpAddF},
	token.Minus: {bytecode.OpSubI, bytecode.OpSubF},
	token.Star:  {bytecode.OpMulI, bytecode.OpMulF},
	token.Slash: {bytecode.OpDivI, bytecode.OpDivF},
}

func (p *Parser) arith(opTok token.Token, left, right *Expr) (*Expr, error) {
	if err := p.checkOperands(opTok, left, right); err != nil {
		return nil, err
	}
	ops := arithOps[opTok.Kind]
	if left.Type == types.Int {
		p.emit(bytecode.Op0(ops[0]))
	} else {
		p.emit(bytecode.Op0(ops[1]))
	}
	return &Expr{Kind: ExprBinary, Type: left.Type, Span: left.Span.Cover(right.Span), Op: opTok.Kind, X: left, Y: right}, nil
}

// checkOperands requires identical Int or Double operand types.
func (p *Parser) checkOperands(opTok token.Token, left, right *Expr) error {
	if left.Type != right.Type {
		return p.errorf(diag.SemaTypeMismatch, opTok.Span,
			"operands of %s have different types: %s and %s", opTok.Kind.Spelling(), left.Type, right.Type)
	}
	if !left.Type.IsNumeric() {
		return p.errorf(diag.SemaTypeMismatch, opTok.Span,
			"operator %s is not defined for %s", opTok.Kind.Spelling(), left.Type)
	}
	return nil
}

// parseCast: unary { 'as' ('int'|'double') }.
func (p *Parser) parseCast() (*Expr, error) {
	expr, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.at(token.KwAs) {
		asTok := p.advance()
		target, tyTok, err := p.parseValueType("cast target", types.Int, types.Double)
		if err != nil {
			return nil, err
		}
		if expr.Type == types.String || expr.Type == types.Void {
			return nil, p.errorf(diag.SemaTypeMismatch, asTok.Span, "cannot convert %s to %s", expr.Type, target)
		}
		switch {
		case expr.Type.IsIntRepr() && target == types.Double:
			p.emit(bytecode.Op0(bytecode.OpIToF))
		case expr.Type == types.Double && target == types.Int:
			p.emit(bytecode.Op0(bytecode.OpFToI))
		}
		expr = &Expr{
			Kind:  ExprUnary,
			Type:  target,
			Span:  expr.Span.Cover(tyTok.Span),
			Op:    token.KwAs,
			Value: convert(expr.Value, target),
			X:     expr,
		}
	}
	return expr, nil
}

// parseUnary: '-' unary | call.
func (p *Parser) parseUnary() (*Expr, error) {
	if !p.at(token.Minus) {
		return p.parseCall()
	}
	opTok := p.advance()
	operand, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	switch operand.Type {
	case types.Int:
		p.emit(bytecode.Op0(bytecode.OpNegI))
	case types.Double:
		p.emit(bytecode.Op0(bytecode.OpNegF))
	default:
		return nil, p.errorf(diag.SemaTypeMismatch, opTok.Span, "cannot negate %s", operand.Type)
	}
	return &Expr{
		Kind:  ExprUnary,
		Type:  operand.Type,
		Span:  opTok.Span.Cover(operand.Span),
		Op:    token.Minus,
		Value: negate(operand.Value),
		X:     operand,
	}, nil
}
