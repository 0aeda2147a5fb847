package parser

import (
	"c0c/internal/bytecode"
	"c0c/internal/cfg"
	"c0c/internal/diag"
	"c0c/internal/program"
	"c0c/internal/source"
	"c0c/internal/symbols"
	"c0c/internal/token"
	"c0c/internal/types"
)

type param struct {
	name    token.Token
	vt      types.ValueType
	isConst bool
}

// parseFn: 'fn' IDENT '(' [params] ')' '->' type '{' body '}'.
// Функция регистрируется сразу после сигнатуры, поэтому рекурсия работает.
func (p *Parser) parseFn() error {
	p.advance() // 'fn'
	nameTok, err := p.expect(token.Ident, diag.SynExpectIdentifier, "function name")
	if err != nil {
		return err
	}
	params, err := p.parseParams()
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Arrow, diag.SynUnexpectedToken, "'->' after parameters"); err != nil {
		return err
	}
	ret, _, err := p.parseValueType("return type", types.Void, types.Int, types.Double)
	if err != nil {
		return err
	}

	paramTypes := make([]types.ValueType, len(params))
	for i, prm := range params {
		paramTypes[i] = prm.vt
	}
	fn, err := p.prog.Funcs.Declare(nameTok.Text, ret, paramTypes, nameTok.Span)
	if err != nil {
		return err
	}

	sp := p.traceSpan("fn:" + fn.Name)
	defer sp.End("")

	scope := p.prog.Root.EnterFunction()
	if ret != types.Void {
		scope.Frame().Args.Next() // неявный слот результата, arga 0
	}
	for _, prm := range params {
		if _, err := scope.Declare(prm.name.Text, symbols.Param, prm.vt, prm.isConst, prm.name.Span); err != nil {
			return err
		}
	}

	if _, err := p.expect(token.LBrace, diag.SynExpectBlock, "'{' before function body"); err != nil {
		return err
	}
	savedScope, savedFn, savedLoop := p.scope, p.fn, p.loop
	p.scope, p.fn, p.inUser, p.loop = scope, fn, true, notInLoop
	err = p.parseBlockBody()
	p.scope, p.fn, p.inUser, p.loop = savedScope, savedFn, false, savedLoop
	if err != nil {
		return err
	}

	return p.finishFn(fn, scope.Frame(), nameTok.Span)
}

// parseParams: '(' [ ['const'] IDENT ':' type { ',' ... } ] ')'.
func (p *Parser) parseParams() ([]param, error) {
	if _, err := p.expect(token.LParen, diag.SynUnexpectedToken, "'(' after function name"); err != nil {
		return nil, err
	}
	var params []param
	if !p.at(token.RParen) {
		for {
			isConst := false
			if p.at(token.KwConst) {
				p.advance()
				isConst = true
			}
			nameTok, err := p.expect(token.Ident, diag.SynExpectIdentifier, "parameter name")
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.Colon, diag.SynUnexpectedToken, "':' after parameter name"); err != nil {
				return nil, err
			}
			vt, _, err := p.parseValueType("parameter type", types.Int, types.Double)
			if err != nil {
				return nil, err
			}
			params = append(params, param{name: nameTok, vt: vt, isConst: isConst})
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
	}
	if _, err := p.expect(token.RParen, diag.SynUnclosedParen, "')' after parameters"); err != nil {
		return nil, err
	}
	return params, nil
}

// finishFn appends the trailing instruction, runs the reachability check for
// value-returning functions and seals the code.
func (p *Parser) finishFn(fn *program.Function, frame *symbols.Frame, nameSpan source.Span) error {
	if fn.IsVoid() {
		p.emitTo(fn, bytecode.Op0(bytecode.OpRet))
	} else {
		p.emitTo(fn, bytecode.Op0(bytecode.OpNop))
	}
	if p.fault != nil {
		return p.fault
	}
	if !fn.IsVoid() {
		if err := cfg.Check(fn.Code.Instructions()); err != nil {
			if de, ok := diag.AsError(err); ok && de.Diag.Code == diag.SemaMissingReturn {
				de.Diag.Primary = nameSpan
				de.Diag.Message = "function " + quoted(fn.Name) + " " + de.Diag.Message
			}
			return err
		}
	}
	fn.Finish(frame)
	return nil
}

func (p *Parser) emitTo(fn *program.Function, in bytecode.Instruction) {
	if _, err := fn.Code.Emit(in); err != nil && p.fault == nil {
		p.fault = err
	}
}
