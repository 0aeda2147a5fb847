package parser

import (
	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/token"
)

func (p *Parser) parseCondition(keyword string) (*Expr, error) {
	cond, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !cond.Type.IsCondition() {
		return nil, p.errorf(diag.SemaTypeMismatch, cond.Span, "%s condition must be bool or int, found %s", keyword, cond.Type)
	}
	return cond, nil
}

// parseIf: 'if' expr block [ 'else' ( block | if ) ].
// Заглушки переходов патчатся на индекс сразу после соответствующей ветки.
func (p *Parser) parseIf() error {
	p.advance() // 'if'
	if _, err := p.parseCondition("if"); err != nil {
		return err
	}
	skipThen := p.emit(bytecode.OpInt(bytecode.OpBrFalse, 0))
	if err := p.parseBlock(); err != nil {
		return err
	}
	if !p.at(token.KwElse) {
		p.patch(skipThen, p.here())
		return nil
	}
	p.advance() // 'else'
	skipElse := p.emit(bytecode.OpInt(bytecode.OpBr, 0))
	p.patch(skipThen, p.here())

	var err error
	switch p.peek().Kind {
	case token.KwIf:
		err = p.parseIf()
	case token.LBrace:
		err = p.parseBlock()
	default:
		err = p.unexpected(diag.SynExpectBlock, "'{' or 'if' after 'else'")
	}
	if err != nil {
		return err
	}
	p.patch(skipElse, p.here())
	return nil
}

// parseWhile:
//
//	head: nop
//	      <cond>
//	      br.true +1
//	      br exit
//	      <body>
//	      br head
//	exit: nop
func (p *Parser) parseWhile() error {
	p.advance() // 'while'
	head := p.emit(bytecode.Op0(bytecode.OpNop))
	if _, err := p.parseCondition("while"); err != nil {
		return err
	}
	p.emit(bytecode.OpInt(bytecode.OpBrTrue, 1))
	toExit := p.emit(bytecode.OpInt(bytecode.OpBr, 0))

	outer := p.loop
	p.loop = head
	err := p.parseBlock()
	p.loop = outer
	if err != nil {
		return err
	}

	p.emit(bytecode.OpInt(bytecode.OpBr, bytecode.Displacement(p.here(), head)))
	exit := p.emit(bytecode.Op0(bytecode.OpNop))
	p.patch(toExit, exit)
	if err := p.fn.Code.PatchBreaks(head, exit); err != nil {
		return err
	}
	return nil
}

func (p *Parser) parseBreak() error {
	tok := p.advance()
	if p.loop == notInLoop {
		return p.errorf(diag.SynLoopControlOutside, tok.Span, "'break' outside of a loop")
	}
	if err := p.expectSemicolon("'break'"); err != nil {
		return err
	}
	p.emit(bytecode.OpInt(bytecode.OpBr, bytecode.BreakSentinel))
	return nil
}

func (p *Parser) parseContinue() error {
	tok := p.advance()
	if p.loop == notInLoop {
		return p.errorf(diag.SynLoopControlOutside, tok.Span, "'continue' outside of a loop")
	}
	if err := p.expectSemicolon("'continue'"); err != nil {
		return err
	}
	p.emit(bytecode.OpInt(bytecode.OpBr, bytecode.Displacement(p.here(), p.loop)))
	return nil
}

// parseReturn: 'return' [expr] ';'. Значение пишется в неявный слот arga 0.
func (p *Parser) parseReturn() error {
	retTok := p.advance()
	if !p.inUser {
		return p.errorf(diag.SynReturnOutsideFn, retTok.Span, "'return' outside of a function")
	}
	fn := p.fn
	if fn.IsVoid() {
		if !p.at(token.Semicolon) {
			return p.errorf(diag.SemaTypeMismatch, p.peek().Span, "void function %s must not return a value", quoted(fn.Name))
		}
	} else {
		if p.at(token.Semicolon) {
			return p.errorf(diag.SemaTypeMismatch, retTok.Span, "function %s must return %s", quoted(fn.Name), fn.Return)
		}
		p.emit(bytecode.OpInt(bytecode.OpArgA, 0))
		value, err := p.parseExpr()
		if err != nil {
			return err
		}
		if value.Type != fn.Return {
			return p.errorf(diag.SemaTypeMismatch, value.Span,
				"function %s returns %s, found %s", quoted(fn.Name), fn.Return, value.Type)
		}
		p.emit(bytecode.Op0(bytecode.OpStore64))
	}
	if err := p.expectSemicolon("return"); err != nil {
		return err
	}
	p.emit(bytecode.Op0(bytecode.OpRet))
	return nil
}
