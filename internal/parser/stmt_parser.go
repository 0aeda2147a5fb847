package parser

import (
	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/token"
	"c0c/internal/types"
)

// parseDecl - диспетчер: fn / let / const или оператор.
func (p *Parser) parseDecl() error {
	switch p.peek().Kind {
	case token.KwFn:
		if p.inUser {
			return p.errorf(diag.SynNestedFn, p.peek().Span, "functions can only be declared at top level")
		}
		return p.parseFn()
	case token.KwLet:
		return p.parseLet(false)
	case token.KwConst:
		return p.parseLet(true)
	default:
		return p.parseStmt()
	}
}

func (p *Parser) parseStmt() error {
	switch p.peek().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwBreak:
		return p.parseBreak()
	case token.KwContinue:
		return p.parseContinue()
	case token.KwReturn:
		return p.parseReturn()
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		p.advance()
		return nil
	default:
		return p.parseExprStmt()
	}
}

// parseBlock: '{' { decl } '}' в новой вложенной области видимости.
func (p *Parser) parseBlock() error {
	if _, err := p.expect(token.LBrace, diag.SynExpectBlock, "'{'"); err != nil {
		return err
	}
	outer := p.scope
	p.scope = outer.EnterBlock()
	defer func() { p.scope = outer }()
	return p.parseBlockBody()
}

// parseBlockBody parses declarations up to and including the closing '}'.
func (p *Parser) parseBlockBody() error {
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			return p.unexpected(diag.SynUnclosedBrace, "'}'")
		}
		if err := p.parseDecl(); err != nil {
			return err
		}
	}
	p.advance()
	return nil
}

// parseExprStmt: expr ';'. Непустое значение снимается со стека.
func (p *Parser) parseExprStmt() error {
	expr, err := p.parseExpr()
	if err != nil {
		return err
	}
	if err := p.expectSemicolon("expression"); err != nil {
		return err
	}
	if expr.Type != types.Void {
		p.emit(bytecode.Op0(bytecode.OpPop))
	}
	return nil
}
