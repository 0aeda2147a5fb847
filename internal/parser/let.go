package parser

import (
	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/symbols"
	"c0c/internal/token"
	"c0c/internal/types"
)

// parseLet: ('let'|'const') IDENT ':' type ['=' expr] ';'.
// const требует инициализатор. Вне пользовательской функции память глобальная.
func (p *Parser) parseLet(isConst bool) error {
	kw := p.advance()
	nameTok, err := p.expect(token.Ident, diag.SynExpectIdentifier, "name after "+kw.Kind.Spelling())
	if err != nil {
		return err
	}
	if _, err := p.expect(token.Colon, diag.SynUnexpectedToken, "':' after "+quoted(nameTok.Text)); err != nil {
		return err
	}
	vt, _, err := p.parseValueType("variable type", types.Int, types.Double)
	if err != nil {
		return err
	}

	kind := symbols.Local
	if !p.scope.InFunction() {
		kind = symbols.Global
		if fn, ok := p.prog.Funcs.ByName(nameTok.Text); ok {
			return &diag.Error{Diag: diag.NewError(diag.SemaDuplicateSymbol, nameTok.Span,
				"global "+quoted(nameTok.Text)+" collides with a function").WithNote(fn.Span, "function declared here")}
		}
	}
	sym, err := p.scope.Declare(nameTok.Text, kind, vt, isConst, nameTok.Span)
	if err != nil {
		return err
	}

	if isConst && !p.at(token.Assign) {
		return p.unexpected(diag.SynUnexpectedToken, "'=' after constant "+quoted(nameTok.Text))
	}
	if p.at(token.Assign) {
		p.advance()
		p.emitAddr(sym)
		init, err := p.parseExpr()
		if err != nil {
			return err
		}
		if init.Type != vt {
			return p.errorf(diag.SemaTypeMismatch, init.Span,
				"cannot initialize %s of type %s with %s", quoted(sym.Name), vt, init.Type)
		}
		p.emit(bytecode.Op0(bytecode.OpStore64))
	}
	return p.expectSemicolon("declaration")
}
