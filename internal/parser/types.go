package parser

import (
	"slices"
	"strings"

	"c0c/internal/diag"
	"c0c/internal/token"
	"c0c/internal/types"
)

// parseValueType reads a type name and checks it against allowed.
func (p *Parser) parseValueType(what string, allowed ...types.ValueType) (types.ValueType, token.Token, error) {
	names := make([]string, 0, len(allowed))
	for _, vt := range allowed {
		names = append(names, quoted(vt.String()))
	}
	want := strings.Join(names, " or ")

	if !p.at(token.Ident) {
		return types.Void, token.Token{}, p.unexpected(diag.SynExpectType, want+" as "+what)
	}
	tok := p.advance()
	vt, ok := types.FromName(tok.Text)
	if !ok || !slices.Contains(allowed, vt) {
		return types.Void, tok, p.errorf(diag.SynExpectType, tok.Span, "%s must be %s, found %s", what, want, quoted(tok.Text))
	}
	return vt, tok, nil
}
