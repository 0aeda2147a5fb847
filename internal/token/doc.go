// Package token defines lexical token kinds for the c0 language.
// Invariants:
//   - Token.Text is the exact lexeme as it appears in the source.
//   - Token.Span matches Text exactly (Start..End) and Token.Line is the
//     1-based line of Span.Start.
//   - Literal tokens carry their decoded value in Token.Lit; other tokens
//     have Lit.Kind == LitNone.
//   - Built-in type names (int, double, void) are identifiers. They are
//     recognized by the parser, not the lexer.
package token
