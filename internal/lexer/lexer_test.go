package lexer_test

import (
	"testing"

	"c0c/internal/diag"
	"c0c/internal/lexer"
	"c0c/internal/source"
	"c0c/internal/token"
)

// makeTestLexer создаёт лексер для тестовой строки
func makeTestLexer(input string) (*lexer.Lexer, *diag.Bag) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c0", []byte(input))
	bag := diag.NewBag(100)
	lx := lexer.New(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	return lx, bag
}

func collect(t *testing.T, input string) ([]token.Token, *diag.Bag) {
	t.Helper()
	lx, bag := makeTestLexer(input)
	var toks []token.Token
	for {
		tok := lx.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks, bag
		}
		if len(toks) > 1000 {
			t.Fatalf("lexer did not reach EOF")
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(toks))
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestKindsSequence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{
			name:  "function header",
			input: "fn f(a: int) -> int {",
			want: []token.Kind{token.KwFn, token.Ident, token.LParen, token.Ident, token.Colon, token.Ident,
				token.RParen, token.Arrow, token.Ident, token.LBrace, token.EOF},
		},
		{
			name:  "comparisons are maximal munch",
			input: "a<=b>=c==d!=e<f>g=h",
			want: []token.Kind{token.Ident, token.LtEq, token.Ident, token.GtEq, token.Ident, token.EqEq,
				token.Ident, token.BangEq, token.Ident, token.Lt, token.Ident, token.Gt, token.Ident,
				token.Assign, token.Ident, token.EOF},
		},
		{
			name:  "comments are skipped",
			input: "let // trailing words ; {\nx / y",
			want:  []token.Kind{token.KwLet, token.Ident, token.Slash, token.Ident, token.EOF},
		},
		{
			name:  "keywords",
			input: "let const as while if else return break continue",
			want: []token.Kind{token.KwLet, token.KwConst, token.KwAs, token.KwWhile, token.KwIf, token.KwElse,
				token.KwReturn, token.KwBreak, token.KwContinue, token.EOF},
		},
		{
			name:  "arithmetic",
			input: "-a+b*c/d;",
			want: []token.Kind{token.Minus, token.Ident, token.Plus, token.Ident, token.Star, token.Ident,
				token.Slash, token.Ident, token.Semicolon, token.EOF},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, bag := collect(t, tt.input)
			if bag.HasErrors() {
				t.Fatalf("unexpected diagnostics: %v", bag.Items())
			}
			got := kinds(toks)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %s, want %s", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNumbers(t *testing.T) {
	tests := []struct {
		input string
		kind  token.Kind
		i     int64
		f     float64
		text  string
	}{
		{"42", token.IntLit, 42, 0, "42"},
		{"9223372036854775807", token.IntLit, 9223372036854775807, 0, "9223372036854775807"},
		{"3.25", token.FloatLit, 0, 3.25, "3.25"},
		{"1.5e2", token.FloatLit, 0, 150, "1.5e2"},
		{"2.0E-1", token.FloatLit, 0, 0.2, "2.0E-1"},
	}
	for _, tt := range tests {
		toks, bag := collect(t, tt.input)
		if bag.HasErrors() {
			t.Fatalf("%q: unexpected diagnostics", tt.input)
		}
		tok := toks[0]
		if tok.Kind != tt.kind || tok.Text != tt.text {
			t.Fatalf("%q: got %s %q", tt.input, tok.Kind, tok.Text)
		}
		if tt.kind == token.IntLit && tok.Lit.Int != tt.i {
			t.Fatalf("%q: got %d", tt.input, tok.Lit.Int)
		}
		if tt.kind == token.FloatLit && tok.Lit.Float != tt.f {
			t.Fatalf("%q: got %g", tt.input, tok.Lit.Float)
		}
	}
}

func TestExponentWithoutDigitsIsNotConsumed(t *testing.T) {
	toks, _ := collect(t, "1.5e")
	got := kinds(toks)
	want := []token.Kind{token.FloatLit, token.Ident, token.EOF}
	if len(got) != 3 || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("got %v, want %v", got, want)
	}
	if toks[0].Text != "1.5" {
		t.Fatalf("float text %q", toks[0].Text)
	}
}

func TestIntegerOverflow(t *testing.T) {
	toks, bag := collect(t, "9223372036854775808")
	if toks[0].Kind != token.Invalid {
		t.Fatalf("got %s, want Invalid", toks[0].Kind)
	}
	if bag.Len() != 1 || bag.Items()[0].Code != diag.LexBadNumber {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestStringAndCharLiterals(t *testing.T) {
	toks, bag := collect(t, `"a\tb\"c\\" 'x' '\n' '\''`)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %v", bag.Items())
	}
	if toks[0].Kind != token.StringLit || toks[0].Lit.Str != "a\tb\"c\\" {
		t.Fatalf("string: %s %q", toks[0].Kind, toks[0].Lit.Str)
	}
	wantChars := []int64{'x', '\n', '\''}
	for i, want := range wantChars {
		tok := toks[i+1]
		if tok.Kind != token.CharLit || tok.Lit.Int != want {
			t.Fatalf("char %d: %s %d", i, tok.Kind, tok.Lit.Int)
		}
	}
}

func TestStringIsNFC(t *testing.T) {
	toks, _ := collect(t, "\"e\u0301\"")
	if toks[0].Lit.Str != "\u00e9" {
		t.Fatalf("got %q, want NFC composed form", toks[0].Lit.Str)
	}
}

func TestLexErrors(t *testing.T) {
	tests := []struct {
		input string
		code  diag.Code
	}{
		{`"abc`, diag.LexUnterminatedString},
		{"\"ab\nc\"", diag.LexUnterminatedString},
		{`"a\qb"`, diag.LexBadEscape},
		{`'ab'`, diag.LexBadChar},
		{`''`, diag.LexBadChar},
		{`@`, diag.LexUnknownChar},
		{`!`, diag.LexUnknownChar},
	}
	for _, tt := range tests {
		toks, bag := collect(t, tt.input)
		if !bag.HasErrors() {
			t.Fatalf("%q: expected a diagnostic", tt.input)
		}
		if got := bag.Items()[0].Code; got != tt.code {
			t.Fatalf("%q: got %s, want %s", tt.input, got.ID(), tt.code.ID())
		}
		if toks[len(toks)-1].Kind != token.EOF {
			t.Fatalf("%q: stream must end with EOF", tt.input)
		}
	}
}

func TestLineNumbers(t *testing.T) {
	toks, _ := collect(t, "let\n\n  x\r\n;")
	want := []uint32{1, 3, 4}
	for i, line := range want {
		if toks[i].Line != line {
			t.Fatalf("token %d (%s): line %d, want %d", i, toks[i].Kind, toks[i].Line, line)
		}
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("a b")
	if p := lx.Peek(); p.Text != "a" {
		t.Fatalf("peek: %q", p.Text)
	}
	if n := lx.Next(); n.Text != "a" {
		t.Fatalf("next after peek: %q", n.Text)
	}
	if n := lx.Next(); n.Text != "b" {
		t.Fatalf("second: %q", n.Text)
	}
}

func TestTokenizeEndsWithEOF(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.c0", []byte(""))
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{})
	if len(toks) != 1 || toks[0].Kind != token.EOF {
		t.Fatalf("got %v", toks)
	}
}
