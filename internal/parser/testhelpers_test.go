package parser_test

import (
	"context"
	"testing"

	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/lexer"
	"c0c/internal/parser"
	"c0c/internal/program"
	"c0c/internal/source"
)

// compile runs lexer and parser over src.
func compile(t *testing.T, src string) (*program.Program, error) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.c0", []byte(src))
	bag := diag.NewBag(16)
	toks := lexer.Tokenize(fs.Get(id), lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	if bag.HasErrors() {
		t.Fatalf("lex errors: %s", diag.FormatShort(bag.Items(), fs, false))
	}
	prog := program.New()
	err := parser.Parse(context.Background(), toks, prog, parser.Options{})
	return prog, err
}

func mustCompile(t *testing.T, src string) *program.Program {
	t.Helper()
	prog, err := compile(t, src)
	if err != nil {
		t.Fatalf("compile failed: %v", err)
	}
	if err := prog.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return prog
}

func expectCode(t *testing.T, src string, want diag.Code) *diag.Error {
	t.Helper()
	_, err := compile(t, src)
	if err == nil {
		t.Fatalf("expected %s, compile succeeded", want.ID())
	}
	de, ok := diag.AsError(err)
	if !ok {
		t.Fatalf("expected *diag.Error, got %T: %v", err, err)
	}
	if de.Diag.Code != want {
		t.Fatalf("got %s (%s), want %s", de.Diag.Code.ID(), de.Diag.Message, want.ID())
	}
	return de
}

func fn(t *testing.T, prog *program.Program, name string) *program.Function {
	t.Helper()
	f, ok := prog.Funcs.ByName(name)
	if !ok {
		t.Fatalf("function %q not found", name)
	}
	return f
}

// listing renders code as one instruction per line.
func listing(code []bytecode.Instruction) []string {
	out := make([]string, len(code))
	for i, in := range code {
		out[i] = in.String()
	}
	return out
}

func sameListing(t *testing.T, got []bytecode.Instruction, want []string) {
	t.Helper()
	lines := listing(got)
	if len(lines) != len(want) {
		t.Fatalf("got %d instructions %q, want %d %q", len(lines), lines, len(want), want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("instruction %d: got %q, want %q\nfull: %q", i, lines[i], want[i], lines)
		}
	}
}
