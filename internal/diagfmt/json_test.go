package diagfmt

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/diag"
	"c0c/internal/lexer"
	"c0c/internal/source"
)

func TestJSONOutput(t *testing.T) {
	bag, fs := singleDiag(t, "main.c0", "fn main() -> void {\n  x;\n}\n", 22, 23, diag.SemaUnknownSymbol, "unknown symbol 'x'")
	bag.Add(diag.NewError(diag.InternalConsistency, source.Span{}, "broken"))

	var buf bytes.Buffer
	be.Err(t, JSON(&buf, bag, fs, JSONOpts{IncludePositions: true}), nil)

	var out DiagnosticsOutput
	be.Err(t, json.Unmarshal(buf.Bytes(), &out), nil)
	be.Equal(t, out.Count, 2)

	first := out.Diagnostics[0]
	be.Equal(t, first.Code, "SEM3004")
	be.Equal(t, first.Severity, "ERROR")
	be.Equal(t, first.Title, "Unknown symbol")
	be.True(t, first.Location != nil)
	be.Equal(t, first.Location.File, "main.c0")
	be.Equal(t, first.Location.StartLine, uint32(2))
	be.Equal(t, first.Location.StartCol, uint32(3))

	be.True(t, out.Diagnostics[1].Location == nil)
}

func TestJSONMax(t *testing.T) {
	bag, fs := singleDiag(t, "a.c0", "ab", 0, 1, diag.LexUnknownChar, "one")
	bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{Start: 1, End: 2}, "two"))
	out := BuildDiagnosticsOutput(bag, fs, JSONOpts{Max: 1})
	be.Equal(t, out.Count, 1)
	be.Equal(t, out.Diagnostics[0].Message, "one")
}

func TestTokensJSON(t *testing.T) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("t.c0", []byte("let a: int = 42;")))
	toks := lexer.Tokenize(f, lexer.Options{Reporter: diag.NopReporter{}})

	var buf bytes.Buffer
	be.Err(t, FormatTokensJSON(&buf, toks, fs), nil)
	var out []TokenOutput
	be.Err(t, json.Unmarshal(buf.Bytes(), &out), nil)
	be.Equal(t, len(out), len(toks))
	be.Equal(t, out[len(out)-1].Kind, "EOF")

	var found bool
	for _, tok := range out {
		if tok.Text == "42" {
			found = true
			be.Equal(t, tok.Value, any(float64(42)))
			be.Equal(t, tok.Col, uint32(14))
		}
	}
	be.True(t, found)

	buf.Reset()
	be.Err(t, FormatTokensPretty(&buf, toks, fs), nil)
	be.True(t, bytes.Contains(buf.Bytes(), []byte(`"42" at 1:14-1:16 = 42`)))
}
