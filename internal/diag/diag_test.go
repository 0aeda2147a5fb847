package diag_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/diag"
	"c0c/internal/source"
)

func TestCodeIDs(t *testing.T) {
	tests := []struct {
		code diag.Code
		id   string
	}{
		{diag.LexUnknownChar, "LEX1001"},
		{diag.SynExpectSemicolon, "SYN2002"},
		{diag.SemaMissingReturn, "SEM3006"},
		{diag.InternalConsistency, "INT9001"},
		{diag.UnknownCode, "E0000"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
	}
	be.Equal(t, diag.SemaTypeMismatch.String(), "[SEM3001]: Type mismatch")
	be.Equal(t, diag.Code(3999).Title(), "Unknown error")
}

func TestBagLimitAndOrder(t *testing.T) {
	bag := diag.NewBag(2)
	be.Equal(t, bag.Cap(), uint16(2))
	be.True(t, bag.Add(diag.NewError(diag.SemaUnknownSymbol, source.Span{Start: 10, End: 11}, "b")))
	be.True(t, bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{Start: 1, End: 2}, "a")))
	be.True(t, !bag.Add(diag.NewError(diag.LexUnknownChar, source.Span{Start: 3, End: 4}, "c")))

	bag.Sort()
	items := bag.Items()
	be.Equal(t, len(items), 2)
	be.Equal(t, items[0].Message, "a")
	be.True(t, bag.HasErrors())
	be.True(t, !bag.HasInternal())
}

func TestBagDedup(t *testing.T) {
	bag := diag.NewBag(0)
	sp := source.Span{Start: 4, End: 5}
	bag.Add(diag.NewError(diag.LexUnknownChar, sp, "x"))
	bag.Add(diag.NewError(diag.LexUnknownChar, sp, "x again"))
	bag.Dedup()
	be.Equal(t, bag.Len(), 1)
}

func TestErrorWrapping(t *testing.T) {
	base := diag.Errorf(diag.SemaConstAssignment, source.Span{}, "cannot assign to %q", "k")
	wrapped := fmt.Errorf("compile: %w", base)

	de, ok := diag.AsError(wrapped)
	be.True(t, ok)
	be.Equal(t, de.Diag.Message, `cannot assign to "k"`)
	be.Equal(t, diag.CodeOf(wrapped), diag.SemaConstAssignment)
	be.True(t, !diag.IsInternal(wrapped))
	be.True(t, diag.IsInternal(diag.Internalf("patch index %d out of range", 7)))
	be.Equal(t, diag.CodeOf(errors.New("plain")), diag.UnknownCode)
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("main.c0", []byte("let x: int = 1;\nlet y = @;\n"))
	bag := diag.NewBag(0)
	r := diag.BagReporter{Bag: bag}
	diag.ReportError(r, diag.LexUnknownChar, source.Span{File: id, Start: 24, End: 25}, "unknown character '@'").Emit()
	bag.Add(diag.NewError(diag.InternalConsistency, source.Span{}, "sentinel left in stream"))

	got := diag.FormatShort(bag.Items(), fs, false)
	want := "error INT9001 sentinel left in stream\nerror LEX1001 main.c0:2:9 unknown character '@'"
	be.Equal(t, got, want)
}

func TestSeverityBlocking(t *testing.T) {
	be.Equal(t, diag.SevWarning.String(), "WARNING")
	be.Equal(t, diag.Severity(9).String(), "UNKNOWN")
	be.True(t, diag.SevError.Blocking())
	be.True(t, !diag.SevWarning.Blocking())

	bag := diag.NewBag(0)
	bag.Add(diag.Diagnostic{Severity: diag.SevWarning, Code: diag.LexUnknownChar})
	be.True(t, !bag.HasErrors())
}
