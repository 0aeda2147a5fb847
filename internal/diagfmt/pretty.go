package diagfmt

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"c0c/internal/diag"
	"c0c/internal/source"
)

type palette struct {
	err    *color.Color
	warn   *color.Color
	info   *color.Color
	note   *color.Color
	gutter *color.Color
	caret  *color.Color
	loc    *color.Color
}

func newPalette(enabled bool) palette {
	mk := func(attrs ...color.Attribute) *color.Color {
		c := color.New(attrs...)
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		return c
	}
	return palette{
		err:    mk(color.FgRed, color.Bold),
		warn:   mk(color.FgYellow, color.Bold),
		info:   mk(color.FgBlue, color.Bold),
		note:   mk(color.FgCyan),
		gutter: mk(color.FgBlue),
		caret:  mk(color.FgGreen, color.Bold),
		loc:    mk(color.Bold),
	}
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//
// затем строки контекста с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	pal := newPalette(opts.Color)
	for i, d := range bag.Items() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	sev := pal.severity(d.Severity).Sprint(d.Severity.String())
	if !located(fs, d, d.Primary) {
		fmt.Fprintf(w, "%s %s: %s\n", sev, d.Code.ID(), d.Message)
		return
	}
	f := fs.Get(d.Primary.File)
	start, end := fs.Resolve(d.Primary)
	where := fmt.Sprintf("%s:%d:%d", formatPath(f, opts.PathMode, opts.BaseDir), start.Line, start.Col)
	fmt.Fprintf(w, "%s: %s %s: %s\n", pal.loc.Sprint(where), sev, d.Code.ID(), d.Message)

	writeExcerpt(w, f, start, end, int(opts.Context), pal)

	if !opts.ShowNotes {
		return
	}
	for _, note := range d.Notes {
		if !located(fs, d, note.Span) {
			fmt.Fprintf(w, "  %s %s\n", pal.note.Sprint("note:"), note.Msg)
			continue
		}
		nf := fs.Get(note.Span.File)
		nstart, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "  %s %s:%d:%d: %s\n", pal.note.Sprint("note:"),
			formatPath(nf, opts.PathMode, opts.BaseDir), nstart.Line, nstart.Col, note.Msg)
	}
}

// writeExcerpt prints up to context lines before the primary line, the
// primary line itself, and a caret line under the span.
func writeExcerpt(w io.Writer, f *source.File, start, end source.LineCol, context int, pal palette) {
	first := max(int(start.Line)-max(context, 0), 1)
	width := len(strconv.Itoa(int(start.Line)))
	for line := first; line <= int(start.Line); line++ {
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", width, line), f.GetLine(uint32(line)))
	}

	text := f.GetLine(start.Line)
	col := min(int(start.Col)-1, len(text))
	stop := len(text)
	if end.Line == start.Line {
		stop = min(max(int(end.Col)-1, col), len(text))
	}
	fmt.Fprintf(w, "%s %s%s\n", pal.gutter.Sprintf("%*s |", width, ""), padTo(text[:col]), pal.caret.Sprint(underline(text[col:stop])))
}

// padTo returns blanks covering prefix on screen; tabs are kept so the
// caret stays aligned whatever the tab width.
func padTo(prefix string) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteByte('\t')
			continue
		}
		b.WriteString(strings.Repeat(" ", runewidth.RuneWidth(r)))
	}
	return b.String()
}

func underline(segment string) string {
	n := max(runewidth.StringWidth(segment), 1)
	return "^" + strings.Repeat("~", n-1)
}
