package testkit

import (
	"fmt"
	"strings"
)

// MatchLines compares two line lists and describes the first difference.
func MatchLines(got, want []string) error {
	n := max(len(got), len(want))
	for i := range n {
		var g, w string
		if i < len(got) {
			g = got[i]
		}
		if i < len(want) {
			w = want[i]
		}
		if g != w {
			return fmt.Errorf("line %d: got %q, want %q\ngot:\n  %s\nwant:\n  %s",
				i+1, g, w, strings.Join(got, "\n  "), strings.Join(want, "\n  "))
		}
	}
	return nil
}

// ParseCompileError splits "SEM3006 missing return" into the id and the
// optional message fragment.
func ParseCompileError(a Assertion) (id, fragment string) {
	lines := a.Lines()
	if len(lines) == 0 {
		return "", ""
	}
	id, fragment, _ = strings.Cut(lines[0], " ")
	return id, strings.TrimSpace(fragment)
}
