// Package testkit extracts compiler test cases from Markdown documents.
//
// A case starts at a heading "Test: <name>", holds exactly one ```c0 fence
// with the program and one or more assertion fences:
//
//	```listing main      expected instructions of function main, one per line
//	```compile-error     diagnostic id, optionally followed by a message fragment
//	```globals           expected global table, one entry per line
//
// Code blocks without a language are prose and ignored.
package testkit

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	headingPrefix = "Test: "
	inputFence    = "c0"
)

// AssertionType names an assertion fence.
type AssertionType string

const (
	AssertListing      AssertionType = "listing"
	AssertCompileError AssertionType = "compile-error"
	AssertGlobals      AssertionType = "globals"
)

// Assertion is one expectation of a case.
type Assertion struct {
	Type    AssertionType
	Arg     string // text after the fence language, e.g. the function name
	Content string
	Line    int
}

// Lines returns the non-empty trimmed lines of the assertion.
func (a Assertion) Lines() []string {
	var out []string
	for _, line := range strings.Split(a.Content, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Case is one extracted test.
type Case struct {
	Name       string
	Source     string
	Line       int
	Assertions []Assertion
}

// ExpectsError reports whether the case has a compile-error assertion.
func (c *Case) ExpectsError() bool {
	for _, a := range c.Assertions {
		if a.Type == AssertCompileError {
			return true
		}
	}
	return false
}

// LoadCases reads and extracts the cases of a Markdown file.
func LoadCases(path string) ([]Case, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cases, err := ExtractCases(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cases, nil
}

// ExtractCases walks a Markdown document and collects its cases in order.
func ExtractCases(markdown []byte) ([]Case, error) {
	doc := goldmark.New().Parser().Parse(text.NewReader(markdown))

	var (
		cases   []Case
		current *Case
	)
	flush := func() error {
		if current == nil {
			return nil
		}
		if err := validate(current); err != nil {
			return err
		}
		cases = append(cases, *current)
		current = nil
		return nil
	}

	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := node.(type) {
		case *ast.Heading:
			heading := nodeText(n, markdown)
			if !strings.HasPrefix(heading, headingPrefix) {
				return ast.WalkContinue, nil
			}
			if err := flush(); err != nil {
				return ast.WalkStop, err
			}
			current = &Case{
				Name: strings.TrimSpace(strings.TrimPrefix(heading, headingPrefix)),
				Line: lineOf(n, markdown),
			}

		case *ast.FencedCodeBlock:
			lang, arg := fenceInfo(n, markdown)
			line := lineOf(n, markdown)
			if lang == "" {
				return ast.WalkContinue, nil
			}
			if current == nil {
				return ast.WalkStop, fmt.Errorf("line %d: %s fence outside of a test", line, lang)
			}
			content := blockContent(n, markdown)
			switch {
			case lang == inputFence:
				if current.Source != "" {
					return ast.WalkStop, fmt.Errorf("line %d: second %s fence in test %q", line, inputFence, current.Name)
				}
				current.Source = content
			case isAssertion(lang):
				current.Assertions = append(current.Assertions, Assertion{
					Type:    AssertionType(lang),
					Arg:     arg,
					Content: strings.TrimRight(content, "\n"),
					Line:    line,
				})
			default:
				return ast.WalkStop, fmt.Errorf("line %d: unknown fence %q in test %q", line, lang, current.Name)
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return cases, nil
}

func isAssertion(lang string) bool {
	switch AssertionType(lang) {
	case AssertListing, AssertCompileError, AssertGlobals:
		return true
	}
	return false
}

func validate(c *Case) error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("test %q has no %s fence", c.Name, inputFence)
	}
	if len(c.Assertions) == 0 {
		return fmt.Errorf("test %q has no assertions", c.Name)
	}
	for _, a := range c.Assertions {
		switch a.Type {
		case AssertListing:
			if a.Arg == "" {
				return fmt.Errorf("line %d: listing fence needs a function name", a.Line)
			}
		case AssertCompileError:
			if len(a.Lines()) != 1 {
				return fmt.Errorf("line %d: compile-error fence takes exactly one line", a.Line)
			}
		}
	}
	return nil
}

// fenceInfo splits the info string: "listing main" -> ("listing", "main").
func fenceInfo(n *ast.FencedCodeBlock, src []byte) (lang, arg string) {
	if n.Info == nil {
		return "", ""
	}
	info := strings.TrimSpace(string(n.Info.Segment.Value(src)))
	lang, arg, _ = strings.Cut(info, " ")
	return lang, strings.TrimSpace(arg)
}

func nodeText(node ast.Node, src []byte) string {
	var buf bytes.Buffer
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			buf.Write(t.Segment.Value(src))
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

func blockContent(n *ast.FencedCodeBlock, src []byte) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(src))
	}
	return buf.String()
}

// lineOf is the 1-based line of the node's first content line, 0 if the
// node has none.
func lineOf(node ast.Node, src []byte) int {
	if node.Lines().Len() == 0 {
		return 0
	}
	start := min(node.Lines().At(0).Start, len(src))
	return bytes.Count(src[:start], []byte{'\n'}) + 1
}
