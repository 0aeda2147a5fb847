package fuzztests

import (
	"bytes"
	"context"
	"testing"
	"time"

	"c0c/internal/driver"
	"c0c/internal/emit"
)

// compileTimeout bounds a single compile; exceeding it means a hang.
const compileTimeout = 5 * time.Second

func FuzzCompileRoundTrip(f *testing.F) {
	addCorpusSeeds(f)
	f.Add([]byte("fn f() -> int { while 1 { } } fn main() -> void { }"))
	f.Add([]byte("fn main() -> void { { { { } } } }"))
	f.Add([]byte("fn main() -> void { let a: int = 1 let b: int = 2; }"))
	f.Add([]byte("fn main() -> void { if 1 { } else if 2 { } else { } }"))

	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), compileTimeout)
		defer cancel()

		type result struct {
			c   *driver.Compilation
			err error
		}
		done := make(chan result, 1)
		go func() {
			c, err := driver.CompileSource(ctx, "fuzz.c0", input, driver.Options{MaxDiagnostics: 64})
			done <- result{c, err}
		}()

		var res result
		select {
		case res = <-done:
		case <-ctx.Done():
			t.Fatalf("compile hang: took longer than %v\ninput (%d bytes): %q", compileTimeout, len(input), truncateForLog(input, 200))
		}
		if res.err != nil {
			return
		}
		c := res.c
		if c.Bag.HasInternal() {
			t.Fatalf("internal error on %q: %+v", truncateForLog(input, 200), c.Bag.Items())
		}
		if c.Failed() {
			if c.Module != nil {
				t.Fatalf("failed compile produced a module")
			}
			return
		}

		m, err := emit.Read(c.Module)
		if err != nil {
			t.Fatalf("module does not read back: %v", err)
		}
		again, err := m.MarshalBinary()
		if err != nil {
			t.Fatalf("re-marshal: %v", err)
		}
		if !bytes.Equal(again, c.Module) {
			t.Fatalf("module changed after read-back")
		}
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
