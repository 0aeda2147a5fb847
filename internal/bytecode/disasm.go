package bytecode

import (
	"fmt"
	"io"
)

// Disassembler formats instruction lists as a readable assembly-style dump.
type Disassembler struct {
	w       io.Writer
	printed bool
}

// NewDisassembler constructs a disassembler that writes to w.
func NewDisassembler(w io.Writer) *Disassembler {
	return &Disassembler{w: w}
}

// Function emits a header line followed by one line per instruction.
// Branches are annotated with their resolved target index.
func (d *Disassembler) Function(header string, code []Instruction) error {
	if d.printed {
		if _, err := fmt.Fprintln(d.w); err != nil {
			return err
		}
	}
	d.printed = true
	if _, err := fmt.Fprintf(d.w, "%s:\n", header); err != nil {
		return err
	}
	for i, in := range code {
		line := fmt.Sprintf("  %4d  %s", i, in)
		if target, ok := in.Target(i); ok {
			line += fmt.Sprintf("  ; -> %d", target)
		}
		if _, err := fmt.Fprintln(d.w, line); err != nil {
			return err
		}
	}
	return nil
}
