package emit

import (
	"fmt"
	"io"
	"strconv"

	"c0c/internal/bytecode"
)

// Dump prints the global table and every function listing of m.
func Dump(w io.Writer, m *Module) error {
	if _, err := fmt.Fprintf(w, "module magic=0x%08x version=%d\n", m.Magic, m.Version); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "globals (%d):\n", len(m.Globals)); err != nil {
		return err
	}
	for i, g := range m.Globals {
		kind := "var"
		if g.Const {
			kind = "const"
		}
		if _, err := fmt.Fprintf(w, "  %4d  %-5s %3d  %s\n", i, kind, len(g.Value), globalPreview(g)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	dis := bytecode.NewDisassembler(w)
	for _, fn := range m.Funcs {
		if err := dis.Function(fn.String(), fn.Code); err != nil {
			return err
		}
	}
	return nil
}

func globalPreview(g Global) string {
	if len(g.Value) == 8 && allZero(g.Value) {
		return "<slot>"
	}
	return strconv.Quote(string(g.Value))
}

func allZero(b []byte) bool {
	for _, c := range b {
		if c != 0 {
			return false
		}
	}
	return true
}
