package driver

import (
	"errors"
	"fmt"
	"io"

	"c0c/internal/bytecode"
	"c0c/internal/emit"
	"c0c/internal/symbols"
)

// Listing writes the human-readable form of the compiled module. A fresh
// compilation lists functions by name; a cache hit only has the module
// bytes and is listed from them.
func (c *Compilation) Listing(w io.Writer) error {
	if c.Program == nil {
		if c.Module == nil {
			return errors.New("driver: nothing to list")
		}
		m, err := emit.Read(c.Module)
		if err != nil {
			return err
		}
		return emit.Dump(w, m)
	}

	if _, err := fmt.Fprintf(w, "; %s\n", c.opts.DisplayPath); err != nil {
		return err
	}
	for i, sym := range c.Program.Globals.All() {
		if _, err := fmt.Fprintf(w, "; global %d %s\n", i, describeGlobal(sym)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}

	dis := bytecode.NewDisassembler(w)
	for _, fn := range c.Program.Functions() {
		header := fmt.Sprintf("fn %s #%d (ret=%d params=%d locals=%d)",
			fn.Name, fn.ID, fn.ReturnSlots, fn.ParamSlots, fn.LocalSlots)
		if err := dis.Function(header, fn.Code.Instructions()); err != nil {
			return err
		}
	}
	return nil
}

func describeGlobal(sym *symbols.Symbol) string {
	mode := "let"
	if sym.Const {
		mode = "const"
	}
	if sym.Anonymous() {
		return fmt.Sprintf("%s %s = %q", mode, sym.Type, sym.Value)
	}
	return fmt.Sprintf("%s %s: %s", mode, sym.Name, sym.Type)
}
