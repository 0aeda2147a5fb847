package symbols

import (
	"fmt"

	"fortio.org/safecast"

	"c0c/internal/diag"
	"c0c/internal/types"
)

// Counter hands out sequential slot addresses starting at zero.
type Counter struct {
	next uint32
}

func (c *Counter) Next() uint32 {
	addr := c.next
	c.next++
	return addr
}

// Count returns how many slots were handed out.
func (c *Counter) Count() uint32 {
	return c.next
}

// Frame owns the slot counters of one function.
// Args covers the implicit return slot followed by parameters.
type Frame struct {
	Args   Counter
	Locals Counter
}

// Globals is the module-wide ordered global table; an address is an index.
type Globals struct {
	syms []*Symbol
}

func NewGlobals() *Globals {
	return &Globals{syms: make([]*Symbol, 0, 8)}
}

func (g *Globals) add(sym *Symbol) (uint32, error) {
	addr, err := safecast.Conv[uint32](len(g.syms))
	if err != nil {
		return 0, diag.Internalf("global table overflow: %v", err)
	}
	sym.Addr = addr
	g.syms = append(g.syms, sym)
	return addr, nil
}

// AddString allocates a fresh anonymous const string global.
// Equal payloads are never shared.
func (g *Globals) AddString(value string) (*Symbol, error) {
	sym := &Symbol{Kind: Global, Type: types.String, Const: true, Value: value}
	if _, err := g.add(sym); err != nil {
		return nil, err
	}
	return sym, nil
}

// Lookup finds a named global declared in any scope, including closed blocks.
func (g *Globals) Lookup(name string) (*Symbol, bool) {
	if name == "" {
		return nil, false
	}
	for _, sym := range g.syms {
		if sym.Name == name {
			return sym, true
		}
	}
	return nil, false
}

func (g *Globals) Len() int {
	return len(g.syms)
}

// At returns the global at addr or nil.
func (g *Globals) At(addr uint32) *Symbol {
	if int(addr) >= len(g.syms) {
		return nil
	}
	return g.syms[addr]
}

// All returns globals in address order. Do not modify the slice.
func (g *Globals) All() []*Symbol {
	return g.syms
}

// Validate checks that every address equals its table position.
func (g *Globals) Validate() error {
	for i, sym := range g.syms {
		if sym == nil {
			return fmt.Errorf("global %d: nil symbol", i)
		}
		if int(sym.Addr) != i {
			return fmt.Errorf("global %q: address %d at position %d", sym.Name, sym.Addr, i)
		}
		if sym.Kind != Global {
			return fmt.Errorf("global %q: storage %s", sym.Name, sym.Kind)
		}
	}
	return nil
}
