// Package program holds the compilation result: global table, function
// registry and the synthetic entry function.
package program

import (
	"errors"
	"fmt"

	"c0c/internal/bytecode"
	"c0c/internal/symbols"
	"c0c/internal/types"
)

const (
	Magic   uint32 = 0x72303B3E
	Version uint32 = 0x00000001

	// StartName names the synthetic entry function.
	StartName = "_start"
	// EntryName is the user function _start calls.
	EntryName = "main"
)

type Program struct {
	Magic   uint32
	Version uint32
	Globals *symbols.Globals
	Root    *symbols.Scope
	Funcs   *Registry
	Start   *Function
}

// New creates an empty program; the entry name string becomes global 0.
func New() *Program {
	globals := symbols.NewGlobals()
	root := symbols.NewGlobalScope(globals)
	nameSym, _ := globals.AddString(StartName) // таблица пуста, адрес 0
	return &Program{
		Magic:   Magic,
		Version: Version,
		Globals: globals,
		Root:    root,
		Funcs:   NewRegistry(root),
		Start: &Function{
			ID:       0,
			Name:     StartName,
			NameAddr: nameSym.Addr,
			Return:   types.Void,
			Code:     bytecode.NewStream(),
		},
	}
}

// Functions returns the entry function followed by user functions.
func (p *Program) Functions() []*Function {
	out := make([]*Function, 0, p.Funcs.Len()+1)
	out = append(out, p.Start)
	return append(out, p.Funcs.All()...)
}

// Validate checks table consistency before serialization.
func (p *Program) Validate() error {
	var errs []error
	if err := p.Globals.Validate(); err != nil {
		errs = append(errs, err)
	}
	for i, fn := range p.Functions() {
		if int(fn.ID) != i {
			errs = append(errs, fmt.Errorf("function %q: id %d at position %d", fn.Name, fn.ID, i))
		}
		name := p.Globals.At(fn.NameAddr)
		if name == nil || name.Type != types.String || name.Value != fn.Name {
			errs = append(errs, fmt.Errorf("function %q: bad name global %d", fn.Name, fn.NameAddr))
		}
		if !fn.Code.Sealed() {
			errs = append(errs, fmt.Errorf("function %q: code not sealed", fn.Name))
		}
		for j, in := range fn.Code.Instructions() {
			if in.IsBreak() {
				errs = append(errs, fmt.Errorf("function %q: unresolved break at %d", fn.Name, j))
			}
			if target, ok := in.Target(j); ok && (target < 0 || target >= fn.Code.Len()) {
				errs = append(errs, fmt.Errorf("function %q: branch at %d targets %d", fn.Name, j, target))
			}
		}
	}
	return errors.Join(errs...)
}
