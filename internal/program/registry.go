package program

import (
	"fmt"

	"fortio.org/safecast"

	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/source"
	"c0c/internal/symbols"
	"c0c/internal/types"
)

// Registry maps function names to descriptors; ids start at 1.
type Registry struct {
	root  *symbols.Scope
	funcs []*Function
}

func NewRegistry(root *symbols.Scope) *Registry {
	return &Registry{root: root}
}

// Declare registers a function and allocates its name global.
// The name must not be taken by a function, a global or a builtin.
func (r *Registry) Declare(name string, ret types.ValueType, params []types.ValueType, span source.Span) (*Function, error) {
	if prev, ok := r.ByName(name); ok {
		return nil, &diag.Error{Diag: diag.NewError(diag.SemaDuplicateFunction, span, fmt.Sprintf("duplicate function '%s'", name)).
			WithNote(prev.Span, "previous declaration")}
	}
	if sym, ok := r.root.Globals().Lookup(name); ok {
		return nil, &diag.Error{Diag: diag.NewError(diag.SemaDuplicateFunction, span, fmt.Sprintf("function '%s' collides with a global", name)).
			WithNote(sym.Span, "global declared here")}
	}
	if _, ok := LookupBuiltin(name); ok {
		return nil, diag.Errorf(diag.SemaDuplicateFunction, span, "function '%s' collides with a builtin", name)
	}

	id, err := safecast.Conv[uint32](len(r.funcs) + 1)
	if err != nil {
		return nil, diag.Internalf("function id overflow: %v", err)
	}
	nameSym, err := r.root.Globals().AddString(name)
	if err != nil {
		return nil, err
	}
	fn := &Function{
		ID:       id,
		Name:     name,
		NameAddr: nameSym.Addr,
		Return:   ret,
		Params:   params,
		Span:     span,
		Code:     bytecode.NewStream(),
	}
	r.funcs = append(r.funcs, fn)
	return fn, nil
}

// ByName is a linear scan.
func (r *Registry) ByName(name string) (*Function, bool) {
	for _, fn := range r.funcs {
		if fn.Name == name {
			return fn, true
		}
	}
	return nil, false
}

// ByID returns the user function with id; id 0 is never registered here.
func (r *Registry) ByID(id uint32) (*Function, bool) {
	for _, fn := range r.funcs {
		if fn.ID == id {
			return fn, true
		}
	}
	return nil, false
}

func (r *Registry) Len() int {
	return len(r.funcs)
}

// All returns functions in id order. Do not modify the slice.
func (r *Registry) All() []*Function {
	return r.funcs
}
