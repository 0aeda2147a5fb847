package symbols

import (
	"c0c/internal/diag"
	"c0c/internal/source"
	"c0c/internal/types"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // module root
	ScopeFunction           // parameters of one function
	ScopeBlock              // generic block scope
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	default:
		return "invalid"
	}
}

// Scope models a lexical scope with a link to its enclosing scope.
type Scope struct {
	Kind    ScopeKind
	parent  *Scope
	globals *Globals
	frame   *Frame // nil outside functions
	symbols []*Symbol
	names   map[string]*Symbol
}

// NewGlobalScope creates the root scope over the given global table.
func NewGlobalScope(globals *Globals) *Scope {
	if globals == nil {
		globals = NewGlobals()
	}
	return &Scope{
		Kind:    ScopeGlobal,
		globals: globals,
		names:   make(map[string]*Symbol),
	}
}

// EnterFunction opens a parameter scope with a fresh frame.
func (s *Scope) EnterFunction() *Scope {
	return &Scope{
		Kind:    ScopeFunction,
		parent:  s,
		globals: s.globals,
		frame:   &Frame{},
		names:   make(map[string]*Symbol),
	}
}

// EnterBlock opens a child scope sharing the enclosing frame.
func (s *Scope) EnterBlock() *Scope {
	return &Scope{
		Kind:    ScopeBlock,
		parent:  s,
		globals: s.globals,
		frame:   s.frame,
		names:   make(map[string]*Symbol),
	}
}

// Parent returns the enclosing scope, nil for the root.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Frame returns the slot counters of the enclosing function, nil at top level.
func (s *Scope) Frame() *Frame {
	return s.frame
}

func (s *Scope) Globals() *Globals {
	return s.globals
}

// InFunction reports whether declarations here get function storage.
func (s *Scope) InFunction() bool {
	return s.frame != nil
}

// Symbols returns symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	return s.symbols
}

// Declare allocates a slot for name in this scope and returns the symbol.
// An empty name declares an anonymous symbol that never collides.
func (s *Scope) Declare(name string, kind StorageKind, vt types.ValueType, isConst bool, span source.Span) (*Symbol, error) {
	if name != "" {
		if prev, ok := s.names[name]; ok {
			return nil, &diag.Error{Diag: diag.NewError(diag.SemaDuplicateSymbol, span, "duplicate symbol "+quote(name)).
				WithNote(prev.Span, "previous declaration")}
		}
	}
	sym := &Symbol{Name: name, Kind: kind, Type: vt, Const: isConst, Span: span}
	switch kind {
	case Global:
		if _, err := s.globals.add(sym); err != nil {
			return nil, err
		}
	case Param:
		if s.frame == nil {
			return nil, diag.Internalf("parameter %s declared outside a function", quote(name))
		}
		sym.Addr = s.frame.Args.Next()
	case Local:
		if s.frame == nil {
			return nil, diag.Internalf("local %s declared outside a function", quote(name))
		}
		sym.Addr = s.frame.Locals.Next()
	default:
		return nil, diag.Internalf("unknown storage kind %d", kind)
	}
	s.symbols = append(s.symbols, sym)
	if name != "" {
		s.names[name] = sym
	}
	return sym, nil
}

// Lookup walks from s to the root; the first match wins.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	if name == "" {
		return nil, false
	}
	for sc := s; sc != nil; sc = sc.parent {
		if sym, ok := sc.names[name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// LookupLocal checks only this scope.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	sym, ok := s.names[name]
	return sym, ok
}

// Resolve is Lookup that fails with an unknown-symbol diagnostic at span.
func (s *Scope) Resolve(name string, span source.Span) (*Symbol, error) {
	if sym, ok := s.Lookup(name); ok {
		return sym, nil
	}
	return nil, diag.Errorf(diag.SemaUnknownSymbol, span, "unknown symbol %s", quote(name))
}

func quote(name string) string {
	return "'" + name + "'"
}
