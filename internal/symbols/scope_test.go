package symbols_test

import (
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/diag"
	"c0c/internal/source"
	"c0c/internal/symbols"
	"c0c/internal/types"
)

func TestDeclareDuplicateInSameScope(t *testing.T) {
	root := symbols.NewGlobalScope(nil)
	_, err := root.Declare("x", symbols.Global, types.Int, false, source.Span{})
	be.Err(t, err, nil)

	_, err = root.Declare("x", symbols.Global, types.Double, false, source.Span{Start: 4})
	be.Equal(t, diag.CodeOf(err), diag.SemaDuplicateSymbol)
}

func TestShadowingInNestedBlock(t *testing.T) {
	root := symbols.NewGlobalScope(nil)
	outer, err := root.Declare("x", symbols.Global, types.Int, false, source.Span{})
	be.Err(t, err, nil)

	fn := root.EnterFunction()
	block := fn.EnterBlock()
	inner, err := block.Declare("x", symbols.Local, types.Double, false, source.Span{})
	be.Err(t, err, nil)

	got, err := block.Resolve("x", source.Span{})
	be.Err(t, err, nil)
	be.Equal(t, got, inner)

	// after the block closes only the outer binding is visible
	got, err = block.Parent().Resolve("x", source.Span{})
	be.Err(t, err, nil)
	be.Equal(t, got, outer)
}

func TestInnerSymbolInvisibleAfterBlock(t *testing.T) {
	root := symbols.NewGlobalScope(nil)
	fn := root.EnterFunction()
	block := fn.EnterBlock()
	_, err := block.Declare("tmp", symbols.Local, types.Int, false, source.Span{})
	be.Err(t, err, nil)

	_, err = fn.Resolve("tmp", source.Span{Start: 9, End: 12})
	be.Equal(t, diag.CodeOf(err), diag.SemaUnknownSymbol)
}

func TestAddressAllocation(t *testing.T) {
	globals := symbols.NewGlobals()
	root := symbols.NewGlobalScope(globals)

	a, _ := root.Declare("a", symbols.Global, types.Int, false, source.Span{})
	s, err := globals.AddString("hi")
	be.Err(t, err, nil)
	b, _ := root.EnterBlock().Declare("b", symbols.Global, types.Double, true, source.Span{})
	be.Equal(t, []uint32{a.Addr, s.Addr, b.Addr}, []uint32{0, 1, 2})
	be.Equal(t, globals.Len(), 3)
	be.Err(t, globals.Validate(), nil)

	fn := root.EnterFunction()
	ret := fn.Frame().Args.Next()
	p, _ := fn.Declare("p", symbols.Param, types.Int, false, source.Span{})
	body := fn.EnterBlock()
	l0, _ := body.Declare("l0", symbols.Local, types.Int, false, source.Span{})
	l1, _ := body.EnterBlock().Declare("l1", symbols.Local, types.Int, false, source.Span{})

	be.Equal(t, ret, uint32(0))
	be.Equal(t, p.Addr, uint32(1))
	be.Equal(t, []uint32{l0.Addr, l1.Addr}, []uint32{0, 1})
	be.Equal(t, fn.Frame().Args.Count(), uint32(2))
	be.Equal(t, fn.Frame().Locals.Count(), uint32(2))

	// a new function starts from zero again
	other := root.EnterFunction().EnterBlock()
	x, _ := other.Declare("x", symbols.Local, types.Int, false, source.Span{})
	be.Equal(t, x.Addr, uint32(0))
}

func TestAnonymousStringsAreDistinct(t *testing.T) {
	globals := symbols.NewGlobals()
	first, _ := globals.AddString("hi")
	second, _ := globals.AddString("hi")
	be.True(t, first.Addr != second.Addr)
	be.True(t, first.Anonymous() && first.Const)
	be.Equal(t, first.ByteSize(), 2)

	root := symbols.NewGlobalScope(globals)
	_, ok := root.Lookup("")
	be.True(t, !ok)
}

func TestLocalOutsideFunctionIsInternal(t *testing.T) {
	root := symbols.NewGlobalScope(nil)
	_, err := root.Declare("x", symbols.Local, types.Int, false, source.Span{})
	be.True(t, diag.IsInternal(err))
}

func TestGlobalsLookupSeesClosedBlocks(t *testing.T) {
	globals := symbols.NewGlobals()
	root := symbols.NewGlobalScope(globals)
	_, err := root.EnterBlock().Declare("g", symbols.Global, types.Int, false, source.Span{})
	be.Err(t, err, nil)
	_, _ = globals.AddString("g")

	_, ok := root.Lookup("g")
	be.True(t, !ok)
	sym, ok := globals.Lookup("g")
	be.True(t, ok)
	be.Equal(t, sym.Addr, uint32(0))
	_, ok = globals.Lookup("")
	be.True(t, !ok)
}
