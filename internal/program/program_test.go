package program_test

import (
	"testing"

	"github.com/nalgeon/be"

	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/program"
	"c0c/internal/source"
	"c0c/internal/symbols"
	"c0c/internal/types"
)

func TestNewProgramReservesStart(t *testing.T) {
	p := program.New()
	be.Equal(t, p.Magic, uint32(0x72303B3E))
	be.Equal(t, p.Start.ID, uint32(0))
	be.Equal(t, p.Start.NameAddr, uint32(0))
	be.Equal(t, p.Globals.At(0).Value, "_start")
	be.Equal(t, len(p.Functions()), 1)
}

func TestRegistrySequentialIDs(t *testing.T) {
	p := program.New()
	f, err := p.Funcs.Declare("f", types.Int, []types.ValueType{types.Int}, source.Span{})
	be.Err(t, err, nil)
	g, err := p.Funcs.Declare("g", types.Void, nil, source.Span{})
	be.Err(t, err, nil)

	be.Equal(t, f.ID, uint32(1))
	be.Equal(t, g.ID, uint32(2))
	be.Equal(t, p.Globals.At(f.NameAddr).Value, "f")

	got, ok := p.Funcs.ByID(2)
	be.True(t, ok)
	be.Equal(t, got.Name, "g")
	_, ok = p.Funcs.ByID(0)
	be.True(t, !ok)
}

func TestRegistryRejectsCollisions(t *testing.T) {
	p := program.New()
	_, err := p.Root.Declare("counter", symbols.Global, types.Int, false, source.Span{})
	be.Err(t, err, nil)
	_, err = p.Root.EnterBlock().Declare("inner", symbols.Global, types.Int, false, source.Span{})
	be.Err(t, err, nil)
	_, err = p.Funcs.Declare("f", types.Void, nil, source.Span{})
	be.Err(t, err, nil)

	before := p.Globals.Len()
	for _, name := range []string{"f", "counter", "inner", "putint"} {
		_, err := p.Funcs.Declare(name, types.Void, nil, source.Span{})
		if diag.CodeOf(err) != diag.SemaDuplicateFunction {
			t.Fatalf("declare %q: got %v, want duplicate function", name, err)
		}
	}
	be.Equal(t, p.Globals.Len(), before)
	be.Equal(t, p.Funcs.Len(), 1)
}

func TestFinishCountsSlots(t *testing.T) {
	p := program.New()
	fn, _ := p.Funcs.Declare("f", types.Int, []types.ValueType{types.Int, types.Double}, source.Span{})
	scope := p.Root.EnterFunction()
	scope.Frame().Args.Next()
	_, _ = scope.Declare("a", symbols.Param, types.Int, false, source.Span{})
	_, _ = scope.Declare("b", symbols.Param, types.Double, false, source.Span{})
	_, _ = scope.EnterBlock().Declare("x", symbols.Local, types.Int, false, source.Span{})

	fn.Finish(scope.Frame())
	be.Equal(t, fn.ReturnSlots, uint32(1))
	be.Equal(t, fn.ParamSlots, uint32(2))
	be.Equal(t, fn.LocalSlots, uint32(1))
	be.True(t, fn.Code.Sealed())
}

func TestValidateFlagsUnresolvedBreak(t *testing.T) {
	p := program.New()
	_, _ = p.Start.Code.Emit(bytecode.OpInt(bytecode.OpBr, bytecode.BreakSentinel))
	p.Start.Finish(nil)
	be.True(t, p.Validate() != nil)
}

func TestBuiltinAccepts(t *testing.T) {
	putstr, ok := program.LookupBuiltin("putstr")
	be.True(t, ok)
	be.True(t, putstr.Accepts(0, types.String))
	be.True(t, putstr.Accepts(0, types.Int))
	be.True(t, !putstr.Accepts(0, types.Double))
	be.True(t, !putstr.Accepts(1, types.String))

	putint, _ := program.LookupBuiltin("putint")
	be.True(t, !putint.Accepts(0, types.Double))
}
