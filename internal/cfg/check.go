package cfg

import (
	"c0c/internal/bytecode"
	"c0c/internal/diag"
	"c0c/internal/source"
)

// Check reports MissingReturn when some reachable block without successors
// does not end in ret. Malformed branch operands are internal errors.
func Check(code []bytecode.Instruction) error {
	g, err := Build(code)
	if err != nil {
		return err
	}
	if len(g.Blocks) == 0 {
		return diag.Errorf(diag.SemaMissingReturn, source.Span{}, "has no body to return from")
	}
	for _, b := range g.Reachable() {
		if len(g.Blocks[b].Succs) != 0 {
			continue
		}
		if g.Last(b).Op != bytecode.OpRet {
			return diag.Errorf(diag.SemaMissingReturn, source.Span{},
				"can reach the end without returning a value (instruction %d)", g.Blocks[b].End-1)
		}
	}
	return nil
}
