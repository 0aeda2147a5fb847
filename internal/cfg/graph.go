// Package cfg builds basic-block graphs over finished instruction lists and
// proves that value-returning functions cannot fall off their end.
package cfg

import (
	"fmt"
	"sort"
	"strings"

	"c0c/internal/bytecode"
	"c0c/internal/diag"
)

// Block is the half-open instruction range [Start, End).
type Block struct {
	Start int
	End   int
	Succs []int
}

type Graph struct {
	Code   []bytecode.Instruction
	Blocks []Block
	// blockOf maps a leader index to its block.
	blockOf map[int]int
}

// Build partitions code into basic blocks. A block starts at 0, after every
// branch, call or return, and at every branch target.
func Build(code []bytecode.Instruction) (*Graph, error) {
	n := len(code)
	leaders := map[int]struct{}{}
	if n > 0 {
		leaders[0] = struct{}{}
	}
	for i, in := range code {
		if in.IsBreak() {
			return nil, diag.Internalf("unresolved break placeholder at %d", i)
		}
		if !in.Op.IsControlTransfer() {
			continue
		}
		if i+1 < n {
			leaders[i+1] = struct{}{}
		}
		if in.Op.IsBranch() {
			target, ok := in.Target(i)
			if !ok || target < 0 || target >= n {
				return nil, diag.Internalf("branch at %d targets %d outside [0,%d)", i, target, n)
			}
			leaders[target] = struct{}{}
		}
	}

	starts := make([]int, 0, len(leaders))
	for s := range leaders {
		starts = append(starts, s)
	}
	sort.Ints(starts)

	g := &Graph{Code: code, Blocks: make([]Block, len(starts)), blockOf: make(map[int]int, len(starts))}
	for b, s := range starts {
		end := n
		if b+1 < len(starts) {
			end = starts[b+1]
		}
		g.Blocks[b] = Block{Start: s, End: end}
		g.blockOf[s] = b
	}
	for b := range g.Blocks {
		blk := &g.Blocks[b]
		last := code[blk.End-1]
		if last.Op.IsBranch() {
			target, _ := last.Target(blk.End - 1)
			blk.Succs = append(blk.Succs, g.blockOf[target])
		}
		if last.Op.FallsThrough() && b+1 < len(g.Blocks) {
			blk.Succs = append(blk.Succs, b+1)
		}
	}
	return g, nil
}

// Reachable returns blocks reachable from block 0 in depth-first order.
func (g *Graph) Reachable() []int {
	if len(g.Blocks) == 0 {
		return nil
	}
	seen := make([]bool, len(g.Blocks))
	order := make([]int, 0, len(g.Blocks))
	var visit func(b int)
	visit = func(b int) {
		if seen[b] {
			return
		}
		seen[b] = true
		order = append(order, b)
		for _, s := range g.Blocks[b].Succs {
			visit(s)
		}
	}
	visit(0)
	return order
}

// Last returns the final instruction of block b.
func (g *Graph) Last(b int) bytecode.Instruction {
	return g.Code[g.Blocks[b].End-1]
}

func (g *Graph) String() string {
	var sb strings.Builder
	for b, blk := range g.Blocks {
		fmt.Fprintf(&sb, "b%d [%d,%d) ->", b, blk.Start, blk.End)
		for _, s := range blk.Succs {
			fmt.Fprintf(&sb, " b%d", s)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
