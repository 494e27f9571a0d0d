package ssa

import (
	"sort"

	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
)

// PhiOrigin maps an inserted phi instruction back to the original variable
// name it represents, since renaming overwrites ValueOp.Dest with a fresh
// SSA version and the two packages have no other shared key for the pair.
type PhiOrigin map[*ir.ValueOp]string

// InsertPhis runs the worklist algorithm of spec.md §4.5 (component E): for
// every global variable, push its defining blocks onto a worklist and add a
// placeholder phi at each block in the popped block's dominance frontier
// that doesn't already have one for that variable, pushing newly-phi'd
// blocks back onto the worklist. It returns the phi->original-name map that
// renaming needs to fix up operands later.
func InsertPhis(c *cfg.CFG, defs *Definitions, dom *DomInfo) PhiOrigin {
	origin := make(PhiOrigin)

	names := make([]string, 0, len(defs.Global))
	for name := range defs.Global {
		names = append(names, name)
	}
	sort.Strings(names)

	hasPhi := make(map[string]map[*cfg.BasicBlock]bool, len(names))

	for _, name := range names {
		hasPhi[name] = make(map[*cfg.BasicBlock]bool)

		worklist := make([]*cfg.BasicBlock, 0, len(defs.Defs[name]))
		for b := range defs.Defs[name] {
			worklist = append(worklist, b)
		}
		sort.Slice(worklist, func(i, j int) bool { return worklist[i].Label < worklist[j].Label })

		for len(worklist) > 0 {
			b := worklist[0]
			worklist = worklist[1:]
			frontierBlocks := make([]*cfg.BasicBlock, 0, len(dom.DF[b]))
			for f := range dom.DF[b] {
				frontierBlocks = append(frontierBlocks, f)
			}
			sort.Slice(frontierBlocks, func(i, j int) bool { return frontierBlocks[i].Label < frontierBlocks[j].Label })

			for _, f := range frontierBlocks {
				if hasPhi[name][f] {
					continue
				}
				phi := insertPhi(f, name, defs.Types[name])
				origin[phi] = name
				hasPhi[name][f] = true
				if !defs.Defs[name][f] {
					worklist = append(worklist, f)
				}
			}
		}
	}
	return origin
}

// insertPhi prepends a placeholder phi for name to b, keeping the block's
// existing phis (spec.md §3: phis sort by destination name among
// themselves, appearing before any non-phi instruction).
func insertPhi(b *cfg.BasicBlock, name string, tp ir.ValueType) *ir.ValueOp {
	phi := &ir.ValueOp{Op: ir.OpPhi, Dest: name, Type: tp}

	n := len(b.Phis())
	phis := make([]*ir.ValueOp, 0, n+1)
	for i := 0; i < n; i++ {
		phis = append(phis, b.Instrs[i].(*ir.ValueOp))
	}
	phis = append(phis, phi)
	sort.Slice(phis, func(i, j int) bool { return phis[i].Dest < phis[j].Dest })

	rest := b.Instrs[n:]
	newInstrs := make([]ir.Instruction, 0, len(b.Instrs)+1)
	for _, p := range phis {
		newInstrs = append(newInstrs, p)
	}
	newInstrs = append(newInstrs, rest...)
	b.Instrs = newInstrs
	return phi
}
