// Package ssa turns a function's control-flow graph into SSA form: dominance
// analysis, φ-insertion over dominance frontiers, and dominator-tree-order
// variable renaming (spec.md §4.3–§4.6).
package ssa

import (
	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
)

// ConstructSSA runs the full pipeline over fn: build its CFG, compute
// dominance, insert φs at the dominance frontier of every global variable's
// definitions, rename variables by dominator-tree walk, and linearize the
// result back into fn.Instrs. fn is mutated in place only on success; a
// returned error leaves fn untouched.
func ConstructSSA(fn *ir.Function) error {
	c, err := cfg.Build(fn)
	if err != nil {
		return err
	}

	defs, err := ScanDefinitions(fn.Name, c)
	if err != nil {
		return err
	}

	dom, err := ComputeDominance(fn.Name, c)
	if err != nil {
		return err
	}

	origin := InsertPhis(c, defs, dom)
	Rename(fn, c, defs, dom, origin)

	fn.Instrs = Linearize(c)
	return nil
}
