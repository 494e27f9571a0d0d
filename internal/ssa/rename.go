package ssa

import (
	"fmt"

	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
)

// renamer carries the state threaded through the dominator-tree walk of
// spec.md §4.6 (component F): one version stack per original variable name,
// and the registry of names already minted so fresh versions never collide.
type renamer struct {
	used   map[string]bool
	stacks map[string][]string
	defs   *Definitions
	origin PhiOrigin
}

// freshVersion mints "{seed}.{k}" for the smallest positive k not already in
// use, the same rule block naming uses (spec.md §4.2/§9).
func freshVersion(seed string, used map[string]bool) string {
	for k := 1; ; k++ {
		candidate := fmt.Sprintf("%s.%d", seed, k)
		if !used[candidate] {
			used[candidate] = true
			return candidate
		}
	}
}

// Rename performs variable renaming by dominator-tree traversal (spec.md
// §4.6): function arguments are seeded as the initial version of their name,
// then each block is visited in dominator-tree pre-order, minting a fresh
// version at every definition, rewriting operand reads against the current
// top of each variable's stack, and patching successor φ operands/labels in
// CFG successor order as each predecessor is visited.
func Rename(fn *ir.Function, c *cfg.CFG, defs *Definitions, dom *DomInfo, origin PhiOrigin) {
	r := &renamer{
		used:   make(map[string]bool, len(defs.Types)),
		stacks: make(map[string][]string, len(defs.Types)),
		defs:   defs,
		origin: origin,
	}
	for name := range defs.Types {
		r.used[name] = true
	}
	for _, a := range fn.Args {
		r.used[a.Name] = true
	}

	// Arguments are renamed first (spec.md §4.6: "function arguments are
	// renamed first; they are definitions reaching the entry"), under the
	// same NeedsVersioning rule as any other destination.
	for i := range fn.Args {
		name := fn.Args[i].Name
		if defs.NeedsVersioning(name) {
			v := freshVersion(name, r.used)
			r.stacks[name] = append(r.stacks[name], v)
			fn.Args[i].Name = v
		}
	}

	r.renameBlock(c.Entry, dom)
}

// current returns the live SSA name for an original variable reference: the
// top of its version stack, or the bare name itself if the variable was
// never versioned (an already-dotted name left as is) or has no reaching
// definition on this path (an ordinary, non-phi read conservatively keeps
// the pre-SSA name; see undefinedOperand for the phi-fixup case).
func (r *renamer) current(name string) string {
	stack := r.stacks[name]
	if len(stack) == 0 {
		return name
	}
	return stack[len(stack)-1]
}

// undefinedOperand resolves a phi operand at a successor-block fixup site
// (spec.md §4.6 step 4, §6): when no definition of name reaches along this
// predecessor edge, the operand is the literal "{name}.UNDEFINED" sentinel
// rather than the bare pre-SSA name.
func (r *renamer) undefinedOperand(name string) string {
	stack := r.stacks[name]
	if len(stack) == 0 {
		return name + ".UNDEFINED"
	}
	return stack[len(stack)-1]
}

func (r *renamer) renameBlock(b *cfg.BasicBlock, dom *DomInfo) {
	pushed := make(map[string]int)

	for _, instr := range b.Instrs {
		if v, ok := instr.(*ir.ValueOp); ok && v.IsPhi() {
			origName := r.origin[v]
			if r.defs.NeedsVersioning(origName) {
				v.Dest = freshVersion(origName, r.used)
				r.stacks[origName] = append(r.stacks[origName], v.Dest)
				pushed[origName]++
			}
			continue
		}

		args := ir.Operands(instr)
		if len(args) > 0 {
			rewritten := make([]string, len(args))
			for i, a := range args {
				rewritten[i] = r.current(a)
			}
			ir.SetOperands(instr, rewritten)
		}

		if dest, ok := ir.Dest(instr); ok && r.defs.NeedsVersioning(dest) {
			v := freshVersion(dest, r.used)
			ir.SetDest(instr, v)
			r.stacks[dest] = append(r.stacks[dest], v)
			pushed[dest]++
		}
	}

	for _, succ := range b.Succs {
		for _, phi := range succ.Phis() {
			origName := r.origin[phi]
			phi.Args = append(phi.Args, r.undefinedOperand(origName))
			phi.Labels = append(phi.Labels, b.Label)
		}
	}

	for _, child := range dom.Children[b] {
		r.renameBlock(child, dom)
	}

	for name, n := range pushed {
		stack := r.stacks[name]
		r.stacks[name] = stack[:len(stack)-n]
	}
}
