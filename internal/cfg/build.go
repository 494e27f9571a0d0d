package cfg

import (
	"fmt"

	"github.com/briolir/briolir/internal/ir"
)

// Build constructs the control-flow graph for fn, following spec.md §4.2:
// partition into blocks, fix up the entry if it's a branch target, patch
// missing terminators, then wire successor/predecessor edges.
func Build(fn *ir.Function) (*CFG, error) {
	blocks, explicitNames, err := partition(fn)
	if err != nil {
		return nil, err
	}
	blocks = fixupEntry(fn.Name, blocks, explicitNames)
	if err := patchTerminators(fn.Name, blocks); err != nil {
		return nil, err
	}

	c := &CFG{
		Function: fn,
		Blocks:   make(map[string]*BasicBlock, len(blocks)),
		Order:    make([]string, len(blocks)),
	}
	for i, b := range blocks {
		c.Blocks[b.Label] = b
		c.Order[i] = b.Label
	}
	c.Entry = blocks[0]

	if err := wireEdges(fn.Name, c); err != nil {
		return nil, err
	}
	return c, nil
}

// collectExplicitLabels gathers every label name spelled out by a Label
// instruction in fn, the namespace fresh block/entry names must avoid.
func collectExplicitLabels(fn *ir.Function) map[string]bool {
	names := make(map[string]bool)
	for _, instr := range fn.Instrs {
		if l, ok := instr.(*ir.Label); ok {
			names[l.Name] = true
		}
	}
	return names
}

// freshName picks the smallest positive integer k such that seed+k is not
// in names, per spec.md §4.2/§9's "smallest k not in the set" rule, shared
// by block naming and (in package ssa) variable versioning.
func freshName(seed string, names map[string]bool) string {
	for k := 1; ; k++ {
		candidate := fmt.Sprintf("%s%d", seed, k)
		if !names[candidate] {
			names[candidate] = true
			return candidate
		}
	}
}

func isTerminatorInstr(instr ir.Instruction) bool {
	op, ok := ir.Op(instr)
	return ok && op.IsBlockTerminator()
}

// partition divides fn's instruction stream into basic blocks per spec.md
// §4.2: a new block begins at any Label and after any terminator.
func partition(fn *ir.Function) ([]*BasicBlock, map[string]bool, error) {
	names := collectExplicitLabels(fn)

	var blocks []*BasicBlock
	var cur *BasicBlock

	flush := func() {
		if cur != nil {
			blocks = append(blocks, cur)
			cur = nil
		}
	}

	for _, instr := range fn.Instrs {
		if lbl, ok := instr.(*ir.Label); ok {
			flush()
			cur = &BasicBlock{Label: lbl.Name}
			continue
		}
		if cur == nil {
			cur = &BasicBlock{Label: freshName("b", names)}
		}
		cur.Instrs = append(cur.Instrs, instr)
		if isTerminatorInstr(instr) {
			flush()
		}
	}
	flush()

	if len(blocks) == 0 {
		// An empty function still needs one block to serve as the entry.
		blocks = append(blocks, &BasicBlock{Label: freshName("b", names)})
	}
	return blocks, names, nil
}

// fixupEntry implements spec.md §4.2's entry-fixup rule: if the first block
// is a branch target of some other block, prepend a fresh empty block and
// reseat it as entry, so the entry is guaranteed to have no predecessors.
func fixupEntry(fnName string, blocks []*BasicBlock, names map[string]bool) []*BasicBlock {
	first := blocks[0].Label
	referenced := false
	for _, b := range blocks {
		for _, instr := range b.Instrs {
			for _, l := range ir.TargetLabels(instr) {
				if l == first {
					referenced = true
				}
			}
		}
	}
	if !referenced {
		return blocks
	}
	fresh := &BasicBlock{Label: freshName("fresh", names)}
	return append([]*BasicBlock{fresh}, blocks...)
}

// patchTerminators implements spec.md §4.2's terminator-patching rule.
func patchTerminators(fnName string, blocks []*BasicBlock) error {
	for idx, b := range blocks {
		if len(b.Instrs) > 0 {
			last := b.Instrs[len(b.Instrs)-1]
			if isTerminatorInstr(last) {
				if _, ok := last.(*ir.EffectOp); !ok {
					return ir.NewError(ir.BrokenTerminator, fnName,
						"block "+b.Label+": terminator must be an effect-op").WithBlock(b.Label, len(b.Instrs)-1)
				}
				continue
			}
		}
		if idx == len(blocks)-1 {
			b.Instrs = append(b.Instrs, &ir.EffectOp{Op: ir.OpRet})
		} else {
			next := blocks[idx+1]
			b.Instrs = append(b.Instrs, &ir.EffectOp{Op: ir.OpJmp, Labels: []string{next.Label}})
		}
	}
	return nil
}

// wireEdges implements spec.md §4.2's edge-wiring rule: resolve every
// jmp/br target to a block and populate successor/predecessor sets.
func wireEdges(fnName string, c *CFG) error {
	for _, label := range c.Order {
		b := c.Blocks[label]
		last := b.Instrs[len(b.Instrs)-1]
		op, _ := ir.Op(last)
		if op != ir.OpJmp && op != ir.OpBr {
			continue
		}
		targets := ir.TargetLabels(last)
		if len(targets) == 0 {
			return ir.NewError(ir.StructuralCFG, fnName,
				"block "+b.Label+": "+string(op)+" has no branch targets").WithBlock(b.Label, len(b.Instrs)-1)
		}
		for _, t := range targets {
			succ, ok := c.Blocks[t]
			if !ok {
				return ir.NewError(ir.StructuralCFG, fnName,
					"block "+b.Label+": branch target "+t+" does not resolve to a block").WithBlock(b.Label, len(b.Instrs)-1)
			}
			b.addSucc(succ)
			succ.addPred(b)
		}
	}
	return nil
}
