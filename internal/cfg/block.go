// Package cfg builds a control-flow graph from a flat instruction stream,
// per spec.md §4.2 (component B).
package cfg

import (
	"github.com/briolir/briolir/internal/ir"
)

// BasicBlock is a maximal straight-line instruction sequence terminated by a
// single jmp/br/ret, per spec.md §3. Its own label is not repeated inside
// Instrs — the Label instruction that named it (if any) is consumed by the
// partitioning step.
type BasicBlock struct {
	Label  string
	Instrs []ir.Instruction
	Preds  []*BasicBlock
	Succs  []*BasicBlock
}

func (b *BasicBlock) addSucc(s *BasicBlock) {
	for _, existing := range b.Succs {
		if existing == s {
			return
		}
	}
	b.Succs = append(b.Succs, s)
}

func (b *BasicBlock) addPred(p *BasicBlock) {
	for _, existing := range b.Preds {
		if existing == p {
			return
		}
	}
	b.Preds = append(b.Preds, p)
}

// Phis returns the leading run of φ-instructions in b (spec.md §3: "φ
// instructions, when present, appear before any non-φ instruction").
func (b *BasicBlock) Phis() []*ir.ValueOp {
	var phis []*ir.ValueOp
	for _, instr := range b.Instrs {
		v, ok := instr.(*ir.ValueOp)
		if !ok || !v.IsPhi() {
			break
		}
		phis = append(phis, v)
	}
	return phis
}

// CFG is the control-flow graph of a single function (spec.md §3). Blocks
// is keyed by label; Order preserves the insertion (instruction-stream)
// order the map itself cannot.
type CFG struct {
	Function *ir.Function
	Blocks   map[string]*BasicBlock
	Order    []string
	Entry    *BasicBlock
}

// OrderedBlocks returns the CFG's blocks in insertion order.
func (c *CFG) OrderedBlocks() []*BasicBlock {
	out := make([]*BasicBlock, len(c.Order))
	for i, label := range c.Order {
		out[i] = c.Blocks[label]
	}
	return out
}
