package ssa

import (
	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
)

// Linearize flattens c back into a flat instruction stream (component G):
// each block in CFG insertion order is emitted as a Label naming it followed
// by its instructions, including any φs and the synthesized terminator.
func Linearize(c *cfg.CFG) []ir.Instruction {
	var out []ir.Instruction
	for _, b := range c.OrderedBlocks() {
		out = append(out, &ir.Label{Name: b.Label})
		out = append(out, b.Instrs...)
	}
	return out
}
