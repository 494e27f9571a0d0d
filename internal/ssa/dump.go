package ssa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
)

// Dump renders c and its dominance information as human-readable text, for
// the CLI's debug "dump" subcommand. It never runs φ-insertion or renaming —
// it only reports the shape the earlier stages produced.
func Dump(c *cfg.CFG, dom *DomInfo) string {
	var b strings.Builder
	fmt.Fprintf(&b, "fn %s {\n", c.Function.Name)

	for _, block := range c.OrderedBlocks() {
		b.WriteString(blockHeader(block))
		b.WriteString(dominanceLine(block, dom))
		for _, instr := range block.Instrs {
			fmt.Fprintf(&b, "    %s\n", instrString(instr))
		}
	}

	b.WriteString("}")
	return b.String()
}

func blockHeader(block *cfg.BasicBlock) string {
	preds := labelsOf(block.Preds)
	succs := labelsOf(block.Succs)
	return fmt.Sprintf("  %s:  // preds=[%s] succs=[%s]\n",
		block.Label, strings.Join(preds, ", "), strings.Join(succs, ", "))
}

func dominanceLine(block *cfg.BasicBlock, dom *DomInfo) string {
	if dom == nil {
		return ""
	}
	idomLabel := "<none>"
	if idom := dom.Idom[block]; idom != nil {
		idomLabel = idom.Label
	}
	frontier := make([]string, 0, len(dom.DF[block]))
	for f := range dom.DF[block] {
		frontier = append(frontier, f.Label)
	}
	sort.Strings(frontier)
	return fmt.Sprintf("    // idom=%s df=[%s]\n", idomLabel, strings.Join(frontier, ", "))
}

func labelsOf(blocks []*cfg.BasicBlock) []string {
	out := make([]string, len(blocks))
	for i, b := range blocks {
		out[i] = b.Label
	}
	return out
}

func instrString(instr ir.Instruction) string {
	switch i := instr.(type) {
	case *ir.Label:
		return fmt.Sprintf(".%s:", i.Name)
	case *ir.Const:
		return fmt.Sprintf("%s: %s = const %v", i.Dest, i.Type, i.Value)
	case *ir.ValueOp:
		if i.IsPhi() {
			return fmt.Sprintf("%s: %s = phi %s", i.Dest, i.Type, phiOperandString(i))
		}
		return fmt.Sprintf("%s: %s = %s %s", i.Dest, i.Type, i.Op, strings.Join(i.Args, " "))
	case *ir.EffectOp:
		return fmt.Sprintf("%s %s", i.Op, strings.Join(append(append([]string{}, i.Args...), i.Labels...), " "))
	default:
		return "<unknown instruction>"
	}
}

func phiOperandString(v *ir.ValueOp) string {
	parts := make([]string, len(v.Args))
	for i := range v.Args {
		label := ""
		if i < len(v.Labels) {
			label = v.Labels[i]
		}
		parts[i] = fmt.Sprintf("%s:%s", label, v.Args[i])
	}
	return strings.Join(parts, " ")
}
