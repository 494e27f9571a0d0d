package ssa

import (
	"strings"

	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
)

// Definitions is the per-function variable definition map described in
// spec.md §4.4 (component D): which blocks define each variable, each
// variable's declared type, and which variable names are "global" (used in
// some block before being locally killed there).
type Definitions struct {
	Defs     map[string]map[*cfg.BasicBlock]bool
	Types    map[string]ir.ValueType
	Global   map[string]bool
	DefCount map[string]int
}

// NeedsVersioning reports whether name must be given an SSA version, per
// spec.md §4.6 step 3: it's live across a block boundary (Global), it was
// already locally defined earlier in the same block (DefCount > 1 serves as
// the function-wide proxy for that; same-block redefinition is a special
// case of it), or it carries no "." yet (an un-versioned, plain source
// name). A name already versioned (contains ".") that is neither global nor
// redefined is left alone, which is what keeps re-running the pipeline on
// already-SSA input idempotent (spec.md §8 property 6).
func (d *Definitions) NeedsVersioning(name string) bool {
	return d.Global[name] || d.DefCount[name] > 1 || !strings.Contains(name, ".")
}

// ScanDefinitions walks c's blocks in insertion order and builds the
// definition map per spec.md §4.4. Only Const and ValueOp instructions
// contribute definitions; only a ValueOp's own operands feed the global-name
// set (an EffectOp's operands never do — this mirrors the source algorithm
// exactly, including its narrower notion of "global").
func ScanDefinitions(fnName string, c *cfg.CFG) (*Definitions, error) {
	d := &Definitions{
		Defs:     make(map[string]map[*cfg.BasicBlock]bool),
		Types:    make(map[string]ir.ValueType),
		Global:   make(map[string]bool),
		DefCount: make(map[string]int),
	}

	for _, b := range c.OrderedBlocks() {
		killed := make(map[string]bool)
		for idx, instr := range b.Instrs {
			switch i := instr.(type) {
			case *ir.Const:
				if err := d.recordDef(fnName, b, idx, i.Dest, i.Type); err != nil {
					return nil, err
				}
				killed[i.Dest] = true
			case *ir.ValueOp:
				for _, arg := range i.Args {
					if !killed[arg] {
						d.Global[arg] = true
					}
				}
				if err := d.recordDef(fnName, b, idx, i.Dest, i.Type); err != nil {
					return nil, err
				}
				killed[i.Dest] = true
			}
		}
	}
	return d, nil
}

func (d *Definitions) recordDef(fnName string, b *cfg.BasicBlock, idx int, dest string, tp ir.ValueType) error {
	if existing, ok := d.Types[dest]; ok && existing != tp {
		return ir.NewError(ir.InconsistentDef, fnName,
			"variable "+dest+" is defined with declared type "+string(existing)+" and also "+string(tp)).WithBlock(b.Label, idx)
	}
	d.Types[dest] = tp
	if d.Defs[dest] == nil {
		d.Defs[dest] = make(map[*cfg.BasicBlock]bool)
	}
	d.Defs[dest][b] = true
	d.DefCount[dest]++
	return nil
}
