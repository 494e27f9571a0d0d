package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
	"github.com/briolir/briolir/internal/ssa"
)

func mustInstr(t *testing.T, raw map[string]any) ir.Instruction {
	t.Helper()
	instr, err := ir.ParseInstruction("main", raw)
	require.NoError(t, err)
	return instr
}

func TestScanDefinitionsIgnoresEffectOpOperandsForGlobalSet(t *testing.T) {
	fn := &ir.Function{
		Name: "main",
		Instrs: []ir.Instruction{
			mustInstr(t, map[string]any{"dest": "x", "op": "const", "type": "int", "value": float64(1)}),
			mustInstr(t, map[string]any{"op": "print", "args": []any{"x"}}),
		},
	}
	c, err := cfg.Build(fn)
	require.NoError(t, err)

	defs, err := ssa.ScanDefinitions("main", c)
	require.NoError(t, err)

	assert.False(t, defs.Global["x"])
	assert.Equal(t, 1, defs.DefCount["x"])
	// A plain, un-versioned name always needs versioning (spec.md §4.6 step
	// 3(c)), regardless of being neither global nor redefined.
	assert.True(t, defs.NeedsVersioning("x"))
}

func TestNeedsVersioningLeavesAlreadyVersionedSoloDefinitionAlone(t *testing.T) {
	fn := &ir.Function{
		Name: "main",
		Instrs: []ir.Instruction{
			mustInstr(t, map[string]any{"dest": "x.1", "op": "const", "type": "int", "value": float64(1)}),
			mustInstr(t, map[string]any{"op": "print", "args": []any{"x.1"}}),
		},
	}
	c, err := cfg.Build(fn)
	require.NoError(t, err)

	defs, err := ssa.ScanDefinitions("main", c)
	require.NoError(t, err)

	// Already-SSA input (dotted name, single def, never read across a block
	// boundary) must not be versioned again, which is what keeps re-running
	// the pipeline on already-SSA input idempotent (spec.md §8 property 6).
	assert.False(t, defs.NeedsVersioning("x.1"))
}

func TestScanDefinitionsMarksValueOpOperandsGlobal(t *testing.T) {
	fn := &ir.Function{
		Name: "main",
		Instrs: []ir.Instruction{
			mustInstr(t, map[string]any{"dest": "x", "op": "const", "type": "int", "value": float64(1)}),
			mustInstr(t, map[string]any{"label": "b2"}),
			mustInstr(t, map[string]any{"dest": "y", "op": "id", "type": "int", "args": []any{"x"}}),
		},
	}
	c, err := cfg.Build(fn)
	require.NoError(t, err)

	defs, err := ssa.ScanDefinitions("main", c)
	require.NoError(t, err)

	assert.True(t, defs.Global["x"])
	assert.True(t, defs.NeedsVersioning("x"))
}

func TestScanDefinitionsRejectsInconsistentType(t *testing.T) {
	fn := &ir.Function{
		Name: "main",
		Instrs: []ir.Instruction{
			mustInstr(t, map[string]any{"dest": "x", "op": "const", "type": "int", "value": float64(1)}),
			mustInstr(t, map[string]any{"dest": "x", "op": "const", "type": "bool", "value": true}),
		},
	}
	c, err := cfg.Build(fn)
	require.NoError(t, err)

	_, err = ssa.ScanDefinitions("main", c)
	require.Error(t, err)
	irErr, ok := err.(*ir.Error)
	require.True(t, ok)
	assert.Equal(t, ir.InconsistentDef, irErr.Kind)
}
