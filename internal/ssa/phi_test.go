package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briolir/briolir/internal/ir"
	"github.com/briolir/briolir/internal/ssa"
)

func TestInsertPhisPlacesOnePhiAtJoinBlockOnly(t *testing.T) {
	c := buildDiamond(t)
	// Give x a definition in the entry, in then and in else, and read it in
	// end, so end (the join) needs a phi for x and no other block does.
	entry := c.Entry
	then := c.Blocks["then"]
	els := c.Blocks["else"]
	end := c.Blocks["end"]

	entry.Instrs = append([]ir.Instruction{mustInstr(t, map[string]any{"dest": "x", "op": "const", "type": "int", "value": float64(1)})}, entry.Instrs...)
	then.Instrs = append([]ir.Instruction{mustInstr(t, map[string]any{"dest": "x", "op": "const", "type": "int", "value": float64(2)})}, then.Instrs...)
	els.Instrs = append([]ir.Instruction{mustInstr(t, map[string]any{"dest": "x", "op": "const", "type": "int", "value": float64(3)})}, els.Instrs...)
	end.Instrs = append([]ir.Instruction{mustInstr(t, map[string]any{"dest": "y", "op": "id", "type": "int", "args": []any{"x"}})}, end.Instrs...)

	defs, err := ssa.ScanDefinitions("main", c)
	require.NoError(t, err)
	require.True(t, defs.Global["x"])

	dom, err := ssa.ComputeDominance("main", c)
	require.NoError(t, err)

	origin := ssa.InsertPhis(c, defs, dom)

	phis := end.Phis()
	require.Len(t, phis, 1)
	assert.Equal(t, "x", origin[phis[0]])

	assert.Empty(t, entry.Phis())
	assert.Empty(t, then.Phis())
	assert.Empty(t, els.Phis())
}
