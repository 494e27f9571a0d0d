package ssa_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/ir"
	"github.com/briolir/briolir/internal/ssa"
)

// canonicalExampleInstrs is the nine-block, eleven-variable function named
// in spec.md §8's "canonical example" scenario, reconstructed from the
// golden topology and variable-definition tables of
// original_source/src/self-test.py's CfgTest/DomTest/SsaTest (the original
// example.bril source itself is not part of the retrieval pack, only the
// golden values it was run through). i/a/b/c/d are each read through a
// throwaway "id" copy in a block that doesn't itself (re)define them, which
// is exactly what makes them cross-block ("global") names; y/z/hundred/
// cond/cond2/cond3 are never read outside their defining block, so they
// stay purely local.
func canonicalExampleInstrs(t *testing.T) []ir.Instruction {
	t.Helper()
	return []ir.Instruction{
		mustInstr(t, map[string]any{"label": "b0"}),
		mustInstr(t, map[string]any{"dest": "i", "op": "const", "type": "int", "value": float64(0)}),
		mustInstr(t, map[string]any{"op": "jmp", "labels": []any{"b1"}}),

		mustInstr(t, map[string]any{"label": "b1"}),
		mustInstr(t, map[string]any{"dest": "a", "op": "const", "type": "int", "value": float64(0)}),
		mustInstr(t, map[string]any{"dest": "c", "op": "const", "type": "int", "value": float64(0)}),
		mustInstr(t, map[string]any{"dest": "cond", "op": "const", "type": "bool", "value": true}),
		mustInstr(t, map[string]any{"dest": "t1", "op": "id", "type": "int", "args": []any{"i"}}),
		mustInstr(t, map[string]any{"op": "br", "args": []any{"cond"}, "labels": []any{"b2", "b5"}}),

		mustInstr(t, map[string]any{"label": "b2"}),
		mustInstr(t, map[string]any{"dest": "b", "op": "const", "type": "int", "value": float64(0)}),
		mustInstr(t, map[string]any{"dest": "c", "op": "const", "type": "int", "value": float64(1)}),
		mustInstr(t, map[string]any{"dest": "d", "op": "const", "type": "int", "value": float64(0)}),
		mustInstr(t, map[string]any{"dest": "t2", "op": "id", "type": "int", "args": []any{"a"}}),
		mustInstr(t, map[string]any{"op": "jmp", "labels": []any{"b3"}}),

		mustInstr(t, map[string]any{"label": "b3"}),
		mustInstr(t, map[string]any{"dest": "i", "op": "const", "type": "int", "value": float64(1)}),
		mustInstr(t, map[string]any{"dest": "y", "op": "const", "type": "int", "value": float64(0)}),
		mustInstr(t, map[string]any{"dest": "z", "op": "const", "type": "int", "value": float64(0)}),
		mustInstr(t, map[string]any{"dest": "hundred", "op": "const", "type": "int", "value": float64(100)}),
		mustInstr(t, map[string]any{"dest": "cond2", "op": "const", "type": "bool", "value": true}),
		mustInstr(t, map[string]any{"dest": "t3", "op": "id", "type": "int", "args": []any{"c"}}),
		mustInstr(t, map[string]any{"dest": "t4", "op": "id", "type": "int", "args": []any{"b"}}),
		mustInstr(t, map[string]any{"op": "br", "args": []any{"cond2"}, "labels": []any{"b4", "b1"}}),

		mustInstr(t, map[string]any{"label": "b4"}),
		mustInstr(t, map[string]any{"op": "ret"}),

		mustInstr(t, map[string]any{"label": "b5"}),
		mustInstr(t, map[string]any{"dest": "a", "op": "const", "type": "int", "value": float64(1)}),
		mustInstr(t, map[string]any{"dest": "d", "op": "const", "type": "int", "value": float64(1)}),
		mustInstr(t, map[string]any{"dest": "cond3", "op": "const", "type": "bool", "value": true}),
		mustInstr(t, map[string]any{"op": "br", "args": []any{"cond3"}, "labels": []any{"b6", "b8"}}),

		mustInstr(t, map[string]any{"label": "b6"}),
		mustInstr(t, map[string]any{"dest": "d", "op": "const", "type": "int", "value": float64(2)}),
		mustInstr(t, map[string]any{"op": "jmp", "labels": []any{"b7"}}),

		mustInstr(t, map[string]any{"label": "b7"}),
		mustInstr(t, map[string]any{"dest": "b", "op": "const", "type": "int", "value": float64(1)}),
		mustInstr(t, map[string]any{"dest": "t5", "op": "id", "type": "int", "args": []any{"d"}}),
		mustInstr(t, map[string]any{"op": "jmp", "labels": []any{"b3"}}),

		mustInstr(t, map[string]any{"label": "b8"}),
		mustInstr(t, map[string]any{"dest": "c", "op": "const", "type": "int", "value": float64(2)}),
		mustInstr(t, map[string]any{"op": "jmp", "labels": []any{"b7"}}),
	}
}

func buildCanonicalExample(t *testing.T) *cfg.CFG {
	t.Helper()
	fn := &ir.Function{Name: "main", Instrs: canonicalExampleInstrs(t)}
	c, err := cfg.Build(fn)
	require.NoError(t, err)
	return c
}

func blockSetLabels(dom map[*cfg.BasicBlock]bool) []string {
	var out []string
	for b := range dom {
		out = append(out, b.Label)
	}
	return out
}

func TestComputeDominanceCanonicalExampleMatchesGoldenSets(t *testing.T) {
	c := buildCanonicalExample(t)
	dom, err := ssa.ComputeDominance("main", c)
	require.NoError(t, err)

	want := map[string][]string{
		"b0": {"b0"},
		"b1": {"b0", "b1"},
		"b2": {"b0", "b1", "b2"},
		"b3": {"b0", "b1", "b3"},
		"b4": {"b0", "b1", "b3", "b4"},
		"b5": {"b0", "b1", "b5"},
		"b6": {"b0", "b1", "b5", "b6"},
		"b7": {"b0", "b1", "b5", "b7"},
		"b8": {"b0", "b1", "b5", "b8"},
	}
	for label, expect := range want {
		b := c.Blocks[label]
		assert.ElementsMatch(t, expect, blockSetLabels(dom.Dom[b]), "dom[%s]", label)
	}
}

func TestComputeDominanceCanonicalExampleMatchesGoldenIdom(t *testing.T) {
	c := buildCanonicalExample(t)
	dom, err := ssa.ComputeDominance("main", c)
	require.NoError(t, err)

	assert.Nil(t, dom.Idom[c.Entry])

	want := map[string]string{
		"b1": "b0",
		"b2": "b1",
		"b3": "b1",
		"b4": "b3",
		"b5": "b1",
		"b6": "b5",
		"b7": "b5",
		"b8": "b5",
	}
	for label, idomLabel := range want {
		b := c.Blocks[label]
		require.NotNil(t, dom.Idom[b], "idom[%s]", label)
		assert.Equal(t, idomLabel, dom.Idom[b].Label, "idom[%s]", label)
	}
}

func TestComputeDominanceCanonicalExampleMatchesGoldenFrontiers(t *testing.T) {
	c := buildCanonicalExample(t)
	dom, err := ssa.ComputeDominance("main", c)
	require.NoError(t, err)

	want := map[string][]string{
		"b0": {},
		"b1": {"b1"},
		"b2": {"b3"},
		"b3": {"b1"},
		"b4": {},
		"b5": {"b3"},
		"b6": {"b7"},
		"b7": {"b3"},
		"b8": {"b7"},
	}
	for label, expect := range want {
		b := c.Blocks[label]
		assert.ElementsMatch(t, expect, blockSetLabels(dom.DF[b]), "df[%s]", label)
	}
}

func TestScanDefinitionsCanonicalExampleMatchesGoldenDefsAndGlobals(t *testing.T) {
	c := buildCanonicalExample(t)
	defs, err := ssa.ScanDefinitions("main", c)
	require.NoError(t, err)

	wantDefs := map[string][]string{
		"i":       {"b0", "b3"},
		"a":       {"b1", "b5"},
		"b":       {"b2", "b7"},
		"c":       {"b1", "b2", "b8"},
		"d":       {"b2", "b5", "b6"},
		"y":       {"b3"},
		"z":       {"b3"},
		"hundred": {"b3"},
		"cond":    {"b1"},
		"cond2":   {"b3"},
		"cond3":   {"b5"},
	}
	for name, expect := range wantDefs {
		assert.ElementsMatch(t, expect, blockSetLabels(defs.Defs[name]), "defs[%s]", name)
	}

	for _, global := range []string{"i", "a", "b", "c", "d"} {
		assert.True(t, defs.Global[global], "expected %q to be global", global)
	}
	for _, local := range []string{"y", "z", "hundred", "cond", "cond2", "cond3"} {
		assert.False(t, defs.Global[local], "expected %q to stay local", local)
	}
}
