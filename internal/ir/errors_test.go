package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/briolir/briolir/internal/ir"
)

func TestErrorMessageWithBlock(t *testing.T) {
	err := ir.NewError(ir.StructuralCFG, "main", "bad branch").WithBlock("b2", 3)
	assert.Equal(t, `StructuralCFG: function "main", block "b2", instr 3: bad branch`, err.Error())
}

func TestErrorMessageWithoutBlock(t *testing.T) {
	err := ir.NewError(ir.UnknownType, "main", "unknown type foo")
	assert.Equal(t, `UnknownType: function "main": unknown type foo`, err.Error())
}
