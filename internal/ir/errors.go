package ir

import "fmt"

// ErrorKind enumerates the fatal structural error categories from spec.md §7.
type ErrorKind int

const (
	// MalformedInstruction covers missing or wrong-typed fields.
	MalformedInstruction ErrorKind = iota
	// UnknownOperator covers an operator string absent from the closed set.
	UnknownOperator
	// UnknownType covers a type string absent from the closed set.
	UnknownType
	// StructuralCFG covers missing branch labels, unresolved targets, and
	// blocks left without a terminator after patching.
	StructuralCFG
	// BrokenTerminator covers a last instruction that isn't a terminating
	// effect-op where one is required.
	BrokenTerminator
	// InconsistentDef covers a variable assigned with two different
	// declared types.
	InconsistentDef
)

func (k ErrorKind) String() string {
	switch k {
	case MalformedInstruction:
		return "MalformedInstruction"
	case UnknownOperator:
		return "UnknownOperator"
	case UnknownType:
		return "UnknownType"
	case StructuralCFG:
		return "StructuralCFG"
	case BrokenTerminator:
		return "BrokenTerminator"
	case InconsistentDef:
		return "InconsistentDef"
	default:
		return "UnknownError"
	}
}

// Error is a fatal, function-scoped structural error. It names the function
// and, where known, the block and instruction index responsible, so a
// diagnostic can point a caller at the offending instruction without this
// package needing to know anything about source spans (there are none —
// the input is already IR).
type Error struct {
	Kind     ErrorKind
	Function string
	Block    string // empty if not yet assigned to a block
	Index    int    // index within Block.Instrs, or -1 if not applicable
	Message  string
}

func (e *Error) Error() string {
	if e.Block != "" {
		return fmt.Sprintf("%s: function %q, block %q, instr %d: %s",
			e.Kind, e.Function, e.Block, e.Index, e.Message)
	}
	return fmt.Sprintf("%s: function %q: %s", e.Kind, e.Function, e.Message)
}

// NewError builds a structural Error not yet attributed to a specific block.
func NewError(kind ErrorKind, function, message string) *Error {
	return &Error{Kind: kind, Function: function, Index: -1, Message: message}
}

// WithBlock returns a copy of e attributed to the given block and
// instruction index.
func (e *Error) WithBlock(block string, index int) *Error {
	cp := *e
	cp.Block = block
	cp.Index = index
	return &cp
}
