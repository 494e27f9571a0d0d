// Package diag turns the typed errors raised by the pipeline packages into
// diagnostics suitable for end-user reporting and prints them with a
// colored Formatter; it also provides the leveled, colored logger used by
// the CLI.
package diag

import "github.com/briolir/briolir/internal/ir"

// Stage identifies which pipeline phase produced the diagnostic.
type Stage string

const (
	StageProgramIO   Stage = "program"
	StageCFG         Stage = "cfg"
	StageDominance   Stage = "dominance"
	StagePhiInsert   Stage = "phi-insertion"
	StageRenaming    Stage = "renaming"
)

// Severity captures how impactful the diagnostic is. Every error the
// pipeline itself raises is fatal to the function it names, but the type
// stays three-valued so the logger and formatter have somewhere to put
// warnings and notes emitted around it.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Code is a stable identifier for a diagnostic, one per ir.ErrorKind.
type Code string

const (
	CodeMalformedInstruction Code = "IR_MALFORMED_INSTRUCTION"
	CodeUnknownOperator      Code = "IR_UNKNOWN_OPERATOR"
	CodeUnknownType          Code = "IR_UNKNOWN_TYPE"
	CodeStructuralCFG        Code = "CFG_STRUCTURAL"
	CodeBrokenTerminator     Code = "CFG_BROKEN_TERMINATOR"
	CodeInconsistentDef      Code = "SSA_INCONSISTENT_DEF"
)

var codeByKind = map[ir.ErrorKind]Code{
	ir.MalformedInstruction: CodeMalformedInstruction,
	ir.UnknownOperator:      CodeUnknownOperator,
	ir.UnknownType:          CodeUnknownType,
	ir.StructuralCFG:        CodeStructuralCFG,
	ir.BrokenTerminator:     CodeBrokenTerminator,
	ir.InconsistentDef:      CodeInconsistentDef,
}

// Location pinpoints an instruction within a function for attribution;
// there are no source spans in this IR, only function/block/index.
type Location struct {
	Function string
	Block    string
	Index    int
}

// HasBlock reports whether the location names a specific block, as opposed
// to pointing at the function as a whole.
func (l Location) HasBlock() bool { return l.Block != "" }

// Diagnostic is surfaced to end users in place of a bare error string.
type Diagnostic struct {
	Stage    Stage
	Severity Severity
	Code     Code
	Message  string
	Location Location
}

// FromIRError converts a pipeline error into a Diagnostic, tagging it with
// the stage that raised it.
func FromIRError(stage Stage, err *ir.Error) Diagnostic {
	return Diagnostic{
		Stage:    stage,
		Severity: SeverityError,
		Code:     codeByKind[err.Kind],
		Message:  err.Message,
		Location: Location{
			Function: err.Function,
			Block:    err.Block,
			Index:    err.Index,
		},
	}
}
