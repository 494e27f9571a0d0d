package program

import (
	"github.com/hashicorp/go-multierror"

	"github.com/briolir/briolir/internal/ir"
	"github.com/briolir/briolir/internal/ssa"
)

// Result records, per function, whether SSA construction succeeded.
type Result struct {
	Function string
	Err      error
}

// Run transforms every function in prog into SSA form independently: a
// function whose pipeline fails is left exactly as decoded, and its error is
// collected rather than aborting the rest of the document (spec.md's
// per-function error isolation). The returned error is a *multierror.Error
// aggregating every failure, or nil if every function succeeded.
func Run(prog *ir.Program) ([]Result, error) {
	results := make([]Result, 0, len(prog.Functions))
	var errs *multierror.Error

	for _, fn := range prog.Functions {
		err := ssa.ConstructSSA(fn)
		results = append(results, Result{Function: fn.Name, Err: err})
		if err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return results, errs.ErrorOrNil()
}
