package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/briolir/briolir/internal/diag"
	"github.com/briolir/briolir/internal/ir"
	"github.com/briolir/briolir/internal/program"
)

func newTransformCmd(root *rootOptions) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Convert every function in a program to SSA form",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTransform(root, input, output)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "input program JSON file, or - for stdin")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output program JSON file, or - for stdout")

	return cmd
}

func runTransform(root *rootOptions, input, output string) error {
	log := root.logger()

	in, closeIn, err := openInput(input)
	if err != nil {
		return err
	}
	defer closeIn()

	prog, err := program.Decode(in)
	if err != nil {
		return err
	}
	log.Info("decoded %d function(s) from %s", len(prog.Functions), input)

	results, runErr := program.Run(prog)
	formatter := diag.NewFormatter(os.Stderr, root.noColor)
	for _, r := range results {
		if r.Err == nil {
			log.Info("function %q: converted to SSA", r.Function)
			continue
		}
		if irErr, ok := r.Err.(*ir.Error); ok {
			formatter.Format(diag.FromIRError(stageForKind(irErr.Kind), irErr))
		} else {
			log.Error("function %q: %s", r.Function, r.Err)
		}
	}

	out, closeOut, err := openOutput(output)
	if err != nil {
		return err
	}
	defer closeOut()

	if err := program.Encode(out, prog); err != nil {
		return err
	}

	return runErr
}

// stageForKind attributes an ir.Error to the pipeline stage that would have
// raised it, for diagnostic grouping only.
func stageForKind(k ir.ErrorKind) diag.Stage {
	switch k {
	case ir.MalformedInstruction, ir.UnknownOperator, ir.UnknownType:
		return diag.StageProgramIO
	case ir.StructuralCFG, ir.BrokenTerminator:
		return diag.StageCFG
	case ir.InconsistentDef:
		// spec.md §4.5: this error "may be detected lazily at φ-insertion
		// time" even though this implementation catches it during the
		// definition scan that precedes φ-insertion.
		return diag.StagePhiInsert
	default:
		return diag.StageProgramIO
	}
}

func openInput(path string) (*os.File, func(), error) {
	if path == "-" || path == "" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "-" || path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, func() {}, err
	}
	return f, func() { f.Close() }, nil
}
