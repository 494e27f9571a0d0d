package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/briolir/briolir/internal/cfg"
	"github.com/briolir/briolir/internal/program"
	"github.com/briolir/briolir/internal/ssa"
)

func newDumpCmd(root *rootOptions) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print each function's CFG and dominance information, without transforming it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(input)
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "-", "input program JSON file, or - for stdin")

	return cmd
}

func runDump(input string) error {
	in, closeIn, err := openInput(input)
	if err != nil {
		return err
	}
	defer closeIn()

	prog, err := program.Decode(in)
	if err != nil {
		return err
	}

	for i, fn := range prog.Functions {
		if i > 0 {
			fmt.Println()
		}
		c, err := cfg.Build(fn)
		if err != nil {
			fmt.Println(err)
			continue
		}
		dom, err := ssa.ComputeDominance(fn.Name, c)
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Println(ssa.Dump(c, dom))
	}
	return nil
}
