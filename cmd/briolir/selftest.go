package main

import (
	"bytes"
	"embed"
	"fmt"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/briolir/briolir/internal/program"
)

//go:embed testdata/*.json
var selftestFixtures embed.FS

// selftestScenarios names the fixture pairs under testdata/: <name>.in.json
// is transformed and diffed, structurally, against <name>.out.json. This
// stands in for running an external interpreter against both programs and
// comparing their traces: without one available, structural equality with a
// hand-verified golden SSA form is the closest approximation.
var selftestScenarios = []string{
	"straight_line",
	"diamond",
}

func newSelftestCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "selftest",
		Short: "Run the bundled conversion scenarios and report pass/fail",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSelftest(root)
		},
	}
}

func runSelftest(root *rootOptions) error {
	log := root.logger()

	failures := 0
	for _, name := range selftestScenarios {
		ok, err := runScenario(name)
		if err != nil {
			log.Error("%s: %s", name, err)
			failures++
			continue
		}
		if ok {
			log.Info("%s: PASS", name)
		} else {
			log.Error("%s: FAIL (output did not match golden SSA form)", name)
			failures++
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d scenario(s) failed", failures)
	}
	return nil
}

func runScenario(name string) (bool, error) {
	in, err := selftestFixtures.ReadFile("testdata/" + name + ".in.json")
	if err != nil {
		return false, err
	}
	want, err := selftestFixtures.ReadFile("testdata/" + name + ".out.json")
	if err != nil {
		return false, err
	}

	got, err := program.Decode(bytes.NewReader(in))
	if err != nil {
		return false, err
	}
	if _, err := program.Run(got); err != nil {
		return false, err
	}

	wantProg, err := program.Decode(bytes.NewReader(want))
	if err != nil {
		return false, err
	}

	diff := cmp.Diff(wantProg, got)
	return diff == "", nil
}
