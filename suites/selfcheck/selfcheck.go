// Package selfcheck registers cases that run the framework against private
// registries and verify what it counts and prints.
package selfcheck

import (
	"bytes"
	"strings"

	"github.com/umbracle/scorecard/framework"
)

func init() {
	framework.Register("check_counts", checkCounts)
	framework.Register("equal_diagnostic", equalDiagnostic)
	framework.Register("execution_order", executionOrder)
	framework.Register("fail_aborts_case", failAbortsCase)
	framework.Register("panic_kinds", panicKinds)
	framework.Register("weighted_score", weightedScore, framework.WithWeight(2))
	framework.Register("within_tolerance", withinTolerance)
}

// run executes the given cases in a private registry and returns the
// report and everything the runner printed.
func run(c *framework.C, cases ...*framework.Case) (*framework.Report, string, error) {
	c.Helper()

	registry := framework.NewRegistry()
	for _, tc := range cases {
		if err := registry.Add(tc); err != nil {
			return nil, "", c.Fail("failed to add case: %v", err)
		}
	}

	var out bytes.Buffer
	config := framework.DefaultConfig()
	config.Output = &out
	config.Quiet = true

	report := framework.NewRunner(registry, config).Run()
	return report, out.String(), nil
}

func checkCounts(c *framework.C) error {
	report, out, err := run(c, framework.NewCase("inner", func(ic *framework.C) error {
		one := 1
		ic.Check(one == 1)
		ic.Check(one == 2)
		return nil
	}))
	if err != nil {
		return err
	}

	framework.Equal(c, report.Checked, uint64(2))
	framework.Equal(c, report.Passed, uint64(1))
	framework.Equal(c, strings.Count(out, `" failed`), 1)
	return nil
}

func equalDiagnostic(c *framework.C) error {
	_, out, err := run(c, framework.NewCase("inner", func(ic *framework.C) error {
		a, b := 2, 3
		framework.Equal(ic, a, b)
		return nil
	}))
	if err != nil {
		return err
	}

	c.CheckMessage(strings.Contains(out, `[2] != "`) && strings.Contains(out, `" [3]`), "unexpected diagnostic: %q", out)
	return nil
}

func withinTolerance(c *framework.C) error {
	report, out, err := run(c, framework.NewCase("inner", func(ic *framework.C) error {
		framework.Within(ic, 1.0, 1.0009, 0.001)
		framework.Within(ic, 1.0, 1.01, 0.001)
		return nil
	}))
	if err != nil {
		return err
	}

	framework.Equal(c, report.Checked, uint64(2))
	framework.Equal(c, report.Passed, uint64(1))
	c.Check(strings.Contains(out, "|1 - 1.01|"))
	return nil
}

func failAbortsCase(c *framework.C) error {
	reached := false
	report, _, err := run(c, framework.NewCase("inner", func(ic *framework.C) error {
		if true {
			return ic.Fail("boom")
		}
		reached = true
		return nil
	}))
	if err != nil {
		return err
	}

	c.Check(!reached)
	framework.Equal(c, report.Checked, uint64(1))
	framework.Equal(c, report.Passed, uint64(0))
	framework.Equal(c, report.Cases[0].Outcome, framework.OutcomeAborted)
	return nil
}

type kindError struct{}

func (kindError) Error() string { return "kind" }

func panicKinds(c *framework.C) error {
	report, _, err := run(c, framework.NewCase("inner", func(ic *framework.C) error {
		framework.Panics[kindError](ic, func() { panic(kindError{}) })
		framework.Panics[kindError](ic, func() {})
		framework.Panics[kindError](ic, func() { panic("other") })
		return nil
	}))
	if err != nil {
		return err
	}

	framework.Equal(c, report.Checked, uint64(3))
	framework.Equal(c, report.Passed, uint64(1))
	return nil
}

func executionOrder(c *framework.C) error {
	var order []string
	record := func(name string) *framework.Case {
		return framework.NewCase(name, func(ic *framework.C) error {
			order = append(order, ic.Name())
			return nil
		})
	}
	if _, _, err := run(c, record("zeta"), record("alpha"), record("mu")); err != nil {
		return err
	}

	framework.Equal(c, strings.Join(order, ","), "alpha,mu,zeta")
	return nil
}

func weightedScore(c *framework.C) error {
	half := func(ic *framework.C) error {
		ic.Check(true)
		ic.Check(false)
		return nil
	}
	report, _, err := run(c,
		framework.NewCase("half", half, framework.WithWeight(4)),
		framework.NewCase("ignored", half, framework.WithWeight(0)),
		framework.NewCase("empty", func(*framework.C) error { return nil }),
	)
	if err != nil {
		return err
	}

	framework.Within(c, report.WeightedScore, 2.0, 1e-9)
	framework.Within(c, report.TotalWeight, 5.0, 1e-9)
	return nil
}
