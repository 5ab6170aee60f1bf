package framework

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-uuid"
)

// Config is the configuration of the Runner
type Config struct {
	// Output receives the diagnostics and the final report
	Output io.Writer

	// Log, if set, receives a copy of everything written to Output
	Log io.Writer

	Logger hclog.Logger

	// LenientPanics counts a panic of an unexpected kind as a passed check
	LenientPanics bool

	// Quiet skips the per-case table in the final report
	Quiet bool
}

func DefaultConfig() *Config {
	return &Config{
		Output: os.Stdout,
		Logger: hclog.NewNullLogger(),
	}
}

// Runner executes the cases of a registry one at a time, in name order.
type Runner struct {
	config   *Config
	registry *Registry
	logger   hclog.Logger
	out      io.Writer

	// case currently receiving checks
	current *Case
}

func NewRunner(registry *Registry, config *Config) *Runner {
	if config == nil {
		config = DefaultConfig()
	}
	logger := config.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	out := config.Output
	if out == nil {
		out = io.Discard
	}
	if config.Log != nil {
		out = io.MultiWriter(out, config.Log)
	}
	return &Runner{
		config:   config,
		registry: registry,
		logger:   logger,
		out:      out,
	}
}

// Current returns the case that is running. Calling it while no case
// runs is a usage error and panics.
func (r *Runner) Current(file string, line int) *Case {
	if r.current == nil {
		panic(&UsageError{
			File:    file,
			Line:    line,
			Message: "check issued while no case is running",
		})
	}
	return r.current
}

// Run executes every registered case and writes the final report. One
// failing or crashing case never stops the run.
func (r *Runner) Run() *Report {
	runID, err := uuid.GenerateUUID()
	if err != nil {
		r.logger.Warn("failed to generate run id", "err", err)
	}
	report := &Report{
		RunID: runID,
		Cases: []*CaseReport{},
	}

	cases := r.registry.Cases()
	r.logger.Info("running cases", "id", runID, "count", len(cases))

	for _, tc := range cases {
		report.add(r.runCase(tc))
	}

	if err := writeSummary(r.out, report, r.config.Quiet); err != nil {
		r.logger.Error("failed to write report", "err", err)
	}
	return report
}

func (r *Runner) runCase(tc *Case) *CaseReport {
	r.logger.Debug("running case", "name", tc.name, "weight", tc.weight)

	tc.begin(r.out, r.config.LenientPanics)
	r.current = tc
	outcome := r.execute(tc, newC(tc, r))
	r.current = nil
	tc.end()

	res := newCaseReport(tc, outcome)
	r.logger.Info("case completed", "name", tc.name, "checked", res.Checked, "passed", res.Passed, "outcome", outcome)
	return res
}

// execute calls the body and converts whatever escapes it into an outcome.
func (r *Runner) execute(tc *Case, c *C) (outcome Outcome) {
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		r.logger.Error("case crashed", "name", tc.name, "panic", v)

		tc.RecordCheck(false)
		tc.report(Result{
			Kind:    KindCrash,
			File:    tc.file,
			Line:    tc.line,
			Message: fmt.Sprintf("case crashed: %v", v),
		})
		outcome = OutcomeCrashed
	}()

	err := tc.body(c)
	switch {
	case err == nil:
	case errors.Is(err, ErrAbort):
		return OutcomeAborted
	default:
		tc.RecordCheck(false)
		tc.report(Result{
			Kind:    KindError,
			File:    tc.file,
			Line:    tc.line,
			Message: fmt.Sprintf("case returned error: %v", err),
		})
	}

	if tc.aborted {
		return OutcomeAborted
	}
	if tc.passed == tc.checked {
		return OutcomePassed
	}
	return OutcomeFailed
}
