package framework

import (
	"fmt"
	"io"
)

// Body is the work of a case. Returning an error that wraps ErrAbort
// stops the case after a Fail, any other error is counted as a failed check.
type Body func(c *C) error

type State int

const (
	StatePending State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option configures a Case
type Option func(tc *Case)

// WithWeight sets the weight of the case in the overall score.
func WithWeight(weight float64) Option {
	return func(tc *Case) {
		tc.weight = weight
	}
}

// Case is a named, weighted unit of work that counts its checks.
type Case struct {
	name   string
	weight float64
	body   Body

	// definition site, set by Register
	file string
	line int

	state   State
	checked uint64
	passed  uint64
	aborted bool

	// set only while the case is running
	sink          io.Writer
	lenientPanics bool
	failures      []Result
}

func NewCase(name string, body Body, opts ...Option) *Case {
	tc := &Case{
		name:   name,
		weight: 1.0,
		body:   body,
	}
	for _, opt := range opts {
		opt(tc)
	}
	return tc
}

func (tc *Case) Name() string {
	return tc.name
}

func (tc *Case) Weight() float64 {
	return tc.weight
}

func (tc *Case) State() State {
	return tc.state
}

func (tc *Case) Checked() uint64 {
	return tc.checked
}

func (tc *Case) Passed() uint64 {
	return tc.passed
}

// Failures returns the failed checks of the last run
func (tc *Case) Failures() []Result {
	return tc.failures
}

// Score is the ratio of passed checks. A case without checks scores 0.
func (tc *Case) Score() float64 {
	if tc.checked == 0 {
		return 0
	}
	return float64(tc.passed) / float64(tc.checked)
}

// RecordCheck counts one check and, if it passed, one pass.
func (tc *Case) RecordCheck(passed bool) {
	tc.checked++
	if passed {
		tc.passed++
	}
}

// Check records a boolean check. On failure the diagnostic quotes condText.
func (tc *Case) Check(cond bool, condText, file string, line int) {
	tc.mustBeRunning(file, line)
	tc.RecordCheck(cond)
	if !cond {
		tc.report(Result{
			Kind:    KindCheck,
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("%q failed", condText),
		})
	}
}

// CheckMessage is like Check but reports msg on failure.
func (tc *Case) CheckMessage(cond bool, msg, file string, line int) {
	tc.mustBeRunning(file, line)
	tc.RecordCheck(cond)
	if !cond {
		tc.report(Result{
			Kind:    KindMessage,
			File:    file,
			Line:    line,
			Message: msg,
		})
	}
}

// Fail records a failed check and returns an error wrapping ErrAbort.
// The body must return it to stop the case, any check issued after Fail
// panics with *UsageError.
func (tc *Case) Fail(msg, file string, line int) error {
	tc.mustBeRunning(file, line)
	tc.aborted = true
	tc.RecordCheck(false)
	tc.report(Result{
		Kind:    KindFail,
		File:    file,
		Line:    line,
		Message: msg,
	})
	return fmt.Errorf("%w: %s", ErrAbort, msg)
}

func (tc *Case) mustBeRunning(file string, line int) {
	if tc.state != StateRunning || tc.sink == nil {
		panic(&UsageError{
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("check issued on case %q while it is %s", tc.name, tc.state),
		})
	}
	if tc.aborted {
		panic(&UsageError{
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("check issued on case %q after Fail", tc.name),
		})
	}
}

// Aborted reports whether Fail was called during the last run
func (tc *Case) Aborted() bool {
	return tc.aborted
}

// report writes the diagnostic of a failed (or warned) check.
func (tc *Case) report(res Result) {
	res.Case = tc.name
	if !res.Warning {
		tc.failures = append(tc.failures, res)
	}
	fmt.Fprintln(tc.sink, res.String())
}

func (tc *Case) begin(sink io.Writer, lenientPanics bool) {
	tc.checked = 0
	tc.passed = 0
	tc.failures = nil
	tc.aborted = false
	tc.sink = sink
	tc.lenientPanics = lenientPanics
	tc.state = StateRunning
}

func (tc *Case) end() {
	tc.sink = nil
	tc.state = StateCompleted
}
