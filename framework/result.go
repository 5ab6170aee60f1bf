package framework

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrAbort marks the early exit of a case after Fail
var ErrAbort = errors.New("case aborted")

// Kind is the type of check that produced a Result
type Kind string

const (
	KindCheck   Kind = "check"
	KindMessage Kind = "message"
	KindEqual   Kind = "equal"
	KindWithin  Kind = "within"
	KindPanics  Kind = "panics"
	KindFail    Kind = "fail"
	KindError   Kind = "error"
	KindCrash   Kind = "crash"
)

// Result is the diagnostic of a single check that did not pass.
type Result struct {
	Case    string `json:"case"`
	Kind    Kind   `json:"kind"`
	File    string `json:"file"`
	Line    int    `json:"line"`
	Message string `json:"message"`

	// Warning results are printed but were counted as passed
	Warning bool `json:"warning,omitempty"`
}

func (r Result) String() string {
	file := r.File
	if file == "" {
		file = "???"
	} else {
		file = filepath.Base(file)
	}
	prefix := ""
	if r.Warning {
		prefix = "warning: "
	}
	return fmt.Sprintf("%s:%d: %s: %s%s", file, r.Line, r.Case, prefix, r.Message)
}

// UsageError is the panic value for checks issued outside of a running case.
// Panics never recovers it, so inside a case it surfaces as a crash.
type UsageError struct {
	File    string
	Line    int
	Message string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("framework: %s:%d: %s", filepath.Base(e.File), e.Line, e.Message)
}
