package framework

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

type Outcome string

const (
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeAborted Outcome = "aborted"
	OutcomeCrashed Outcome = "crashed"
)

// CaseReport is the result of running one case
type CaseReport struct {
	Name     string   `json:"name"`
	Weight   float64  `json:"weight"`
	Checked  uint64   `json:"checked"`
	Passed   uint64   `json:"passed"`
	Score    float64  `json:"score"`
	Weighted float64  `json:"weighted"`
	Outcome  Outcome  `json:"outcome"`
	Failures []Result `json:"failures,omitempty"`
}

func newCaseReport(tc *Case, outcome Outcome) *CaseReport {
	score := tc.Score()
	return &CaseReport{
		Name:     tc.name,
		Weight:   tc.weight,
		Checked:  tc.checked,
		Passed:   tc.passed,
		Score:    score,
		Weighted: tc.weight * score,
		Outcome:  outcome,
		Failures: append([]Result(nil), tc.failures...),
	}
}

// Report aggregates the results of a run
type Report struct {
	RunID         string        `json:"run_id"`
	Cases         []*CaseReport `json:"cases"`
	Checked       uint64        `json:"checked"`
	Passed        uint64        `json:"passed"`
	TotalWeight   float64       `json:"total_weight"`
	WeightedScore float64       `json:"weighted_score"`
	Crashed       int           `json:"crashed"`
}

func (r *Report) add(c *CaseReport) {
	r.Cases = append(r.Cases, c)
	r.Checked += c.Checked
	r.Passed += c.Passed
	r.TotalWeight += c.Weight
	r.WeightedScore += c.Weighted
	if c.Outcome == OutcomeCrashed {
		r.Crashed++
	}
}

// Success is true if every check of every case passed
func (r *Report) Success() bool {
	return r.Passed == r.Checked && r.Crashed == 0
}

// ExitCode is 0 if the run succeeded and 1 otherwise
func (r *Report) ExitCode() int {
	if r.Success() {
		return 0
	}
	return 1
}

// Percent is the weighted score relative to the total weight
func (r *Report) Percent() float64 {
	if r.TotalWeight == 0 {
		return 0
	}
	return 100 * r.WeightedScore / r.TotalWeight
}

// Err returns one error per crashed case, or nil
func (r *Report) Err() error {
	var result error
	for _, c := range r.Cases {
		if c.Outcome != OutcomeCrashed {
			continue
		}
		msg := "crashed"
		if n := len(c.Failures); n != 0 {
			msg = c.Failures[n-1].Message
		}
		result = multierror.Append(result, fmt.Errorf("case %q: %s", c.Name, msg))
	}
	return result
}
