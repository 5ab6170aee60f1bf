package framework

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runCases runs the cases in a private registry and returns the report
// and the diagnostic lines printed before the summary.
func runCases(t *testing.T, config *Config, cases ...*Case) (*Report, []string) {
	t.Helper()

	r := NewRegistry()
	for _, tc := range cases {
		require.NoError(t, r.Add(tc))
	}
	if config == nil {
		config = DefaultConfig()
	}
	var out bytes.Buffer
	config.Output = &out
	config.Quiet = true

	report := NewRunner(r, config).Run()

	diag := out.String()
	if i := strings.LastIndex(diag, "\nchecked: "); i >= 0 {
		diag = diag[:i]
	}
	diag = strings.TrimSuffix(diag, "\n")
	if diag == "" {
		return report, nil
	}
	return report, strings.Split(diag, "\n")
}

func currentLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

func TestCheck(t *testing.T) {
	var line int
	report, lines := runCases(t, nil, NewCase("check", func(c *C) error {
		two := 2
		c.Check(two > 1)
		line = currentLine() + 1
		c.Check(two > 3)
		return nil
	}))

	assert.Equal(t, uint64(2), report.Checked)
	assert.Equal(t, uint64(1), report.Passed)
	assert.Equal(t, []string{
		fmt.Sprintf(`checks_test.go:%d: check: "two > 3" failed`, line),
	}, lines)
}

func TestCheckMessage(t *testing.T) {
	report, lines := runCases(t, nil, NewCase("message", func(c *C) error {
		c.CheckMessage(true, "not printed")
		c.CheckMessage(false, "got %d items", 3)
		return nil
	}))

	assert.Equal(t, uint64(1), report.Passed)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], ": message: got 3 items"), lines[0])
}

func TestEqual(t *testing.T) {
	report, lines := runCases(t, nil, NewCase("equal", func(c *C) error {
		a, b := 2, 2
		Equal(c, a, b)

		b = 3
		Equal(c, a, b)

		Equal(c, strings.ToUpper("x"), "X")
		return nil
	}))

	assert.Equal(t, uint64(3), report.Checked)
	assert.Equal(t, uint64(2), report.Passed)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `"a" [2] != "b" [3]`)
}

func TestCheckEqual_ExplicitLocation(t *testing.T) {
	_, lines := runCases(t, nil, NewCase("explicit", func(c *C) error {
		CheckEqual(c.Case(), 2, 2, "a", "b", "f.go", 10)
		CheckEqual(c.Case(), 2, 3, "a", "b", "f.go", 11)
		return nil
	}))

	assert.Equal(t, []string{`f.go:11: explicit: "a" [2] != "b" [3]`}, lines)
}

func TestWithin(t *testing.T) {
	report, lines := runCases(t, nil, NewCase("within", func(c *C) error {
		Within(c, 1.0, 1.0009, 0.001)
		Within(c, 1.0, 1.01, 0.001)
		// the tolerance sign does not matter
		Within(c, 5, 3, -2)
		// unsigned values do not wrap around
		Within(c, uint(3), uint(5), uint(1))
		return nil
	}))

	assert.Equal(t, uint64(4), report.Checked)
	assert.Equal(t, uint64(2), report.Passed)
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "difference(1.0, 1.01) > 0.001 ==> |1 - 1.01| = ")
	assert.Contains(t, lines[1], "difference(uint(3), uint(5)) > uint(1) ==> |3 - 5| = 2 > 1")
}

func TestWithin_IntegerExtremes(t *testing.T) {
	report, lines := runCases(t, nil, NewCase("extremes", func(c *C) error {
		Within(c, int8(100), int8(-100), int8(10))
		Within(c, int64(math.MaxInt64), int64(-1), int64(0))
		Within(c, int64(math.MinInt64), int64(math.MaxInt64), int64(-1))
		Within(c, int64(0), int64(5), int64(math.MinInt64))
		Within(c, int8(-128), int8(127), int8(-128))
		return nil
	}))

	assert.Equal(t, uint64(5), report.Checked)
	assert.Equal(t, uint64(1), report.Passed)
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "|100 - -100| = 200 > 10")
	assert.Contains(t, lines[1], "|9223372036854775807 - -1| = 9223372036854775808 > 0")
	assert.Contains(t, lines[2], "= 18446744073709551615 > 1")
	assert.Contains(t, lines[3], "|-128 - 127| = 255 > 128")
}

type kindError struct {
	code int
}

func (k *kindError) Error() string {
	return fmt.Sprintf("kind %d", k.code)
}

func TestPanics(t *testing.T) {
	report, lines := runCases(t, nil, NewCase("panics", func(c *C) error {
		// exact type
		Panics[*kindError](c, func() { panic(&kindError{code: 1}) })
		// wrapped error
		Panics[*kindError](c, func() { panic(fmt.Errorf("wrapped: %w", &kindError{code: 2})) })
		// interface kind
		Panics[runtime.Error](c, func() {
			var m map[string]int
			m["a"] = 1
		})
		Panics[*fs.PathError](c, func() {
			_, err := os.Open("/does/not/exist")
			panic(err)
		})
		return nil
	}))

	assert.Equal(t, uint64(4), report.Checked)
	assert.Equal(t, uint64(4), report.Passed)
	assert.Empty(t, lines)
}

func TestPanics_NotRaised(t *testing.T) {
	report, lines := runCases(t, nil, NewCase("noraise", func(c *C) error {
		Panics[*kindError](c, func() {})
		return nil
	}))

	assert.Equal(t, uint64(1), report.Checked)
	assert.Equal(t, uint64(0), report.Passed)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], `no panic raised, expecting "*framework.kindError"`)
}

func TestPanics_OtherKind(t *testing.T) {
	body := func(c *C) error {
		Panics[*kindError](c, func() { panic("boom") })
		return nil
	}

	t.Run("Strict", func(t *testing.T) {
		report, lines := runCases(t, nil, NewCase("other", body))

		assert.Equal(t, uint64(1), report.Checked)
		assert.Equal(t, uint64(0), report.Passed)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], `other: unexpected panic string (boom), expecting "*framework.kindError"`)
		assert.Len(t, report.Cases[0].Failures, 1)
	})

	t.Run("Lenient", func(t *testing.T) {
		config := DefaultConfig()
		config.LenientPanics = true
		report, lines := runCases(t, config, NewCase("other", body))

		assert.Equal(t, uint64(1), report.Checked)
		assert.Equal(t, uint64(1), report.Passed)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], "other: warning: unexpected panic string (boom)")
		assert.Empty(t, report.Cases[0].Failures)
		assert.True(t, report.Success())
	})
}

func TestPanics_Idempotent(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Add(NewCase("again", func(c *C) error {
		Panics[*kindError](c, func() { panic(&kindError{}) })
		return nil
	})))

	config := DefaultConfig()
	config.Output = &bytes.Buffer{}
	runner := NewRunner(r, config)

	for i := 0; i < 3; i++ {
		report := runner.Run()
		assert.Equal(t, uint64(1), report.Checked)
		assert.Equal(t, uint64(1), report.Passed)
	}
}

func TestFail(t *testing.T) {
	reached := false
	var line int

	report, lines := runCases(t, nil, NewCase("fail", func(c *C) error {
		c.Check(true)
		if !reached {
			line = currentLine() + 1
			return c.Fail("boom %d", 1)
		}
		reached = true
		return nil
	}), NewCase("next", func(c *C) error {
		c.Check(true)
		return nil
	}))

	assert.False(t, reached)
	require.Len(t, report.Cases, 2)

	failed := report.Cases[0]
	assert.Equal(t, OutcomeAborted, failed.Outcome)
	assert.Equal(t, uint64(2), failed.Checked)
	assert.Equal(t, uint64(1), failed.Passed)
	assert.Equal(t, []string{fmt.Sprintf("checks_test.go:%d: fail: boom 1", line)}, lines)

	// the run goes on
	assert.Equal(t, OutcomePassed, report.Cases[1].Outcome)
}

func TestFail_ErrAbort(t *testing.T) {
	var err error
	runCases(t, nil, NewCase("abort", func(c *C) error {
		err = c.Fail("stop")
		return err
	}))

	assert.True(t, errors.Is(err, ErrAbort))
	assert.EqualError(t, err, "case aborted: stop")
}

// checkPositive is a helper, its checks are attributed to the caller
func checkPositive(c *C, n int) {
	c.Helper()
	c.Check(n > 0)
}

func TestHelper(t *testing.T) {
	var line int
	_, lines := runCases(t, nil, NewCase("helper", func(c *C) error {
		line = currentLine() + 1
		checkPositive(c, -1)
		return nil
	}))

	require.Len(t, lines, 1)
	assert.Equal(t, fmt.Sprintf(`checks_test.go:%d: helper: "n > 0" failed`, line), lines[0])
}

func TestChecks_PassedNeverExceedsChecked(t *testing.T) {
	var snapshots [][2]uint64
	runCases(t, nil, NewCase("invariant", func(c *C) error {
		snap := func() {
			snapshots = append(snapshots, [2]uint64{c.Case().Checked(), c.Case().Passed()})
		}
		c.Check(true)
		snap()
		c.Check(false)
		snap()
		Equal(c, 1, 2)
		snap()
		Within(c, 1.0, 1.0, 0.0)
		snap()
		Panics[error](c, func() { panic(errors.New("x")) })
		snap()
		return nil
	}))

	require.Len(t, snapshots, 5)
	for i, s := range snapshots {
		assert.Equal(t, uint64(i+1), s[0])
		assert.LessOrEqual(t, s[1], s[0])
	}
}

func TestCheckMessage_Verbatim(t *testing.T) {
	report, lines := runCases(t, nil, NewCase("verbatim", func(c *C) error {
		// through a func value, so vet leaves the literal alone
		checkMessage := c.CheckMessage
		checkMessage(false, "100% done")
		return nil
	}))

	assert.Equal(t, uint64(1), report.Checked)
	require.Len(t, lines, 1)
	assert.True(t, strings.HasSuffix(lines[0], ": verbatim: 100% done"), lines[0])
}

func TestCheck_SameLine(t *testing.T) {
	_, lines := runCases(t, nil, NewCase("sameline", func(c *C) error {
		a, b := 1, 2
		check := func() { c.Check(a == 9); c.Check(b == 8) }
		check()
		return nil
	}))

	// the line cannot tell the calls apart, so neither is quoted from source
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.Contains(t, line, `sameline: "false" failed`)
	}
}

func TestFail_Discarded(t *testing.T) {
	t.Run("CheckAfterFail", func(t *testing.T) {
		report, lines := runCases(t, nil, NewCase("discard", func(c *C) error {
			_ = c.Fail("first")
			c.Check(true)
			return nil
		}))

		res := report.Cases[0]
		assert.Equal(t, OutcomeCrashed, res.Outcome)
		assert.Equal(t, uint64(2), res.Checked)
		assert.Equal(t, uint64(0), res.Passed)
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], "discard: first")
		assert.Contains(t, lines[1], `check issued on case "discard" after Fail`)
	})

	t.Run("NoFurtherChecks", func(t *testing.T) {
		tc := NewCase("ignored", func(c *C) error {
			_ = c.Fail("only")
			return nil
		})
		report, lines := runCases(t, nil, tc)

		res := report.Cases[0]
		assert.Equal(t, OutcomeAborted, res.Outcome)
		assert.Equal(t, uint64(1), res.Checked)
		assert.Equal(t, uint64(0), res.Passed)
		assert.Len(t, lines, 1)
		assert.True(t, tc.Aborted())
	})
}
