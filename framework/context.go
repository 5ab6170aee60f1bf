package framework

import (
	"fmt"
	"runtime"

	"github.com/umbracle/scorecard/internal/source"
)

// C is the handle a case body uses to issue checks. It is only valid while
// its case runs, checks issued through it afterwards panic with *UsageError.
type C struct {
	tc      *Case
	runner  *Runner
	helpers map[string]struct{}
}

func newC(tc *Case, runner *Runner) *C {
	return &C{
		tc:      tc,
		runner:  runner,
		helpers: map[string]struct{}{},
	}
}

// Name returns the name of the running case
func (c *C) Name() string {
	return c.tc.name
}

// Case returns the case the handle is bound to
func (c *C) Case() *Case {
	return c.tc
}

// Helper marks the calling function as a check helper. Checks issued from
// a helper are attributed to the line that called the helper.
func (c *C) Helper() {
	var pc [1]uintptr
	if runtime.Callers(2, pc[:]) == 0 {
		return
	}
	frame, _ := runtime.CallersFrames(pc[:]).Next()
	c.helpers[frame.Function] = struct{}{}
}

// Check records cond. On failure the diagnostic quotes the expression
// passed as cond.
func (c *C) Check(cond bool) {
	s := c.site()
	tc := s.resolve(c)

	var text string
	if !cond {
		text = s.arg("Check", 0, fmt.Sprint(cond))
	}
	tc.Check(cond, text, s.file, s.line)
}

// CheckMessage records cond and reports the formatted message on failure.
// Without args the message is reported as is.
func (c *C) CheckMessage(cond bool, format string, args ...interface{}) {
	s := c.site()
	tc := s.resolve(c)

	var msg string
	if !cond {
		msg = sprintf(format, args)
	}
	tc.CheckMessage(cond, msg, s.file, s.line)
}

// Fail records a failed check and returns the error that ends the case:
//
//	if err != nil {
//		return c.Fail("cannot open: %v", err)
//	}
func (c *C) Fail(format string, args ...interface{}) error {
	s := c.site()
	tc := s.resolve(c)
	return tc.Fail(sprintf(format, args), s.file, s.line)
}

func sprintf(format string, args []interface{}) string {
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}

// site is the location of a check call. callFile and callLine are the
// direct call, used to find the operand text, while file and line skip
// the frames of helper functions.
type site struct {
	callFile string
	callLine int
	file     string
	line     int
}

// site must be called directly from the exported check function.
func (c *C) site() *site {
	pc := make([]uintptr, 32)
	// skip runtime.Callers, site and the exported check
	n := runtime.Callers(3, pc)
	frames := runtime.CallersFrames(pc[:n])

	s := &site{}
	first := true
	for {
		frame, more := frames.Next()
		if first {
			s.callFile, s.callLine = frame.File, frame.Line
			s.file, s.line = frame.File, frame.Line
			first = false
		}
		if _, ok := c.helpers[frame.Function]; !ok {
			s.file, s.line = frame.File, frame.Line
			break
		}
		if !more {
			break
		}
	}
	return s
}

func (s *site) resolve(c *C) *Case {
	tc := c.runner.Current(s.file, s.line)
	if tc != c.tc {
		panic(&UsageError{
			File:    s.file,
			Line:    s.line,
			Message: fmt.Sprintf("check for case %q issued while %q is running", c.tc.name, tc.name),
		})
	}
	return tc
}

func (s *site) arg(fn string, i int, def string) string {
	return source.Arg(s.callFile, s.callLine, fn, i, def)
}
