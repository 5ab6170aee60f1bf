package framework

import (
	"errors"
	"fmt"
	"reflect"
)

// Number is the set of types Within can compare
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64
}

// CheckEqual records lhs == rhs. On failure the diagnostic shows both
// expressions and their values.
func CheckEqual[T comparable](tc *Case, lhs, rhs T, lhsText, rhsText, file string, line int) {
	tc.mustBeRunning(file, line)

	cond := lhs == rhs
	tc.RecordCheck(cond)
	if !cond {
		tc.report(Result{
			Kind:    KindEqual,
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("%q [%v] != %q [%v]", lhsText, lhs, rhsText, rhs),
		})
	}
}

// CheckWithin records |lhs - rhs| <= |tolerance|.
func CheckWithin[T Number](tc *Case, lhs, rhs, tolerance T, lhsText, rhsText, toleranceText, file string, line int) {
	tc.mustBeRunning(file, line)

	cond, diff, tol := difference(lhs, rhs, tolerance)
	tc.RecordCheck(cond)
	if !cond {
		tc.report(Result{
			Kind:    KindWithin,
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("difference(%s, %s) > %s ==> |%v - %v| = %v > %v",
				lhsText, rhsText, toleranceText, lhs, rhs, diff, tol),
		})
	}
}

// CheckPanics runs op and passes if it panics with a value of type E, or
// with an error that matches E under errors.As. A panic of another kind is a
// failure, or a pass with a warning when the case runs with lenient panics.
func CheckPanics[E any](tc *Case, op func(), file string, line int) {
	tc.mustBeRunning(file, line)

	kind := typeName[E]()
	value, panicked := capturePanic(op)

	switch {
	case !panicked:
		tc.RecordCheck(false)
		tc.report(Result{
			Kind:    KindPanics,
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("no panic raised, expecting %q", kind),
		})

	case matchesKind[E](value):
		tc.RecordCheck(true)

	default:
		if _, ok := value.(*UsageError); ok {
			panic(value)
		}
		tc.RecordCheck(tc.lenientPanics)
		tc.report(Result{
			Kind:    KindPanics,
			File:    file,
			Line:    line,
			Message: fmt.Sprintf("unexpected panic %T (%v), expecting %q", value, value, kind),
			Warning: tc.lenientPanics,
		})
	}
}

// Equal is CheckEqual with the location and operand text of the caller.
func Equal[T comparable](c *C, lhs, rhs T) {
	s := c.site()
	tc := s.resolve(c)

	var lhsText, rhsText string
	if lhs != rhs {
		lhsText = s.arg("Equal", 1, fmt.Sprint(lhs))
		rhsText = s.arg("Equal", 2, fmt.Sprint(rhs))
	}
	CheckEqual(tc, lhs, rhs, lhsText, rhsText, s.file, s.line)
}

// Within is CheckWithin with the location and operand text of the caller.
func Within[T Number](c *C, lhs, rhs, tolerance T) {
	s := c.site()
	tc := s.resolve(c)
	CheckWithin(tc, lhs, rhs, tolerance,
		s.arg("Within", 1, fmt.Sprint(lhs)),
		s.arg("Within", 2, fmt.Sprint(rhs)),
		s.arg("Within", 3, fmt.Sprint(tolerance)),
		s.file, s.line)
}

// Panics is CheckPanics with the location of the caller.
func Panics[E any](c *C, op func()) {
	s := c.site()
	tc := s.resolve(c)
	CheckPanics[E](tc, op, s.file, s.line)
}

func capturePanic(op func()) (value interface{}, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			value, panicked = r, true
		}
	}()
	op()
	return nil, false
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func matchesKind[E any](value interface{}) bool {
	if _, ok := value.(E); ok {
		return true
	}
	err, ok := value.(error)
	if !ok {
		return false
	}
	// errors.As panics unless the target is an interface or an error type
	typ := reflect.TypeOf((*E)(nil)).Elem()
	if typ.Kind() != reflect.Interface && !typ.Implements(errorType) {
		return false
	}
	var target E
	return errors.As(err, &target)
}

func typeName[E any]() string {
	return reflect.TypeOf((*E)(nil)).Elem().String()
}

// difference reports whether |lhs - rhs| <= |tolerance| and returns both
// sides of the comparison. Integers are compared as uint64 magnitudes so
// neither the subtraction nor the negation can overflow.
func difference[T Number](lhs, rhs, tolerance T) (bool, interface{}, interface{}) {
	l, r, t := reflect.ValueOf(lhs), reflect.ValueOf(rhs), reflect.ValueOf(tolerance)

	switch l.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		diff, tol := distance(l.Int(), r.Int()), magnitude(t.Int())
		return diff <= tol, diff, tol

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		a, b, tol := l.Uint(), r.Uint(), t.Uint()
		if a < b {
			a, b = b, a
		}
		return a-b <= tol, a - b, tol
	}

	diff, tol := lhs-rhs, tolerance
	if diff < 0 {
		diff = -diff
	}
	if tol < 0 {
		tol = -tol
	}
	// NaN compares false and fails the check
	return diff <= tol, diff, tol
}

// distance is |a - b|, exact over the whole int64 range.
func distance(a, b int64) uint64 {
	if a < b {
		a, b = b, a
	}
	return uint64(a) - uint64(b)
}

// magnitude is |v|, including math.MinInt64.
func magnitude(v int64) uint64 {
	if v < 0 {
		return uint64(0) - uint64(v)
	}
	return uint64(v)
}
