package framework

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strings"
	"sync"
)

var (
	// ErrDuplicateCase is returned when a case name is already registered
	ErrDuplicateCase = errors.New("duplicate case name")

	// ErrInvalidCase is returned for cases with an empty name, a nil body or a bad weight
	ErrInvalidCase = errors.New("invalid case")
)

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry filled by Register.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Register creates a case and adds it to the default registry. It is meant
// to be called from an init function and panics if the case cannot be added.
func Register(name string, body Body, opts ...Option) *Case {
	tc := NewCase(name, body, opts...)
	if _, file, line, ok := runtime.Caller(1); ok {
		tc.file, tc.line = file, line
	}
	if err := Default().Add(tc); err != nil {
		panic(fmt.Sprintf("framework: failed to register case: %v", err))
	}
	return tc
}

// Registry is an ordered collection of cases. It does not own the cases,
// it only references them.
type Registry struct {
	cases []*Case
	names map[string]*Case
}

func NewRegistry() *Registry {
	return &Registry{
		cases: []*Case{},
		names: map[string]*Case{},
	}
}

// Add inserts the case in the registry.
func (r *Registry) Add(tc *Case) error {
	if tc == nil {
		return fmt.Errorf("%w: nil case", ErrInvalidCase)
	}
	if tc.name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidCase)
	}
	if tc.body == nil {
		return fmt.Errorf("%w: case %q has no body", ErrInvalidCase, tc.name)
	}
	if tc.weight < 0 || math.IsNaN(tc.weight) || math.IsInf(tc.weight, 0) {
		return fmt.Errorf("%w: case %q has weight %v", ErrInvalidCase, tc.name, tc.weight)
	}
	if _, ok := r.names[tc.name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateCase, tc.name)
	}
	r.names[tc.name] = tc
	r.cases = append(r.cases, tc)
	return nil
}

// Len returns the number of registered cases
func (r *Registry) Len() int {
	return len(r.cases)
}

// Lookup returns the case registered under name
func (r *Registry) Lookup(name string) (*Case, bool) {
	tc, ok := r.names[name]
	return tc, ok
}

// Cases returns the registered cases in execution order, that is, sorted
// by name in ascending lexicographic order. The registration order does
// not matter.
func (r *Registry) Cases() []*Case {
	res := make([]*Case, len(r.cases))
	copy(res, r.cases)

	sort.SliceStable(res, func(i, j int) bool {
		return ByName(res[i], res[j]) < 0
	})
	return res
}

// ByName compares two cases by name.
func ByName(a, b *Case) int {
	return strings.Compare(a.name, b.name)
}
