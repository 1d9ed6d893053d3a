package core

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Expectation is one registered rule: which calls it matches, how it responds, and how often it must occur.
// Configure it through the Action or Func view returned at registration.
type Expectation struct {
	member     string
	returnType reflect.Type
	matchers   []Matcher

	respond    func(args []any) (any, error)
	err        error
	panics     bool
	panicValue any

	mustBeCalled bool
	bounded      bool
	bound        int

	calls int
}

// Calls returns how many calls this expectation has matched so far.
func (e *Expectation) Calls() int {
	return e.calls
}

// Member returns the name of the member this expectation applies to.
func (e *Expectation) Member() string {
	return e.member
}

// ReturnType returns the declared return type, or nil for void members.
func (e *Expectation) ReturnType() reflect.Type {
	return e.returnType
}

func (e *Expectation) String() string {
	args := make([]string, len(e.matchers))
	for i, matcher := range e.matchers {
		args[i] = describeMatcher(matcher)
	}

	return e.member + "(" + strings.Join(args, ", ") + ")"
}

// matches applies the matching test: name, return type identity, argument count, then positional matchers.
func (e *Expectation) matches(call Call) bool {
	if call.MethodName != e.member {
		return false
	}

	if call.ReturnType != e.returnType {
		return false
	}

	if len(call.Args) != len(e.matchers) {
		return false
	}

	for i, matcher := range e.matchers {
		ok, err := matcher.Match(call.Args[i])
		if err != nil || !ok {
			return false
		}
	}

	return true
}

// mismatch explains why a call does not match, for diagnostics. It returns "" when the call matches.
func (e *Expectation) mismatch(call Call) string {
	switch {
	case call.MethodName != e.member:
		return fmt.Sprintf("expected method %q, got %q", e.member, call.MethodName)
	case call.ReturnType != e.returnType:
		return fmt.Sprintf("expected return type %v, got %v", e.returnType, call.ReturnType)
	case len(call.Args) != len(e.matchers):
		return fmt.Sprintf("expected %d args, got %d", len(e.matchers), len(call.Args))
	}

	for i, matcher := range e.matchers {
		ok, failureMsg := MatchValue(call.Args[i], matcher)
		if !ok {
			return fmt.Sprintf("arg %d: %s", i, failureMsg)
		}
	}

	return ""
}

func (e *Expectation) setBound(n int) {
	if n < 0 {
		panic(fmt.Errorf("%w: %s cannot occur %d times", ErrInvalidCount, e, n))
	}

	e.bounded = true
	e.bound = n
}

func (e *Expectation) setErr(err error) {
	e.err = err
	e.panics = false
	e.panicValue = nil
}

func (e *Expectation) setPanic(value any) {
	e.err = nil
	e.panics = true
	e.panicValue = value
}

// verify checks the occurrence constraint against the observed call count.
func (e *Expectation) verify() error {
	if e.mustBeCalled && e.calls == 0 {
		return &VerificationError{Expectation: e.String(), Expected: -1, kinds: []error{ErrNotCalled}}
	}

	if !e.bounded || e.calls == e.bound {
		return nil
	}

	failure := &VerificationError{Expectation: e.String(), Expected: e.bound, Actual: e.calls}

	switch {
	case e.bound == 0:
		failure.kinds = []error{ErrForbiddenCall, ErrCallCount}
	case e.calls == 0:
		failure.kinds = []error{ErrNotCalled, ErrCallCount}
	default:
		failure.kinds = []error{ErrCallCount}
	}

	return failure
}

// Action configures an expectation on a member that returns nothing.
// It has no response configuration: only failures and occurrence constraints.
type Action struct {
	exp *Expectation
}

// Expectation returns the underlying expectation, e.g. to inspect its call count.
func (a *Action) Expectation() *Expectation {
	return a.exp
}

// MustBeCalled requires at least one matching call before verification.
func (a *Action) MustBeCalled() *Action {
	a.exp.mustBeCalled = true

	return a
}

// Occurs requires exactly n matching calls.
func (a *Action) Occurs(n int) *Action {
	a.exp.setBound(n)

	return a
}

// OccursNever requires that no call matches.
func (a *Action) OccursNever() *Action {
	return a.Occurs(0)
}

// OccursOnce requires exactly one matching call.
func (a *Action) OccursOnce() *Action {
	return a.Occurs(1)
}

// Panics makes matching calls panic with value.
func (a *Action) Panics(value any) *Action {
	a.exp.setPanic(value)

	return a
}

// Throws makes matching calls fail with err. The stand-in returns it through the member's
// error result, or panics with it when the member has none.
func (a *Action) Throws(err error) *Action {
	a.exp.setErr(err)

	return a
}

// Func configures an expectation on a member that returns a T.
type Func[T any] struct {
	exp *Expectation
}

// Expectation returns the underlying expectation, e.g. to inspect its call count.
func (f *Func[T]) Expectation() *Expectation {
	return f.exp
}

// MustBeCalled requires at least one matching call before verification.
func (f *Func[T]) MustBeCalled() *Func[T] {
	f.exp.mustBeCalled = true

	return f
}

// Occurs requires exactly n matching calls.
func (f *Func[T]) Occurs(n int) *Func[T] {
	f.exp.setBound(n)

	return f
}

// OccursNever requires that no call matches.
func (f *Func[T]) OccursNever() *Func[T] {
	return f.Occurs(0)
}

// OccursOnce requires exactly one matching call.
func (f *Func[T]) OccursOnce() *Func[T] {
	return f.Occurs(1)
}

// Panics makes matching calls panic with value.
func (f *Func[T]) Panics(value any) *Func[T] {
	f.exp.setPanic(value)

	return f
}

// Returns responds to matching calls with value.
func (f *Func[T]) Returns(value T) *Func[T] {
	f.exp.respond = func([]any) (any, error) {
		return value, nil
	}

	return f
}

// ReturnsFromArgs responds with a value computed from the actual call arguments. fn gets its own
// copy of the arguments, so the recorded calls are unaffected by what it does to them.
func (f *Func[T]) ReturnsFromArgs(fn func(args []any) T) *Func[T] {
	f.exp.respond = func(args []any) (any, error) {
		return fn(slices.Clone(args)), nil
	}

	return f
}

// ReturnsFunc responds with the result of calling producer at call time.
func (f *Func[T]) ReturnsFunc(producer func() T) *Func[T] {
	f.exp.respond = func([]any) (any, error) {
		return producer(), nil
	}

	return f
}

// ReturnsMany responds with values in order, one per matching call. A matching call
// after the last value has been handed out fails with ErrResponsesExhausted.
func (f *Func[T]) ReturnsMany(values ...T) *Func[T] {
	remaining := slices.Clone(values)

	f.exp.respond = func([]any) (any, error) {
		if len(remaining) == 0 {
			return nil, fmt.Errorf("%w: %s returned all %d values", ErrResponsesExhausted, f.exp, len(values))
		}

		next := remaining[0]
		remaining = remaining[1:]

		return next, nil
	}

	return f
}

// Throws makes matching calls fail with err. The stand-in returns it through the member's
// error result, or panics with it when the member has none.
func (f *Func[T]) Throws(err error) *Func[T] {
	f.exp.setErr(err)

	return f
}

func newExpectation(member string, returnType reflect.Type, matchers []Matcher) *Expectation {
	return &Expectation{
		member:     member,
		returnType: returnType,
		matchers:   matchers,
	}
}
