// Package standin provides declarative test doubles for Go.
// Stand-ins are generated from interfaces by standgen; expectations are registered
// against them before the code under test runs, and verified afterwards.
//
//	svc := NewWidgetServiceStandIn(t)
//	svc.Arrange().GetWidgetDescription(standin.AnyString(), true).Returns("gear").MustBeCalled()
//	...
//	standin.AssertExpectations(t, svc)
//
// This is the public API entry point. Implementation lives in internal/core.
package standin

import (
	"go.uber.org/zap"

	"github.com/toejough/standin/internal/core"
)

// Types re-exported from internal/core.

// Action configures an expectation on a member that returns nothing.
type Action = core.Action

// ArgSpec specifies how one argument slot is matched: by literal equality or by a Matcher.
type ArgSpec = core.ArgSpec

// Call is one intercepted invocation of a stand-in member.
type Call = core.Call

// Double is implemented by every stand-in.
type Double = core.Double

// Expectation is one registered rule.
type Expectation = core.Expectation

// Func configures an expectation on a member that returns a T.
type Func[T any] = core.Func[T]

// Imp is the engine behind one stand-in instance.
type Imp = core.Imp

// Matcher defines the interface for flexible value matching.
// Gomega matchers satisfy it by duck typing.
type Matcher = core.Matcher

// Option configures an Imp.
type Option = core.Option

// Registry holds a stand-in's expectations and resolves calls against them.
type Registry = core.Registry

// Response holds the outcome of resolving a call.
type Response = core.Response

// TestReporter is the minimal interface standin needs from test frameworks.
type TestReporter = core.TestReporter

// VerificationError describes an occurrence constraint that was not satisfied.
type VerificationError = core.VerificationError

// Errors re-exported from internal/core.
var (
	ErrCallCount          = core.ErrCallCount
	ErrForbiddenCall      = core.ErrForbiddenCall
	ErrInvalidCount       = core.ErrInvalidCount
	ErrMissingExpectation = core.ErrMissingExpectation
	ErrNoExpectations     = core.ErrNoExpectations
	ErrNotCalled          = core.ErrNotCalled
	ErrNotStandIn         = core.ErrNotStandIn
	ErrResponsesExhausted = core.ErrResponsesExhausted
	ErrVerification       = core.ErrVerification
)

// Functions re-exported from internal/core.

// New creates the engine for one stand-in. Generated stand-ins call it; hand-written ones may embed the result.
func New(t TestReporter, opts ...Option) *Imp {
	return core.New(t, opts...)
}

// WithAutoVerify verifies the stand-in when the test finishes.
func WithAutoVerify() Option {
	return core.WithAutoVerify()
}

// WithLogger logs registrations, matches and verification results at debug level.
func WithLogger(logger *zap.Logger) Option {
	return core.WithLogger(logger)
}

// WithName names the stand-in.
func WithName(name string) Option {
	return core.WithName(name)
}

// Arrange registers an expectation for a member that returns nothing.
func Arrange(target any, member string, args ...any) *Action {
	return core.Arrange(target, member, args...)
}

// ArrangeFunc registers an expectation for a member whose value result is a T.
func ArrangeFunc[T any](target any, member string, args ...any) *Func[T] {
	return core.ArrangeFunc[T](target, member, args...)
}

// ArrangeProperty registers an expectation for a member without arguments.
func ArrangeProperty[T any](target any, name string) *Func[T] {
	return core.ArrangeProperty[T](target, name)
}

// As converts a dispatched value to a member's result type.
func As[T any](value any) T {
	return core.As[T](value)
}

// AssertExpectations verifies target and fails the test with the first violation.
func AssertExpectations(t TestReporter, target any) {
	t.Helper()
	core.AssertExpectations(t, target)
}

// StandInOf returns the engine behind target.
func StandInOf(target any) (*Imp, error) {
	return core.StandInOf(target)
}

// Verify checks target's expectations and returns the first failure.
func Verify(target any) error {
	return core.Verify(target)
}

// VerifyAll checks all of target's expectations and returns every failure.
func VerifyAll(target any) error {
	return core.VerifyAll(target)
}

// Any returns a matcher that matches any value.
func Any() Matcher {
	return core.Any()
}

// AnyInt returns a matcher for an int argument that matches any value.
func AnyInt() Matcher {
	return core.AnyInt()
}

// AnyOf returns a matcher for a T argument that matches any value.
func AnyOf[T any]() Matcher {
	return core.AnyOf[T]()
}

// AnyString returns a matcher for a string argument that matches any value.
func AnyString() Matcher {
	return core.AnyString()
}

// Exact returns a matcher that matches values structurally equal to expected.
func Exact(expected any) Matcher {
	return core.Exact(expected)
}

// Literal specifies an argument slot matched by equality with v, even if v is a Matcher.
func Literal(v any) ArgSpec {
	return core.Literal(v)
}

// MatchValue checks if actual matches expected, which may be a Matcher or a literal value.
func MatchValue(actual, expected any) (bool, string) {
	return core.MatchValue(actual, expected)
}

// Matches returns a matcher that accepts values of type T for which predicate returns true.
func Matches[T any](predicate func(T) bool) Matcher {
	return core.Matches(predicate)
}

// NullOrEmpty returns a matcher for nil or empty strings.
func NullOrEmpty() Matcher {
	return core.NullOrEmpty()
}

// Satisfies returns a matcher that uses a predicate function to check for a match.
func Satisfies[T any](predicate func(T) error) Matcher {
	return core.Satisfies(predicate)
}

// SpecFor normalizes a registration argument into an ArgSpec.
func SpecFor(arg any) ArgSpec {
	return core.SpecFor(arg)
}

// With specifies an argument slot matched by m.
func With(m Matcher) ArgSpec {
	return core.With(m)
}
