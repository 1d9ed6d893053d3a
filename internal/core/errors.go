package core

import (
	"errors"
	"fmt"
)

// Configuration errors. These indicate a misuse of the stand-in API rather than a behavior of the code under test.
var (
	// ErrNotStandIn is raised when registering against, or verifying, a value that is not a stand-in.
	ErrNotStandIn = errors.New("not a stand-in")
	// ErrNoExpectations is returned when verifying a stand-in that never had an expectation registered.
	ErrNoExpectations = errors.New("verify called on a stand-in with no expectations set")
	// ErrMissingExpectation is returned for a call to a deferred-return member that no expectation answered.
	ErrMissingExpectation = errors.New("no expectation provided for deferred-return member")
	// ErrResponsesExhausted is returned when a ReturnsMany sequence has no values left.
	ErrResponsesExhausted = errors.New("response sequence exhausted")
	// ErrInvalidCount is raised when an occurrence bound is negative.
	ErrInvalidCount = errors.New("invalid occurrence count")

	// errTypeMismatch is a sentinel error for type assertion failures.
	errTypeMismatch = errors.New("type mismatch")
)

// Verification errors. A *VerificationError wraps ErrVerification plus one or more of the classifications.
var (
	ErrVerification  = errors.New("expectation not met")
	ErrNotCalled     = errors.New("not called")
	ErrForbiddenCall = errors.New("called but should not have been")
	ErrCallCount     = errors.New("call count mismatch")
)

// VerificationError describes an occurrence constraint that observed calls did not satisfy.
type VerificationError struct {
	// Expectation is the signature of the failing expectation, e.g. GetWidgetDescription(any(string), true).
	Expectation string
	// Expected is the exact bound, or -1 when the constraint was only "at least once".
	Expected int
	Actual   int

	kinds []error
}

func (e *VerificationError) Error() string {
	switch {
	case e.Expected < 0:
		return e.Expectation + " was not called"
	case e.Expected == 0:
		return fmt.Sprintf("%s should not have been called, but was called %d times", e.Expectation, e.Actual)
	default:
		return fmt.Sprintf(
			"%s should have been called %d times but was actually called %d times",
			e.Expectation, e.Expected, e.Actual,
		)
	}
}

// Unwrap exposes ErrVerification and the failure classifications to errors.Is.
func (e *VerificationError) Unwrap() []error {
	return append([]error{ErrVerification}, e.kinds...)
}

func missingExpectation(call Call) error {
	return fmt.Errorf("%w: %s; arrange a response for it, its result cannot be consumed otherwise", ErrMissingExpectation, call)
}
