// Package match provides matchers for standin argument slots, named to read well next to gomega's.
// This package is designed to be dot-imported alongside gomega matchers:
//
//	import (
//	    . "github.com/onsi/gomega"
//	    . "github.com/toejough/standin/match"
//	)
//
//	svc.Arrange().GetWidgetDescription(BeAnyString, BeTrue()).Returns("gear")
package match

import (
	"github.com/toejough/standin/internal/core"
)

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
type Matcher = core.Matcher

// Exported matcher values.
//
//nolint:gochecknoglobals // Intentional exported constant-like values
var (
	// BeAny matches any value, nil included.
	// Useful when you don't care about a particular argument.
	BeAny = core.Any()
	// BeAnyInt matches any value in an int slot.
	BeAnyInt = core.AnyInt()
	// BeAnyString matches any value in a string slot.
	BeAnyString = core.AnyString()
	// BeNullOrEmpty matches nil, the empty string, and pointers to either.
	BeNullOrEmpty = core.NullOrEmpty()
)

// BeAnyOf returns a matcher for a T slot that matches any value. T only documents the slot.
func BeAnyOf[T any]() Matcher {
	return core.AnyOf[T]()
}

// BeExactly returns a matcher for values structurally equal to expected. Failure messages
// show a diff of the two values.
func BeExactly(expected any) Matcher {
	return core.Exact(expected)
}

// MatchWith returns a matcher that accepts values of type T for which predicate returns true.
func MatchWith[T any](predicate func(T) bool) Matcher {
	return core.Matches(predicate)
}

// Satisfies returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
//
// Example:
//
//	svc.Arrange().FetchWidget(BeAny, Satisfies(func(id string) error {
//	    if !strings.HasPrefix(id, "w-") { return fmt.Errorf("expected a widget id, got %q", id) }
//	    return nil
//	}))
func Satisfies[T any](predicate func(T) error) Matcher {
	return core.Satisfies(predicate)
}
