package core

import (
	"fmt"
	"math"
	"reflect"

	"github.com/akedrou/textdiff"
)

// Matcher defines the interface for flexible value matching.
// Compatible with gomega.GomegaMatcher via duck typing - any type
// implementing Match and FailureMessage will work.
//
// An error from Match is treated as a failed match, never as a failure of the call being resolved.
type Matcher interface {
	Match(actual any) (success bool, err error)
	FailureMessage(actual any) string
}

// Any returns a matcher that matches any value, including nil.
func Any() Matcher {
	return anyMatcher{}
}

// AnyInt matches any value. The int is documentation for the reader of the expectation.
func AnyInt() Matcher {
	return AnyOf[int]()
}

// AnyOf returns a matcher that matches any value. T is advisory: it shows up in
// descriptions of the expectation but is not enforced.
func AnyOf[T any]() Matcher {
	return anyOfMatcher[T]{}
}

// AnyString matches any value. The string is documentation for the reader of the expectation.
func AnyString() Matcher {
	return AnyOf[string]()
}

// Exact returns a matcher that succeeds when the actual value is structurally equal to expected.
// A nil expected value also matches typed nil pointers, maps, slices, channels, funcs and interfaces.
func Exact(expected any) Matcher {
	return exactMatcher{expected: expected}
}

// MatchValue checks if actual matches expected.
// If expected implements the Matcher interface, uses its Match method.
// Otherwise, compares structurally the same way Exact does.
// Returns (success, errorMessage). If success is true, errorMessage is empty.
func MatchValue(actual, expected any) (bool, string) {
	matcher, ok := expected.(Matcher)
	if !ok {
		matcher = Exact(expected)
	}

	success, err := matcher.Match(actual)
	if err != nil {
		return false, err.Error()
	}

	if !success {
		return false, matcher.FailureMessage(actual)
	}

	return true, ""
}

// Matches returns a matcher that delegates to a boolean predicate.
// Values that are not a T do not match.
func Matches[T any](predicate func(T) bool) Matcher {
	return predicateMatcher[T]{predicate: predicate}
}

// NullOrEmpty matches textual values that are absent or have zero length:
// nil, "", a nil *string, or a *string pointing at "".
func NullOrEmpty() Matcher {
	return nullOrEmptyMatcher{}
}

// Satisfies returns a matcher that uses a predicate function to check for a match.
// The predicate should return nil if the value matches, or an error describing
// the mismatch if it does not.
func Satisfies[T any](predicate func(T) error) Matcher {
	return satisfiesMatcher[T]{predicate: predicate}
}

type anyMatcher struct{}

// FailureMessage returns an empty string since Any() always matches.
func (anyMatcher) FailureMessage(any) string {
	return ""
}

// Match always returns true - matches any value.
func (anyMatcher) Match(any) (bool, error) {
	return true, nil
}

func (anyMatcher) String() string {
	return "any"
}

type anyOfMatcher[T any] struct{}

func (anyOfMatcher[T]) FailureMessage(any) string {
	return ""
}

func (anyOfMatcher[T]) Match(any) (bool, error) {
	return true, nil
}

func (anyOfMatcher[T]) String() string {
	return "any(" + reflect.TypeFor[T]().String() + ")"
}

type exactMatcher struct {
	expected any
}

func (m exactMatcher) FailureMessage(actual any) string {
	want := fmt.Sprintf("%#v", m.expected)
	got := fmt.Sprintf("%#v", actual)

	if want == got {
		return fmt.Sprintf("expected %s (%T), got %s (%T)", want, m.expected, got, actual)
	}

	return "value mismatch:\n" + textdiff.Unified("expected", "actual", want+"\n", got+"\n")
}

func (m exactMatcher) Match(actual any) (bool, error) {
	return valuesEqual(actual, m.expected), nil
}

func (m exactMatcher) String() string {
	return fmt.Sprintf("%#v", m.expected)
}

type nullOrEmptyMatcher struct{}

func (nullOrEmptyMatcher) FailureMessage(actual any) string {
	return fmt.Sprintf("expected a nil or empty string, got %#v", actual)
}

func (nullOrEmptyMatcher) Match(actual any) (bool, error) {
	switch val := actual.(type) {
	case nil:
		return true, nil
	case string:
		return val == "", nil
	case *string:
		return val == nil || *val == "", nil
	default:
		return false, nil
	}
}

func (nullOrEmptyMatcher) String() string {
	return "null or empty"
}

type predicateMatcher[T any] struct {
	predicate func(T) bool
}

func (m predicateMatcher[T]) FailureMessage(actual any) string {
	return fmt.Sprintf("value %v does not match predicate", actual)
}

func (m predicateMatcher[T]) Match(actual any) (bool, error) {
	val, ok := valueAs[T](actual)
	if !ok {
		return false, fmt.Errorf("%w: expected %v, got %T", errTypeMismatch, reflect.TypeFor[T](), actual)
	}

	return m.predicate(val), nil
}

func (m predicateMatcher[T]) String() string {
	return "matches(" + reflect.TypeFor[T]().String() + ")"
}

type satisfiesMatcher[T any] struct {
	predicate func(T) error
}

// FailureMessage evaluates the predicate again rather than remembering the last
// result, so a single matcher can be shared between expectations.
func (m satisfiesMatcher[T]) FailureMessage(actual any) string {
	val, ok := valueAs[T](actual)
	if !ok {
		return fmt.Sprintf("value %v is not a %v", actual, reflect.TypeFor[T]())
	}

	err := m.predicate(val)
	if err != nil {
		return fmt.Sprintf("value %v does not satisfy predicate: %v", actual, err)
	}

	return fmt.Sprintf("value %v does not satisfy predicate", actual)
}

func (m satisfiesMatcher[T]) Match(actual any) (bool, error) {
	val, ok := valueAs[T](actual)
	if !ok {
		return false, fmt.Errorf("%w: expected %v, got %T", errTypeMismatch, reflect.TypeFor[T](), actual)
	}

	return m.predicate(val) == nil, nil
}

func (m satisfiesMatcher[T]) String() string {
	return "satisfies(" + reflect.TypeFor[T]().String() + ")"
}

// describeMatcher renders a matcher for expectation signatures.
func describeMatcher(matcher Matcher) string {
	if stringer, ok := matcher.(fmt.Stringer); ok {
		return stringer.String()
	}

	return fmt.Sprintf("%T", matcher)
}

// isNil reports whether v is nil or a nil value of a nilable kind.
func isNil(v any) bool {
	if v == nil {
		return true
	}

	val := reflect.ValueOf(v)

	switch val.Kind() { //nolint:exhaustive // only nilable kinds can be nil
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return val.IsNil()
	default:
		return false
	}
}

// valueAs converts actual to T. An untyped nil converts to the zero value of nilable types.
func valueAs[T any](actual any) (T, bool) {
	if val, ok := actual.(T); ok {
		return val, true
	}

	var zero T

	if actual != nil {
		return zero, false
	}

	switch reflect.TypeFor[T]().Kind() { //nolint:exhaustive // only nilable kinds accept nil
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return zero, true
	default:
		return zero, false
	}
}

// valuesEqual compares structurally. An untyped nil equals any typed nil, a func equals the same func,
// and NaN equals NaN of the same type, so every value equals itself.
func valuesEqual(actual, expected any) bool {
	if actual == nil || expected == nil {
		return isNil(actual) && isNil(expected)
	}

	if reflect.DeepEqual(actual, expected) {
		return true
	}

	actualVal, expectedVal := reflect.ValueOf(actual), reflect.ValueOf(expected)
	if actualVal.Type() != expectedVal.Type() {
		return false
	}

	switch actualVal.Kind() { //nolint:exhaustive // DeepEqual settles every other kind
	case reflect.Func:
		return actualVal.Pointer() == expectedVal.Pointer()
	case reflect.Float32, reflect.Float64:
		return math.IsNaN(actualVal.Float()) && math.IsNaN(expectedVal.Float())
	default:
		return false
	}
}
