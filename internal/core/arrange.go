package core

import (
	"fmt"
	"reflect"
)

// Double is implemented by every stand-in: generated ones, and hand-written ones that embed *Imp.
type Double interface {
	StandIn() *Imp
}

// Arrange registers an expectation for a member that returns nothing (or only an error).
// Each arg is a literal value, a Matcher, or an ArgSpec. Registering against a value that is
// not a stand-in panics with ErrNotStandIn.
func Arrange(target any, member string, args ...any) *Action {
	exp := register(target, member, nil, args)

	return &Action{exp: exp}
}

// ArrangeFunc registers an expectation for a member whose value result is a T.
func ArrangeFunc[T any](target any, member string, args ...any) *Func[T] {
	exp := register(target, member, reflect.TypeFor[T](), args)

	return &Func[T]{exp: exp}
}

// ArrangeProperty registers an expectation for a property: a member without arguments.
func ArrangeProperty[T any](target any, name string) *Func[T] {
	return ArrangeFunc[T](target, name)
}

// AssertExpectations verifies target and fails the test with the first violation.
func AssertExpectations(t TestReporter, target any) {
	t.Helper()

	err := Verify(target)
	if err != nil {
		t.Fatalf("%v", err)
	}
}

// StandInOf returns the engine behind target.
func StandInOf(target any) (*Imp, error) {
	double, ok := target.(Double)
	if !ok {
		return nil, fmt.Errorf("%w: %T does not implement StandIn() *Imp", ErrNotStandIn, target)
	}

	imp := double.StandIn()
	if imp == nil {
		return nil, fmt.Errorf("%w: %T has no engine", ErrNotStandIn, target)
	}

	return imp, nil
}

// Verify checks target's expectations in registration order and returns the first failure.
// Verifying a stand-in without expectations fails with ErrNoExpectations.
func Verify(target any) error {
	imp, err := StandInOf(target)
	if err != nil {
		return err
	}

	return imp.Verify()
}

// VerifyAll checks all of target's expectations and returns every failure.
func VerifyAll(target any) error {
	imp, err := StandInOf(target)
	if err != nil {
		return err
	}

	return imp.VerifyAll()
}

func register(target any, member string, returnType reflect.Type, args []any) *Expectation {
	imp, err := StandInOf(target)
	if err != nil {
		panic(err)
	}

	exp := newExpectation(member, returnType, matchersFor(args))
	imp.registry.Add(exp)

	return exp
}
