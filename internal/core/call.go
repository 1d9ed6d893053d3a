package core

import (
	"fmt"
	"reflect"
	"strings"
)

// Call is one intercepted invocation of a stand-in member, as handed to Imp.Dispatch.
type Call struct {
	MethodName string
	Args       []any
	// ReturnType is the declared type of the member's value result, or nil for members that return nothing
	// (a trailing error result does not count: it carries configured failures).
	ReturnType reflect.Type
	// Deferred marks members whose result is consumed later, such as a channel. A deferred call
	// that no expectation answers is a configuration error instead of a zero value.
	Deferred bool
}

// Name returns the method name.
func (c Call) Name() string {
	return c.MethodName
}

func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, arg := range c.Args {
		args[i] = fmt.Sprintf("%#v", arg)
	}

	return c.MethodName + "(" + strings.Join(args, ", ") + ")"
}

// ResponseType says how a resolved call completes.
type ResponseType int

// Response types.
const (
	ResponseReturn ResponseType = iota
	ResponseError
	ResponsePanic
)

// Response holds the outcome of resolving a call against a registry.
type Response struct {
	Type       ResponseType
	Value      any
	Err        error
	PanicValue any
}

// As converts a dispatched value to the member's result type. nil becomes the zero value.
func As[T any](value any) T {
	if value == nil {
		var zero T

		return zero
	}

	return value.(T) //nolint:forcetypeassert // expectations for T only ever produce T
}
