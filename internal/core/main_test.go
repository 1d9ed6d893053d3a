package core_test

import (
	"fmt"
	"reflect"
	"testing"

	"go.uber.org/goleak"

	"github.com/toejough/standin/internal/core"
)

// The engine is synchronous: nothing it does may leave a goroutine behind.
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// calculator is the contract the hand-written stand-in below implements.
type calculator interface {
	Add(a, b int) int
	Describe(name string, verbose bool) (string, error)
	Reset()
	Total() int
	Watch(name string) <-chan int
}

// calculatorStandIn forwards every call into the engine the way generated stand-ins do.
type calculatorStandIn struct {
	*core.Imp
}

var _ calculator = (*calculatorStandIn)(nil)

func newCalculatorStandIn(t core.TestReporter, opts ...core.Option) *calculatorStandIn {
	opts = append([]core.Option{core.WithName("calculator")}, opts...)

	return &calculatorStandIn{Imp: core.New(t, opts...)}
}

func (c *calculatorStandIn) Add(a, b int) int {
	ret, err := c.Dispatch(core.Call{MethodName: "Add", Args: []any{a, b}, ReturnType: intType})
	if err != nil {
		panic(err)
	}

	return core.As[int](ret)
}

func (c *calculatorStandIn) Describe(name string, verbose bool) (string, error) {
	ret, err := c.Dispatch(core.Call{
		MethodName: "Describe",
		Args:       []any{name, verbose},
		ReturnType: reflect.TypeFor[string](),
	})

	return core.As[string](ret), err
}

func (c *calculatorStandIn) Reset() {
	_, err := c.Dispatch(core.Call{MethodName: "Reset"})
	if err != nil {
		panic(err)
	}
}

func (c *calculatorStandIn) Total() int {
	ret, err := c.Dispatch(core.Call{MethodName: "Total", ReturnType: intType})
	if err != nil {
		panic(err)
	}

	return core.As[int](ret)
}

func (c *calculatorStandIn) Watch(name string) <-chan int {
	ret, err := c.Dispatch(core.Call{
		MethodName: "Watch",
		Args:       []any{name},
		ReturnType: reflect.TypeFor[<-chan int](),
		Deferred:   true,
	})
	if err != nil {
		panic(err)
	}

	return core.As[<-chan int](ret)
}

//nolint:gochecknoglobals // shared fixture type
var intType = reflect.TypeFor[int]()

// fakeReporter records Fatalf instead of stopping the test.
type fakeReporter struct {
	helpers  int
	failures []string
	cleanups []func()
}

func (f *fakeReporter) Cleanup(fn func()) {
	f.cleanups = append(f.cleanups, fn)
}

func (f *fakeReporter) Fatalf(format string, args ...any) {
	f.failures = append(f.failures, fmt.Sprintf(format, args...))
}

func (f *fakeReporter) Helper() {
	f.helpers++
}

// cleanupFreeReporter is a TestReporter with no Cleanup method.
type cleanupFreeReporter struct {
	failures []string
}

func (c *cleanupFreeReporter) Fatalf(format string, args ...any) {
	c.failures = append(c.failures, fmt.Sprintf(format, args...))
}

func (c *cleanupFreeReporter) Helper() {}

// runCleanups runs registered cleanups last-in first-out, like testing.T.
func (f *fakeReporter) runCleanups() {
	for i := len(f.cleanups) - 1; i >= 0; i-- {
		f.cleanups[i]()
	}
}
