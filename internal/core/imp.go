// Package core provides the internal implementation of standin's expectation
// matching and call interception engine.
package core

import (
	"fmt"

	"go.uber.org/zap"
)

// Imp is the engine behind one stand-in instance. The stand-in forwards every call
// to Dispatch; expectations are registered with Arrange and friends.
type Imp struct {
	t          TestReporter
	name       string
	logger     *zap.Logger
	autoVerify bool
	registry   *Registry
}

// New creates the engine for one stand-in. t may be nil outside of tests.
func New(t TestReporter, opts ...Option) *Imp {
	imp := &Imp{
		t:      t,
		name:   "stand-in",
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(imp)
	}

	imp.logger = imp.logger.With(zap.String("standin", imp.name))
	imp.registry = NewRegistry(imp.logger)

	if t != nil {
		track(t, imp)
	}

	if imp.autoVerify {
		imp.registerAutoVerify()
	}

	return imp
}

// Dispatch resolves an intercepted call. It returns the response value (nil for void members),
// or the configured failure. Expectations configured with Panics panic here.
func (i *Imp) Dispatch(call Call) (any, error) {
	resp := i.registry.Resolve(call)

	switch resp.Type {
	case ResponsePanic:
		panic(resp.PanicValue)
	case ResponseError:
		return nil, resp.Err
	default:
		return resp.Value, nil
	}
}

// Name returns the stand-in's name, used in log fields and failure messages.
func (i *Imp) Name() string {
	return i.name
}

// Registry returns the expectation registry, for inspection.
func (i *Imp) Registry() *Registry {
	return i.registry
}

// StandIn returns i, so that stand-ins embedding *Imp satisfy Double.
func (i *Imp) StandIn() *Imp {
	return i
}

// Verify checks every expectation's occurrence constraint in registration order and
// returns the first failure.
func (i *Imp) Verify() error {
	err := i.registry.Verify()
	if err != nil {
		return fmt.Errorf("%s: %w", i.name, err)
	}

	return nil
}

// VerifyAll checks every expectation's occurrence constraint and returns all failures joined.
func (i *Imp) VerifyAll() error {
	err := i.registry.VerifyAll()
	if err != nil {
		return fmt.Errorf("%s: %w", i.name, err)
	}

	return nil
}

func (i *Imp) registerAutoVerify() {
	registrar, ok := i.t.(cleanupRegistrar)
	if !ok {
		return
	}

	registrar.Cleanup(func() {
		i.t.Helper()

		err := i.Verify()
		if err != nil {
			i.t.Fatalf("%v", err)
		}
	})
}

// Option configures an Imp.
type Option func(*Imp)

// WithAutoVerify verifies the stand-in when the test finishes. It requires a TestReporter
// with a Cleanup method, such as *testing.T.
func WithAutoVerify() Option {
	return func(i *Imp) {
		i.autoVerify = true
	}
}

// WithLogger logs registrations, matches and verification results to logger at debug level.
func WithLogger(logger *zap.Logger) Option {
	return func(i *Imp) {
		if logger != nil {
			i.logger = logger
		}
	}
}

// WithName names the stand-in, usually after the contract it implements.
func WithName(name string) Option {
	return func(i *Imp) {
		i.name = name
	}
}

// TestReporter is the minimal interface standin needs from test frameworks.
type TestReporter interface {
	Helper()
	Fatalf(format string, args ...any)
}

// cleanupRegistrar is the interface needed for registering cleanup functions.
// This is satisfied by *testing.T and *testing.B.
type cleanupRegistrar interface {
	Cleanup(cleanupFunc func())
}
