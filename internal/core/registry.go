package core

import (
	"errors"
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// Registry holds the expectations of one stand-in in registration order and resolves calls against them.
// It is not safe for concurrent use.
type Registry struct {
	logger       *zap.Logger
	expectations []*Expectation
	calls        []Call
	unmatched    []Call
}

// NewRegistry creates an empty registry. A nil logger discards log output.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Registry{logger: logger}
}

// Add appends an expectation. Registration order is significant for resolution.
func (r *Registry) Add(exp *Expectation) {
	r.expectations = append(r.expectations, exp)

	r.logger.Debug("expectation registered",
		zap.Stringer("expectation", exp),
		zap.Int("position", len(r.expectations)-1),
	)
}

// Calls returns every call resolved so far, in arrival order.
func (r *Registry) Calls() []Call {
	return slices.Clone(r.calls)
}

// Expectations returns the registered expectations in registration order.
func (r *Registry) Expectations() []*Expectation {
	return slices.Clone(r.expectations)
}

// Explain describes, for each registered expectation, why call does not match it.
// Matching expectations are described as "matches".
func (r *Registry) Explain(call Call) []string {
	reasons := make([]string, 0, len(r.expectations))

	for _, exp := range r.expectations {
		reason := exp.mismatch(call)
		if reason == "" {
			reason = "matches"
		}

		reasons = append(reasons, exp.String()+": "+reason)
	}

	return reasons
}

// Len returns the number of registered expectations.
func (r *Registry) Len() int {
	return len(r.expectations)
}

// Resolve finds the outcome of call.
//
// Expectations are visited newest first. Every matching expectation has its call count incremented.
// A matching expectation configured to fail (Throws, Panics, or an exhausted ReturnsMany) ends the
// traversal and its failure is the outcome. Otherwise each matching response overwrites the previous
// one, so the response of the oldest matching expectation wins.
//
// With no response, deferred members fail with ErrMissingExpectation, void members return nothing,
// and value members return the zero value of their declared type.
func (r *Registry) Resolve(call Call) Response {
	r.calls = append(r.calls, call)

	var (
		candidate    any
		hasCandidate bool
		matched      bool
	)

	for i := len(r.expectations) - 1; i >= 0; i-- {
		exp := r.expectations[i]
		if !exp.matches(call) {
			continue
		}

		matched = true
		exp.calls++

		r.logger.Debug("call matched",
			zap.Stringer("call", call),
			zap.Stringer("expectation", exp),
			zap.Int("calls", exp.calls),
		)

		if exp.panics {
			return Response{Type: ResponsePanic, PanicValue: exp.panicValue}
		}

		if exp.err != nil {
			return Response{Type: ResponseError, Err: exp.err}
		}

		if exp.respond == nil {
			continue
		}

		value, err := exp.respond(call.Args)
		if err != nil {
			return Response{Type: ResponseError, Err: err}
		}

		candidate, hasCandidate = value, true
	}

	if !matched {
		r.unmatched = append(r.unmatched, call)

		r.logger.Debug("call matched no expectation", zap.Stringer("call", call))
	}

	return fallback(call, candidate, hasCandidate)
}

// UnmatchedCalls returns the calls that matched no expectation.
func (r *Registry) UnmatchedCalls() []Call {
	return slices.Clone(r.unmatched)
}

// Verify checks occurrence constraints in registration order and returns the first failure.
func (r *Registry) Verify() error {
	if len(r.expectations) == 0 {
		return ErrNoExpectations
	}

	for _, exp := range r.expectations {
		err := exp.verify()
		if err != nil {
			r.logger.Debug("verification failed", zap.Error(err))

			return err
		}
	}

	return nil
}

// VerifyAll checks every occurrence constraint and joins all failures.
func (r *Registry) VerifyAll() error {
	if len(r.expectations) == 0 {
		return ErrNoExpectations
	}

	var failures []error

	for _, exp := range r.expectations {
		err := exp.verify()
		if err != nil {
			failures = append(failures, err)
		}
	}

	if len(failures) > 0 {
		r.logger.Debug("verification failed", zap.Int("failures", len(failures)))
	}

	return errors.Join(failures...)
}

func fallback(call Call, candidate any, hasCandidate bool) Response {
	switch {
	case call.ReturnType == nil:
		return Response{Type: ResponseReturn}
	case hasCandidate:
		return Response{Type: ResponseReturn, Value: candidate}
	case call.Deferred:
		return Response{Type: ResponseError, Err: missingExpectation(call)}
	default:
		return Response{Type: ResponseReturn, Value: reflect.Zero(call.ReturnType).Interface()}
	}
}
