package core

import "fmt"

// ArgSpec specifies how one argument slot of an expectation is matched: either
// against a literal value, or by a Matcher.
type ArgSpec struct {
	kind    argKind
	literal any
	matcher Matcher
}

// Literal specifies an argument slot that matches values structurally equal to v.
// Use it to compare a Matcher value itself by equality instead of using it as a matcher.
func Literal(v any) ArgSpec {
	return ArgSpec{kind: argLiteral, literal: v}
}

// With specifies an argument slot that is matched by m. A nil m behaves like Any().
func With(m Matcher) ArgSpec {
	if m == nil {
		m = Any()
	}

	return ArgSpec{kind: argMatcher, matcher: m}
}

// IsMatcher reports whether the slot uses matcher semantics rather than a literal value.
func (a ArgSpec) IsMatcher() bool {
	return a.kind == argMatcher
}

// Matcher returns the matcher for the slot. Literal slots get an Exact matcher.
func (a ArgSpec) Matcher() Matcher {
	if a.kind == argMatcher {
		return a.matcher
	}

	return Exact(a.literal)
}

func (a ArgSpec) String() string {
	if a.kind == argMatcher {
		return describeMatcher(a.matcher)
	}

	return fmt.Sprintf("%#v", a.literal)
}

type argKind int

const (
	argLiteral argKind = iota
	argMatcher
)

// SpecFor normalizes a registration argument. ArgSpec values are kept as is, Matchers
// become matcher slots, and every other value becomes a literal slot.
func SpecFor(arg any) ArgSpec {
	switch val := arg.(type) {
	case ArgSpec:
		return val
	case Matcher:
		return With(val)
	default:
		return Literal(arg)
	}
}

// matchersFor converts registration arguments to one matcher per slot, in order.
func matchersFor(args []any) []Matcher {
	matchers := make([]Matcher, 0, len(args))

	for _, arg := range args {
		matchers = append(matchers, SpecFor(arg).Matcher())
	}

	return matchers
}
