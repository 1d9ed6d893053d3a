package standin

import "github.com/toejough/standin/internal/core"

// StandInsFor returns the stand-ins created with t, in creation order.
// Entries are dropped when t's test completes.
func StandInsFor(t TestReporter) []*Imp {
	return core.StandInsFor(t)
}

// AssertAll verifies every stand-in created with t that has expectations, failing the
// test on the first violation. Call it at the end of a test, or defer it.
func AssertAll(t TestReporter) {
	t.Helper()
	core.AssertAll(t)
}
