package core

import (
	"slices"
	"sync"
)

// StandInsFor returns the stand-ins created with t, in creation order. Only reporters with a
// Cleanup method (like *testing.T) are tracked.
func StandInsFor(t TestReporter) []*Imp {
	trackerMu.Lock()
	defer trackerMu.Unlock()

	return slices.Clone(tracker[t])
}

// AssertAll verifies every stand-in created with t, failing the test on the first violation.
// Stand-ins without expectations are skipped: they were only used as inert dependencies.
func AssertAll(t TestReporter) {
	t.Helper()

	for _, imp := range StandInsFor(t) {
		if imp.registry.Len() == 0 {
			continue
		}

		err := imp.Verify()
		if err != nil {
			t.Fatalf("%v", err)

			return
		}
	}
}

// unexported variables.
var (
	//nolint:gochecknoglobals // Package-level index is intentional for per-test coordination
	tracker = make(map[TestReporter][]*Imp)
	//nolint:gochecknoglobals // Mutex for tracker; parallel tests create stand-ins concurrently
	trackerMu sync.Mutex
)

// track records imp under t and removes the entry when the test completes. Reporters without
// Cleanup are not tracked, since nothing would ever release their entry.
func track(t TestReporter, imp *Imp) {
	registrar, ok := t.(cleanupRegistrar)
	if !ok {
		return
	}

	trackerMu.Lock()
	defer trackerMu.Unlock()

	_, seen := tracker[t]
	tracker[t] = append(tracker[t], imp)

	if seen {
		return
	}

	registrar.Cleanup(func() {
		trackerMu.Lock()
		delete(tracker, t)
		trackerMu.Unlock()
	})
}
