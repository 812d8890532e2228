package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertUnitResolved finds a unit in the JSON report of a harness run and
// returns it.
func AssertUnitResolved(t *testing.T, result *HarnessResult, name string) ReportedUnit {
	t.Helper()

	for _, u := range result.Units(t) {
		if u.Unit == name {
			return u
		}
	}
	require.Failf(t, "unit not reported", "expected unit %q in report:\n%s", name, result.Output)
	return ReportedUnit{}
}

// AssertLogged checks that a log line mentions every given fragment.
func AssertLogged(t *testing.T, result *HarnessResult, fragments ...string) {
	t.Helper()

	for _, line := range strings.Split(result.LogOutput, "\n") {
		matched := true
		for _, f := range fragments {
			if !strings.Contains(line, f) {
				matched = false
				break
			}
		}
		if matched {
			return
		}
	}
	require.Failf(t, "log line not found", "no log line contains %q:\n%s", fragments, result.LogOutput)
}

// IDs lists the dependency ids of a reported unit in order.
func IDs(u ReportedUnit) []string {
	ids := make([]string, 0, len(u.Dependencies))
	for _, d := range u.Dependencies {
		ids = append(ids, d.ID)
	}
	return ids
}
