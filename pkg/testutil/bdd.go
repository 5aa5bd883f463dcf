package testutil

import "testing"

// Step runs fn as a subtest whose name reads as a scenario clause.
type Step func(t *testing.T, desc string, fn func(t *testing.T))

func clause(keyword string) Step {
	return func(t *testing.T, desc string, fn func(t *testing.T)) {
		t.Helper()
		t.Run(keyword+" "+desc, fn)
	}
}

var (
	Given = clause("Given")
	When  = clause("When")
	Then  = clause("Then")
)
