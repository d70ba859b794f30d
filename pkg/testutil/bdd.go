package testutil

import "testing"

// Given, When, and Then keep scenario tests readable without pulling in a
// BDD framework. Steps run as nested subtests and share state through
// closures, so a failed step stops the ones nested under it.
func Given(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Given "+desc, fn)
}

func When(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("When "+desc, fn)
}

func Then(t *testing.T, desc string, fn func(t *testing.T)) {
	t.Helper()
	t.Run("Then "+desc, fn)
}
