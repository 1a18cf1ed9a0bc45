package testutil

import (
	"math/rand"
	"testing"

	"github.com/rs/zerolog"
)

// NewTestRNG returns a generator seeded for repeatable arena generation.
func NewTestRNG(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// NopLogger is the logger handed to engines, drivers and monitors under test.
func NopLogger() zerolog.Logger {
	return zerolog.Nop()
}

// AssertPanic fails t unless f panics. It returns the recovered value.
func AssertPanic(t *testing.T, f func(), msgAndArgs ...interface{}) (recovered interface{}) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Errorf("expected a panic: %v", msgAndArgs)
		}
	}()
	f()
	return nil
}
