package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidAuthRateLimiter_BlocksAfterFiveFailures(t *testing.T) {
	rl := NewInvalidAuthRateLimiter()

	// Handler flow: check, then record the failure.
	for i := 0; i < 5; i++ {
		assert.True(t, rl.Allow("10.0.0.1"), "attempt %d", i+1)
		rl.Record("10.0.0.1")
	}
	assert.False(t, rl.Allow("10.0.0.1"))

	// Other IPs are unaffected.
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestInvalidAuthRateLimiter_AllowDoesNotConsumeBudget(t *testing.T) {
	rl := NewInvalidAuthRateLimiter()

	// Successful logins check the limiter but never record, so any
	// number of them leaves the next attempt open.
	for i := 0; i < 20; i++ {
		assert.True(t, rl.Allow("10.0.0.3"), "login %d", i+1)
	}

	// Three failures still leave two attempts in the budget.
	for i := 0; i < 3; i++ {
		rl.Record("10.0.0.3")
	}
	assert.True(t, rl.Allow("10.0.0.3"))
}

func TestInvalidAuthRateLimiter_RecordCountsFailures(t *testing.T) {
	rl := NewInvalidAuthRateLimiter()

	for i := 0; i < 5; i++ {
		rl.Record("10.0.0.4")
	}
	assert.False(t, rl.Allow("10.0.0.4"))
}
