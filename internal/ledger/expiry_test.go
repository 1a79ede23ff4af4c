package ledger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalExpiryAnchorsToMidnightFirst(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 59, 59, 0, tokyo)
	got := normalExpiry(now, tokyo)
	assert.Equal(t, time.Date(2024, 7, 16, 0, 0, 0, 0, tokyo), got)
}

func TestSuperExpiryAddsFirst(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 59, 59, 0, tokyo)
	got := superExpiry(now, tokyo)
	assert.Equal(t, time.Date(2024, 7, 16, 0, 0, 0, 0, tokyo), got)
}

func TestExpiryOrdersAgreeOutsideDST(t *testing.T) {
	// The deployment zone has no DST, so both orders land on the same
	// midnight for any grant instant.
	times := []time.Time{
		time.Date(2024, 1, 31, 12, 0, 0, 0, tokyo),
		time.Date(2024, 2, 29, 0, 0, 1, 0, tokyo),
		time.Date(2024, 12, 31, 23, 0, 0, 0, tokyo),
	}
	for _, now := range times {
		assert.Equal(t, normalExpiry(now, tokyo), superExpiry(now, tokyo), "now=%v", now)
	}
}

func TestExpiryIsAfterCreation(t *testing.T) {
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, tokyo)
	assert.True(t, normalExpiry(now, tokyo).After(now))
	assert.True(t, superExpiry(now, tokyo).After(now))
}
