package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMatchRecord_IsExpired(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	record := &MatchRecord{ExpiresAt: now}

	assert.False(t, record.IsExpired(now.Add(-time.Second)))
	// Expiry boundary counts as expired
	assert.True(t, record.IsExpired(now))
	assert.True(t, record.IsExpired(now.Add(time.Second)))
}
