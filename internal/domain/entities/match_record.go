package entities

import (
	"time"
)

// MatchRecord is a cached user/product compatibility score, keyed by
// (UserID, ProductID). A record is valid only while now < ExpiresAt; an
// expired record is treated exactly like a missing one and overwritten on the
// next computation.
type MatchRecord struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	ProductID    string    `json:"product_id" db:"product_id"`
	Percentage   int       `json:"percentage" db:"percentage"`
	Reasons      string    `json:"reasons,omitempty" db:"reasons"`
	CalculatedAt time.Time `json:"calculated_at" db:"calculated_at"`
	ExpiresAt    time.Time `json:"expires_at" db:"expires_at"`
}

// IsExpired reports whether the cached score is stale at the given instant
func (m *MatchRecord) IsExpired(now time.Time) bool {
	return !now.Before(m.ExpiresAt)
}
