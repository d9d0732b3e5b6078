package entities

import (
	"time"
)

// SearchEvent records one executed search: the raw query, the intent the
// parser derived from it, and the product IDs the executor returned. Recorded
// best-effort for signed-in users only.
type SearchEvent struct {
	ID        string       `json:"id" db:"id"`
	UserID    *string      `json:"user_id,omitempty" db:"user_id"`
	Query     string       `json:"query" db:"query"`
	Intent    ParsedIntent `json:"intent" db:"intent"`
	ResultIDs []string     `json:"result_ids" db:"result_ids"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}
