package entities

import (
	"time"
)

// ScentFamily is a named fragrance category (e.g. Floral, Amaderado) used
// both as a catalog facet and a user-preference dimension
type ScentFamily struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Slug      string    `json:"slug" db:"slug"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
