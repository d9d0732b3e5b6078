package entities

import (
	"time"
)

// ScentNotes holds the layered note pyramid of a perfume
type ScentNotes struct {
	Top   []string `json:"top,omitempty"`
	Heart []string `json:"heart,omitempty"`
	Base  []string `json:"base,omitempty"`
}

// TimeOfDaySuitability holds per-product day/night appropriateness scores (0-100)
type TimeOfDaySuitability struct {
	Day   float64 `json:"day"`
	Night float64 `json:"night"`
}

// ProductAttributes is the semi-structured attribute document stored as JSONB.
// The store cannot filter inside these nested numeric fields, so predicates on
// them are applied in memory after the page is fetched.
type ProductAttributes struct {
	Notes     ScentNotes           `json:"notes"`
	Sillage   string               `json:"sillage,omitempty"`
	Longevity string               `json:"longevity,omitempty"`
	Seasons   map[string]float64   `json:"seasons,omitempty"`
	TimeOfDay TimeOfDaySuitability `json:"time_of_day"`
}

// Product represents a perfume in the catalog
type Product struct {
	ID            string            `json:"id" db:"id"`
	Name          string            `json:"name" db:"name"`
	SKU           string            `json:"sku" db:"sku"`
	BrandID       string            `json:"brand_id" db:"brand_id"`
	BrandName     string            `json:"brand_name,omitempty"`
	Gender        string            `json:"gender" db:"gender"`
	Concentration string            `json:"concentration" db:"concentration"`
	Intensity     string            `json:"intensity" db:"intensity"`
	Occasions     []string          `json:"occasions,omitempty" db:"occasions"`
	Climates      []string          `json:"climates,omitempty" db:"climates"`
	Events        []string          `json:"events,omitempty" db:"events"`
	FamilyNames   []string          `json:"family_names,omitempty"`
	Price         float64           `json:"price" db:"price"`
	Attributes    ProductAttributes `json:"attributes" db:"attributes"`
	IsActive      bool              `json:"is_active" db:"is_active"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// SuitabilityFor returns the product's suitability score for "day" or "night"
func (p *Product) SuitabilityFor(timeOfDay string) float64 {
	switch timeOfDay {
	case TimeOfDayDay:
		return p.Attributes.TimeOfDay.Day
	case TimeOfDayNight:
		return p.Attributes.TimeOfDay.Night
	}
	return 0
}
