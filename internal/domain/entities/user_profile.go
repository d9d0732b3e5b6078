package entities

import (
	"time"
)

// UserPreferenceProfile holds a user's declared fragrance preferences, the
// input half of match computation. It is mutated only through the onboarding
// and profile-edit flows; the match engine reads it as-is.
type UserPreferenceProfile struct {
	UserID      string    `json:"user_id" db:"user_id"`
	FamilyNames []string  `json:"family_names" db:"family_names"`
	Intensity   string    `json:"intensity" db:"intensity"`
	Occasions   []string  `json:"occasions" db:"occasions"`
	Climates    []string  `json:"climates" db:"climates"`
	Completed   bool      `json:"completed" db:"completed"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// IsComplete reports whether the profile satisfies the minimums the match
// engine requires: 1-5 favored families, an intensity, at least one occasion
// and one climate.
func (p *UserPreferenceProfile) IsComplete() bool {
	if !p.Completed {
		return false
	}
	if len(p.FamilyNames) < 1 || len(p.FamilyNames) > 5 {
		return false
	}
	if p.Intensity == "" {
		return false
	}
	return len(p.Occasions) >= 1 && len(p.Climates) >= 1
}
