package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProfile() *UserPreferenceProfile {
	return &UserPreferenceProfile{
		UserID:      "u1",
		FamilyNames: []string{"Floral"},
		Intensity:   IntensityModerada,
		Occasions:   []string{OccasionCasual},
		Climates:    []string{ClimateCalor},
		Completed:   true,
	}
}

func TestIsComplete_ValidProfile(t *testing.T) {
	assert.True(t, validProfile().IsComplete())
}

func TestIsComplete_RequiresCompletedFlag(t *testing.T) {
	p := validProfile()
	p.Completed = false
	assert.False(t, p.IsComplete())
}

func TestIsComplete_FamilyCountBounds(t *testing.T) {
	p := validProfile()
	p.FamilyNames = nil
	assert.False(t, p.IsComplete())

	p = validProfile()
	p.FamilyNames = []string{"a", "b", "c", "d", "e", "f"}
	assert.False(t, p.IsComplete())

	p = validProfile()
	p.FamilyNames = []string{"a", "b", "c", "d", "e"}
	assert.True(t, p.IsComplete())
}

func TestIsComplete_RequiresIntensityOccasionClimate(t *testing.T) {
	p := validProfile()
	p.Intensity = ""
	assert.False(t, p.IsComplete())

	p = validProfile()
	p.Occasions = nil
	assert.False(t, p.IsComplete())

	p = validProfile()
	p.Climates = nil
	assert.False(t, p.IsComplete())
}

func TestSuitabilityFor(t *testing.T) {
	p := &Product{Attributes: ProductAttributes{
		TimeOfDay: TimeOfDaySuitability{Day: 40, Night: 85},
	}}

	assert.Equal(t, 40.0, p.SuitabilityFor(TimeOfDayDay))
	assert.Equal(t, 85.0, p.SuitabilityFor(TimeOfDayNight))
	assert.Equal(t, 0.0, p.SuitabilityFor("afternoon"))
}
