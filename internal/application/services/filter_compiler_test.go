package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esenciapy/backend/internal/domain/entities"
)

func TestCompile_CopiesScalarFields(t *testing.T) {
	compiler := NewFilterCompiler(&fakeFamilyRepo{})

	intent := &entities.ParsedIntent{
		Gender:      strptr(entities.GenderUnisex),
		Occasion:    strptr(entities.OccasionCasual),
		Intensity:   strptr(entities.IntensityBaja),
		Climate:     strptr(entities.ClimateCalor),
		Event:       strptr(entities.EventAsado),
		PriceRange:  &entities.PriceRange{Max: floatptr(800000)},
		TimeOfDay:   strptr(entities.TimeOfDayDay),
		SortByPrice: strptr(entities.SortDesc),
		Limit:       intptr(5),
	}

	filter := compiler.Compile(context.Background(), intent)

	assert.Equal(t, entities.GenderUnisex, *filter.Gender)
	assert.Equal(t, entities.OccasionCasual, *filter.Occasion)
	assert.Equal(t, entities.IntensityBaja, *filter.Intensity)
	assert.Equal(t, entities.ClimateCalor, *filter.Climate)
	assert.Equal(t, entities.EventAsado, *filter.Event)
	assert.Equal(t, 800000.0, *filter.PriceRange.Max)
	assert.Equal(t, entities.TimeOfDayDay, *filter.TimeOfDay)
	assert.Equal(t, entities.SortDesc, *filter.SortByPrice)
	assert.Equal(t, 5, *filter.Limit)
	assert.Nil(t, filter.Text)
	assert.Empty(t, filter.FamilySlugs)
}

func TestCompile_ResolvesFamilyNamesToSlugs(t *testing.T) {
	repo := &fakeFamilyRepo{
		families: []*entities.ScentFamily{
			{ID: "f1", Name: "Amaderado", Slug: "amaderado"},
			{ID: "f2", Name: "Cítrico", Slug: "citrico"},
		},
	}
	compiler := NewFilterCompiler(repo)

	filter := compiler.Compile(context.Background(), &entities.ParsedIntent{
		Families: []string{"amaderado", "CÍTRICO"},
	})

	assert.Equal(t, []string{"amaderado", "citrico"}, filter.FamilySlugs)
}

func TestCompile_SlugifiesUnknownFamilies(t *testing.T) {
	repo := &fakeFamilyRepo{
		families: []*entities.ScentFamily{
			{ID: "f1", Name: "Floral", Slug: "floral"},
		},
	}
	compiler := NewFilterCompiler(repo)

	filter := compiler.Compile(context.Background(), &entities.ParsedIntent{
		Families: []string{"Floral", "Oriental Especiado"},
	})

	assert.Equal(t, []string{"floral", "oriental-especiado"}, filter.FamilySlugs)
}

func TestCompile_LookupFailureFallsBackToHeuristic(t *testing.T) {
	repo := &fakeFamilyRepo{namesErr: errors.New("db down")}
	compiler := NewFilterCompiler(repo)

	filter := compiler.Compile(context.Background(), &entities.ParsedIntent{
		Families: []string{"Cítrico"},
	})

	assert.Equal(t, []string{"citrico"}, filter.FamilySlugs)
}

func TestCompile_Deterministic(t *testing.T) {
	repo := &fakeFamilyRepo{
		families: []*entities.ScentFamily{
			{ID: "f1", Name: "Floral", Slug: "floral"},
		},
	}
	compiler := NewFilterCompiler(repo)
	intent := &entities.ParsedIntent{
		Gender:   strptr(entities.GenderMujer),
		Families: []string{"Floral"},
	}

	first := compiler.Compile(context.Background(), intent)
	second := compiler.Compile(context.Background(), intent)

	assert.Equal(t, first, second)
}
