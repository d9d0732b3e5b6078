package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/esenciapy/backend/internal/domain/entities"
)

func samplePromptProduct() *entities.Product {
	return &entities.Product{
		ID:            "p1",
		Name:          "Noche Guaraní",
		BrandName:     "Esencia",
		Gender:        entities.GenderUnisex,
		Concentration: "Eau de Parfum",
		Intensity:     entities.IntensityAlta,
		FamilyNames:   []string{"Amaderado", "Especiado"},
		Attributes: entities.ProductAttributes{
			Notes: entities.ScentNotes{
				Top:   []string{"bergamota"},
				Heart: []string{"cedro"},
				Base:  []string{"ámbar"},
			},
			Sillage: "Fuerte",
			Seasons: map[string]float64{
				"invierno": 90, "verano": 20, "primavera": 50, "otoño": 80,
			},
			TimeOfDay: entities.TimeOfDaySuitability{Day: 30, Night: 95},
		},
	}
}

func TestBuildMatchPrompt_ContainsProfileAndProduct(t *testing.T) {
	prompt := buildMatchPrompt(completeProfile("u1"), samplePromptProduct())

	assert.Contains(t, prompt, "PERFIL DEL CLIENTE:")
	assert.Contains(t, prompt, "Amaderado, Cítrico")
	assert.Contains(t, prompt, "PERFUME:")
	assert.Contains(t, prompt, "Noche Guaraní")
	assert.Contains(t, prompt, "Notas de fondo: ámbar")
	assert.Contains(t, prompt, "día 30, noche 95")
	assert.Contains(t, prompt, "entero entre 0 y 100")
}

func TestBuildMatchPrompt_Deterministic(t *testing.T) {
	profile := completeProfile("u1")
	product := samplePromptProduct()

	first := buildMatchPrompt(profile, product)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, buildMatchPrompt(profile, product))
	}
}

func TestBuildMatchPrompt_ProfileBlockPrecedesProduct(t *testing.T) {
	prompt := buildMatchPrompt(completeProfile("u1"), samplePromptProduct())

	assert.Less(t, strings.Index(prompt, "PERFIL DEL CLIENTE:"), strings.Index(prompt, "PERFUME:"))
}

func TestBuildMatchPrompt_MissingFieldsRenderedAsDash(t *testing.T) {
	product := &entities.Product{ID: "p1", Name: "Minimal"}
	prompt := buildMatchPrompt(completeProfile("u1"), product)

	assert.Contains(t, prompt, "Marca: -")
	assert.Contains(t, prompt, "Notas de salida: -")
	assert.Contains(t, prompt, "Afinidad por estación: -")
}

func TestFormatScores_FixedSeasonOrder(t *testing.T) {
	scores := map[string]float64{
		"primavera": 50, "invierno": 90, "verano": 20, "otoño": 80,
	}

	got := formatScores(scores)

	assert.Equal(t, "verano 20, otoño 80, invierno 90, primavera 50", got)
}
