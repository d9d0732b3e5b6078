package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/esenciapy/backend/internal/domain/entities"
)

// queryParserSystemPrompt instructs the model to turn a free-text perfume
// search into the closed-vocabulary intent JSON. The slang mappings are
// business rules, not hints; the parser depends on the model honoring them
// and sanitizes whatever comes back regardless.
const queryParserSystemPrompt = `Sos el asistente de búsqueda de una perfumería online paraguaya. Convertí la consulta del cliente en un JSON con esta forma exacta (todo campo es opcional, omití los que la consulta no menciona):
{
  "gender": "Hombre" | "Mujer" | "Unisex",
  "occasion": "Diurno" | "Nocturno" | "Formal" | "Casual" | "Romántico" | "Deportivo",
  "intensity": "Baja" | "Moderada" | "Alta",
  "climate": "Calor" | "Frío" | "Templado",
  "event": "Tereré" | "Asado" | "Fiesta" | "Cita" | "Trabajo",
  "price_range": { "min": number, "max": number },
  "families": string[] (nombres de familias olfativas, ej. "Floral", "Amaderado"),
  "time_of_day": "day" | "night",
  "sort_by_price": "asc" | "desc",
  "limit": number,
  "explanation": string
}

Reglas fijas (aplicalas siempre que corresponda):
- "el más caro" / "el más costoso" → sort_by_price: "desc", limit: 1.
- "el más barato" / "el más económico" → sort_by_price: "asc", limit: 1.
- "para la noche" / "nocturno" → time_of_day: "night".
- "para el día" / "de día" → time_of_day: "day".
- frases de intimidad o cita romántica → occasion: "Romántico", intensity: "Alta".
- frases de conquistar, seducir o llamar la atención → intensity: "Alta", occasion: "Nocturno".
- "el que más piropos saca" o similar → occasion: "Nocturno", intensity: "Alta".
- "barato" / "económico" (sin superlativo) → price_range: { "max": 800000 }.
- "caro" / "premium" (sin superlativo) → price_range: { "min": 1000000 }.

La "explanation" es una frase corta e informal para el cliente (máximo 3 oraciones, sin referencias geográficas). Respondé SOLO el JSON, sin texto adicional.`

// fallbackExplanation is shown whenever parsing degrades to an unfiltered
// search
const fallbackExplanation = "No pude afinar tu búsqueda esta vez, así que te muestro todo el catálogo. ¡Algo te va a gustar!"

// buildMatchPrompt formats the profile and product into fixed-order labeled
// blocks. Block order is part of the contract with the scoring prompt; do not
// reorder.
func buildMatchPrompt(profile *entities.UserPreferenceProfile, product *entities.Product) string {
	var b strings.Builder

	b.WriteString("Calculá qué tan compatible es este perfume con las preferencias del cliente.\n\n")

	b.WriteString("PERFIL DEL CLIENTE:\n")
	fmt.Fprintf(&b, "Familias favoritas: %s\n", joinOrNone(profile.FamilyNames))
	fmt.Fprintf(&b, "Intensidad preferida: %s\n", valueOrNone(profile.Intensity))
	fmt.Fprintf(&b, "Ocasiones: %s\n", joinOrNone(profile.Occasions))
	fmt.Fprintf(&b, "Climas: %s\n", joinOrNone(profile.Climates))

	b.WriteString("\nPERFUME:\n")
	fmt.Fprintf(&b, "Nombre: %s\n", product.Name)
	fmt.Fprintf(&b, "Marca: %s\n", valueOrNone(product.BrandName))
	fmt.Fprintf(&b, "Familias: %s\n", joinOrNone(product.FamilyNames))
	fmt.Fprintf(&b, "Género: %s\n", valueOrNone(product.Gender))
	fmt.Fprintf(&b, "Concentración: %s\n", valueOrNone(product.Concentration))
	fmt.Fprintf(&b, "Notas de salida: %s\n", joinOrNone(product.Attributes.Notes.Top))
	fmt.Fprintf(&b, "Notas de corazón: %s\n", joinOrNone(product.Attributes.Notes.Heart))
	fmt.Fprintf(&b, "Notas de fondo: %s\n", joinOrNone(product.Attributes.Notes.Base))
	fmt.Fprintf(&b, "Intensidad: %s\n", valueOrNone(product.Intensity))
	fmt.Fprintf(&b, "Estela: %s\n", valueOrNone(product.Attributes.Sillage))
	fmt.Fprintf(&b, "Afinidad por estación: %s\n", formatScores(product.Attributes.Seasons))
	fmt.Fprintf(&b, "Afinidad día/noche: día %.0f, noche %.0f\n",
		product.Attributes.TimeOfDay.Day, product.Attributes.TimeOfDay.Night)

	b.WriteString("\nRespondé ÚNICAMENTE un número entero entre 0 y 100, sin texto ni símbolos.")

	return b.String()
}

func joinOrNone(values []string) string {
	if len(values) == 0 {
		return "-"
	}
	return strings.Join(values, ", ")
}

func valueOrNone(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

func formatScores(scores map[string]float64) string {
	if len(scores) == 0 {
		return "-"
	}
	// Fixed season order keeps the prompt deterministic for identical inputs
	order := []string{"verano", "otoño", "invierno", "primavera"}
	parts := make([]string, 0, len(scores))
	for _, season := range order {
		if v, ok := scores[season]; ok {
			parts = append(parts, fmt.Sprintf("%s %.0f", season, v))
		}
	}
	var extra []string
	for season := range scores {
		known := false
		for _, o := range order {
			if season == o {
				known = true
				break
			}
		}
		if !known {
			extra = append(extra, season)
		}
	}
	sort.Strings(extra)
	for _, season := range extra {
		parts = append(parts, fmt.Sprintf("%s %.0f", season, scores[season]))
	}
	return strings.Join(parts, ", ")
}
