package entities

// Closed vocabularies for parsed search intent. The language model is
// instructed to emit only these values; anything else is dropped during
// sanitization so unvalidated model output never reaches the query layer.
const (
	GenderHombre = "Hombre"
	GenderMujer  = "Mujer"
	GenderUnisex = "Unisex"

	OccasionDiurno    = "Diurno"
	OccasionNocturno  = "Nocturno"
	OccasionFormal    = "Formal"
	OccasionCasual    = "Casual"
	OccasionRomantico = "Romántico"
	OccasionDeportivo = "Deportivo"

	IntensityBaja     = "Baja"
	IntensityModerada = "Moderada"
	IntensityAlta     = "Alta"

	ClimateCalor    = "Calor"
	ClimateFrio     = "Frío"
	ClimateTemplado = "Templado"

	EventTerere  = "Tereré"
	EventAsado   = "Asado"
	EventFiesta  = "Fiesta"
	EventCita    = "Cita"
	EventTrabajo = "Trabajo"

	TimeOfDayDay   = "day"
	TimeOfDayNight = "night"

	SortAsc  = "asc"
	SortDesc = "desc"
)

var validGenders = map[string]struct{}{
	GenderHombre: {}, GenderMujer: {}, GenderUnisex: {},
}

var validOccasions = map[string]struct{}{
	OccasionDiurno: {}, OccasionNocturno: {}, OccasionFormal: {},
	OccasionCasual: {}, OccasionRomantico: {}, OccasionDeportivo: {},
}

var validIntensities = map[string]struct{}{
	IntensityBaja: {}, IntensityModerada: {}, IntensityAlta: {},
}

var validClimates = map[string]struct{}{
	ClimateCalor: {}, ClimateFrio: {}, ClimateTemplado: {},
}

var validEvents = map[string]struct{}{
	EventTerere: {}, EventAsado: {}, EventFiesta: {},
	EventCita: {}, EventTrabajo: {},
}

var validTimesOfDay = map[string]struct{}{
	TimeOfDayDay: {}, TimeOfDayNight: {},
}

var validSortDirections = map[string]struct{}{
	SortAsc: {}, SortDesc: {},
}

// PriceRange holds independently-optional numeric price bounds
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// ParsedIntent is the structured, validated representation of a free-text
// search query. Every field is independently nullable: absence means "do not
// filter on this dimension", never "filter for empty".
type ParsedIntent struct {
	Gender      *string     `json:"gender,omitempty"`
	Occasion    *string     `json:"occasion,omitempty"`
	Intensity   *string     `json:"intensity,omitempty"`
	Climate     *string     `json:"climate,omitempty"`
	Event       *string     `json:"event,omitempty"`
	PriceRange  *PriceRange `json:"price_range,omitempty"`
	Families    []string    `json:"families,omitempty"`
	TimeOfDay   *string     `json:"time_of_day,omitempty"`
	SortByPrice *string     `json:"sort_by_price,omitempty"`
	Limit       *int        `json:"limit,omitempty"`
}

// Sanitize drops any field whose value falls outside its closed vocabulary.
// Model output is untrusted; unknown values become absent rather than errors.
func (i *ParsedIntent) Sanitize() {
	i.Gender = keepValid(i.Gender, validGenders)
	i.Occasion = keepValid(i.Occasion, validOccasions)
	i.Intensity = keepValid(i.Intensity, validIntensities)
	i.Climate = keepValid(i.Climate, validClimates)
	i.Event = keepValid(i.Event, validEvents)
	i.TimeOfDay = keepValid(i.TimeOfDay, validTimesOfDay)
	i.SortByPrice = keepValid(i.SortByPrice, validSortDirections)

	if i.Limit != nil && *i.Limit <= 0 {
		i.Limit = nil
	}

	if i.PriceRange != nil {
		if i.PriceRange.Min != nil && *i.PriceRange.Min < 0 {
			i.PriceRange.Min = nil
		}
		if i.PriceRange.Max != nil && *i.PriceRange.Max <= 0 {
			i.PriceRange.Max = nil
		}
		if i.PriceRange.Min == nil && i.PriceRange.Max == nil {
			i.PriceRange = nil
		}
	}

	families := make([]string, 0, len(i.Families))
	for _, f := range i.Families {
		if f != "" {
			families = append(families, f)
		}
	}
	if len(families) == 0 {
		i.Families = nil
	} else {
		i.Families = families
	}
}

// IsEmpty reports whether no filter dimension is set
func (i *ParsedIntent) IsEmpty() bool {
	return i.Gender == nil && i.Occasion == nil && i.Intensity == nil &&
		i.Climate == nil && i.Event == nil && i.PriceRange == nil &&
		len(i.Families) == 0 && i.TimeOfDay == nil &&
		i.SortByPrice == nil && i.Limit == nil
}

func keepValid(v *string, valid map[string]struct{}) *string {
	if v == nil {
		return nil
	}
	if _, ok := valid[*v]; ok {
		return v
	}
	return nil
}
