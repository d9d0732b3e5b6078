package entities

// CompiledFilter is the query-ready projection of a ParsedIntent: family
// display names have been resolved to catalog slugs, everything else carries
// over unchanged. One ParsedIntent maps deterministically to one
// CompiledFilter given a stable family catalog.
type CompiledFilter struct {
	// Text carries free-text search from the plain search box; the NL
	// parsing pipeline never sets it
	Text *string `json:"text,omitempty"`

	Gender      *string     `json:"gender,omitempty"`
	Occasion    *string     `json:"occasion,omitempty"`
	Intensity   *string     `json:"intensity,omitempty"`
	Climate     *string     `json:"climate,omitempty"`
	Event       *string     `json:"event,omitempty"`
	PriceRange  *PriceRange `json:"price_range,omitempty"`
	FamilySlugs []string    `json:"family_slugs,omitempty"`

	// TimeOfDay is not pushed to the store; the executor applies it by
	// scanning the fetched page against the suitability threshold.
	TimeOfDay *string `json:"time_of_day,omitempty"`

	SortByPrice *string `json:"sort_by_price,omitempty"`
	Limit       *int    `json:"limit,omitempty"`
}
