package services

import (
	"context"
	"strings"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
	"github.com/esenciapy/backend/pkg/utils"
)

var (
	unresolvedFamilyCounterOnce sync.Once
	unresolvedFamilyCounter     metric.Int64Counter
)

// FilterCompiler maps a ParsedIntent onto a CompiledFilter, resolving family
// display names to catalog slugs
type FilterCompiler struct {
	families repositories.ScentFamilyRepository
}

// NewFilterCompiler creates a new filter compiler
func NewFilterCompiler(families repositories.ScentFamilyRepository) *FilterCompiler {
	return &FilterCompiler{families: families}
}

// Compile projects the intent into a query-ready filter. Every field maps
// 1:1 except families, which go through an exact-name catalog lookup with a
// heuristic slugify fallback for misses. A lookup failure falls through to
// the heuristic for all names rather than aborting compilation.
func (c *FilterCompiler) Compile(ctx context.Context, intent *entities.ParsedIntent) entities.CompiledFilter {
	filter := entities.CompiledFilter{
		Gender:      intent.Gender,
		Occasion:    intent.Occasion,
		Intensity:   intent.Intensity,
		Climate:     intent.Climate,
		Event:       intent.Event,
		PriceRange:  intent.PriceRange,
		TimeOfDay:   intent.TimeOfDay,
		SortByPrice: intent.SortByPrice,
		Limit:       intent.Limit,
	}

	if len(intent.Families) > 0 {
		filter.FamilySlugs = c.resolveFamilySlugs(ctx, intent.Families)
	}

	return filter
}

func (c *FilterCompiler) resolveFamilySlugs(ctx context.Context, names []string) []string {
	slugByName := map[string]string{}

	families, err := c.families.GetByNames(ctx, names)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Msg("family lookup failed, falling back to heuristic slugs")
	} else {
		for _, family := range families {
			slugByName[strings.ToLower(strings.TrimSpace(family.Name))] = family.Slug
		}
	}

	slugs := make([]string, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if slug, ok := slugByName[key]; ok {
			slugs = append(slugs, slug)
			continue
		}
		recordUnresolvedFamily(ctx, key)
		slugs = append(slugs, utils.Slugify(name))
	}

	return slugs
}

func initUnresolvedFamilyCounter() {
	meter := otel.Meter("github.com/esenciapy/backend/filter_compiler")
	counter, err := meter.Int64Counter(
		"search.family_not_found.count",
		metric.WithDescription("Count of scent family names with no catalog entry"),
	)
	if err == nil {
		unresolvedFamilyCounter = counter
	}
}

func recordUnresolvedFamily(ctx context.Context, name string) {
	unresolvedFamilyCounterOnce.Do(initUnresolvedFamilyCounter)
	if unresolvedFamilyCounter == nil {
		return
	}
	unresolvedFamilyCounter.Add(
		ctx,
		1,
		metric.WithAttributes(attribute.String("search.family", name)),
	)
}
