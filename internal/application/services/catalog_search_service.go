package services

import (
	"context"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
	"github.com/esenciapy/backend/pkg/config"
)

const searchIndexLimit = 100

// Page holds pagination for searches without an intent-level limit
type Page struct {
	Limit  int
	Offset int
}

// CatalogSearchService executes compiled filters against the product store.
// Store-native predicates are pushed down; the day/night suitability
// threshold lives inside the JSONB attribute document the store cannot
// filter on, so it is applied by scanning the fetched page.
type CatalogSearchService struct {
	products  repositories.ProductRepository
	families  repositories.ScentFamilyRepository
	index     repositories.ProductSearchIndex
	overfetch int
	threshold float64
}

// NewCatalogSearchService creates a new catalog search service. index may be
// nil, in which case free-text search falls back to store-side substring
// matching.
func NewCatalogSearchService(
	products repositories.ProductRepository,
	families repositories.ScentFamilyRepository,
	index repositories.ProductSearchIndex,
	cfg *config.MatchingConfig,
) *CatalogSearchService {
	overfetch := cfg.OverfetchMultiplier
	if overfetch < 1 {
		overfetch = 2
	}
	threshold := cfg.DayNightThreshold
	if threshold <= 0 {
		threshold = 70
	}

	return &CatalogSearchService{
		products:  products,
		families:  families,
		index:     index,
		overfetch: overfetch,
		threshold: threshold,
	}
}

// Execute runs the filter and returns the matching products plus a total.
// When a time-of-day filter is present the total reflects the post-filter
// count; otherwise it is the store-side count.
func (s *CatalogSearchService) Execute(ctx context.Context, filter entities.CompiledFilter, page Page) ([]*entities.Product, int, error) {
	active := true
	pf := repositories.ProductFilter{IsActive: &active}

	if len(filter.FamilySlugs) > 0 {
		productIDs, empty, err := s.resolveFamilyProducts(ctx, filter.FamilySlugs)
		if err != nil {
			return nil, 0, err
		}
		// Zero family IDs or an empty join must short-circuit to an empty
		// result; an empty IN-list is not "no filter"
		if empty {
			return []*entities.Product{}, 0, nil
		}
		pf.ProductIDs = productIDs
	}

	if filter.Text != nil && *filter.Text != "" {
		ids, usedIndex := s.searchIndex(ctx, *filter.Text)
		if usedIndex {
			if len(ids) == 0 {
				return []*entities.Product{}, 0, nil
			}
			pf.ProductIDs = intersectIDs(pf.ProductIDs, ids)
			if len(pf.ProductIDs) == 0 {
				return []*entities.Product{}, 0, nil
			}
		} else {
			pf.Text = *filter.Text
		}
	}

	if filter.Gender != nil {
		pf.Gender = *filter.Gender
	}
	if filter.Intensity != nil {
		pf.Intensity = *filter.Intensity
	}
	if filter.Occasion != nil {
		pf.Occasion = *filter.Occasion
	}
	if filter.Climate != nil {
		pf.Climate = *filter.Climate
	}
	if filter.Event != nil {
		pf.Event = *filter.Event
	}
	if filter.PriceRange != nil {
		pf.MinPrice = filter.PriceRange.Min
		pf.MaxPrice = filter.PriceRange.Max
	}
	if filter.SortByPrice != nil {
		pf.SortByPrice = *filter.SortByPrice
	}

	// Limit-capped queries over-fetch before the in-memory filter can
	// discard rows, then truncate afterwards. The store-level LIMIT alone
	// would under-deliver.
	if filter.Limit != nil {
		pf.Limit = *filter.Limit * s.overfetch
	} else {
		pf.Limit = page.Limit
		pf.Offset = page.Offset
	}

	products, total, err := s.products.Search(ctx, pf)
	if err != nil {
		return nil, 0, err
	}

	if filter.TimeOfDay != nil {
		products = s.filterByTimeOfDay(products, *filter.TimeOfDay)
		total = len(products)
	}

	if filter.Limit != nil {
		if len(products) > *filter.Limit {
			products = products[:*filter.Limit]
		}
		total = len(products)
	}

	return products, total, nil
}

// resolveFamilyProducts walks slugs → family IDs → product IDs. empty is
// true when either hop yields nothing.
func (s *CatalogSearchService) resolveFamilyProducts(ctx context.Context, slugs []string) ([]string, bool, error) {
	familyIDs, err := s.families.GetIDsBySlugs(ctx, slugs)
	if err != nil {
		return nil, false, err
	}
	if len(familyIDs) == 0 {
		return nil, true, nil
	}

	productIDs, err := s.families.GetProductIDsByFamilyIDs(ctx, familyIDs)
	if err != nil {
		return nil, false, err
	}
	if len(productIDs) == 0 {
		return nil, true, nil
	}

	return productIDs, false, nil
}

// searchIndex queries the external index; usedIndex is false when no index
// is configured or the call failed, in which case the caller falls back to
// store-side substring matching
func (s *CatalogSearchService) searchIndex(ctx context.Context, text string) ([]string, bool) {
	if s.index == nil {
		return nil, false
	}

	ids, err := s.index.Search(ctx, text, searchIndexLimit)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Msg("search index unavailable, falling back to store text match")
		return nil, false
	}

	return ids, true
}

func (s *CatalogSearchService) filterByTimeOfDay(products []*entities.Product, timeOfDay string) []*entities.Product {
	filtered := make([]*entities.Product, 0, len(products))
	for _, product := range products {
		if product.SuitabilityFor(timeOfDay) >= s.threshold {
			filtered = append(filtered, product)
		}
	}
	return filtered
}

func intersectIDs(current, found []string) []string {
	if current == nil {
		return found
	}

	allowed := make(map[string]struct{}, len(current))
	for _, id := range current {
		allowed[id] = struct{}{}
	}

	result := []string{}
	for _, id := range found {
		if _, ok := allowed[id]; ok {
			result = append(result, id)
		}
	}
	return result
}
