package services

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
)

var (
	searchMetricsOnce    sync.Once
	searchCounter        metric.Int64Counter
	searchDegradeCounter metric.Int64Counter
)

// SearchResult is the full outcome of a natural-language search
type SearchResult struct {
	Products    []*entities.Product    `json:"products"`
	Total       int                    `json:"total"`
	Explanation string                 `json:"explanation"`
	Intent      *entities.ParsedIntent `json:"intent"`
	Degraded    bool                   `json:"degraded,omitempty"`
}

// SearchService orchestrates the natural-language search pipeline: parse the
// query, compile the intent, execute against the catalog, record the event.
type SearchService struct {
	parser   *QueryParserService
	compiler *FilterCompiler
	executor *CatalogSearchService
	history  *SearchHistoryService
}

// NewSearchService creates a new search service
func NewSearchService(
	parser *QueryParserService,
	compiler *FilterCompiler,
	executor *CatalogSearchService,
	history *SearchHistoryService,
) *SearchService {
	return &SearchService{
		parser:   parser,
		compiler: compiler,
		executor: executor,
		history:  history,
	}
}

// Search runs the pipeline end to end. userID may be nil for anonymous
// searches; history is recorded only for signed-in users and never blocks
// the response.
func (s *SearchService) Search(ctx context.Context, query string, userID *string, page Page) (*SearchResult, error) {
	ctx, span := observability.StartSpan(ctx, "search.query")
	defer span.End()

	parsed := s.parser.Parse(ctx, query)
	recordSearch(ctx, parsed.Degraded)

	filter := s.compiler.Compile(ctx, parsed.Intent)

	products, total, err := s.executor.Execute(ctx, filter, page)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	resultIDs := make([]string, 0, len(products))
	for _, product := range products {
		resultIDs = append(resultIDs, product.ID)
	}
	s.history.Record(ctx, userID, query, parsed.Intent, resultIDs)

	return &SearchResult{
		Products:    products,
		Total:       total,
		Explanation: parsed.Explanation,
		Intent:      parsed.Intent,
		Degraded:    parsed.Degraded,
	}, nil
}

func initSearchMetrics() {
	meter := otel.Meter("github.com/esenciapy/backend/search_service")
	if counter, err := meter.Int64Counter(
		"search.request.count",
		metric.WithDescription("Count of natural-language searches executed"),
	); err == nil {
		searchCounter = counter
	}
	if counter, err := meter.Int64Counter(
		"search.degraded.count",
		metric.WithDescription("Count of searches that ran with a degraded parse"),
	); err == nil {
		searchDegradeCounter = counter
	}
}

func recordSearch(ctx context.Context, degraded bool) {
	searchMetricsOnce.Do(initSearchMetrics)
	if searchCounter != nil {
		searchCounter.Add(ctx, 1, metric.WithAttributes(attribute.Bool("search.degraded", degraded)))
	}
	if degraded && searchDegradeCounter != nil {
		searchDegradeCounter.Add(ctx, 1)
	}
}
