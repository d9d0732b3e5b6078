package routes

import (
	"net/http"

	"github.com/esenciapy/backend/internal/api/handlers"
	"github.com/esenciapy/backend/internal/api/middleware"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	searchHandler  *handlers.SearchHandler
	productHandler *handlers.ProductHandler
	matchHandler   *handlers.MatchHandler
	catalogHandler *handlers.CatalogHandler

	metrics *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	searchHandler *handlers.SearchHandler,
	productHandler *handlers.ProductHandler,
	matchHandler *handlers.MatchHandler,
	catalogHandler *handlers.CatalogHandler,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:            http.NewServeMux(),
		searchHandler:  searchHandler,
		productHandler: productHandler,
		matchHandler:   matchHandler,
		catalogHandler: catalogHandler,
		metrics:        metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Search endpoints
	r.mux.HandleFunc("GET /api/search", r.searchHandler.Search)
	r.mux.HandleFunc("GET /api/search/history", r.searchHandler.GetHistory)

	// Product endpoints
	r.mux.HandleFunc("GET /api/products", r.productHandler.ListProducts)
	r.mux.HandleFunc("GET /api/products/{id}", r.productHandler.GetProduct)

	// Match endpoints
	r.mux.HandleFunc("GET /api/products/{id}/match", r.matchHandler.GetMatch)
	r.mux.HandleFunc("POST /api/matches/batch", r.matchHandler.GetMatchBatch)

	// Brand and scent family endpoints
	r.mux.HandleFunc("GET /api/brands", r.catalogHandler.ListBrands)
	r.mux.HandleFunc("GET /api/brands/{id}", r.catalogHandler.GetBrand)
	r.mux.HandleFunc("GET /api/scent-families", r.catalogHandler.ListScentFamilies)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)

	// CORS wraps everything so preflight requests never reach the mux
	handler = middleware.CORSMiddleware(handler)

	return handler
}
