package handlers

import (
	"net/http"
	"strconv"

	"github.com/esenciapy/backend/internal/application/services"
	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
)

// ProductHandler handles catalog browsing requests
type ProductHandler struct {
	products repositories.ProductRepository
	catalog  *services.CatalogSearchService
}

// NewProductHandler creates a new product handler
func NewProductHandler(products repositories.ProductRepository, catalog *services.CatalogSearchService) *ProductHandler {
	return &ProductHandler{
		products: products,
		catalog:  catalog,
	}
}

// GetProduct handles GET /api/products/{id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		respondWithError(w, http.StatusBadRequest, "product ID is required")
		return
	}

	product, err := h.products.GetByID(r.Context(), productID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, product)
}

// ListProducts handles GET /api/products. Filters come in as plain query
// parameters; this is the structured counterpart of the natural-language
// search endpoint.
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := filterFromQuery(r)
	page := parsePage(r)

	products, total, err := h.catalog.Execute(r.Context(), filter, page)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"total":    total,
	})
}

func filterFromQuery(r *http.Request) entities.CompiledFilter {
	q := r.URL.Query()
	filter := entities.CompiledFilter{
		Text:      optionalString(q.Get("text")),
		Gender:    optionalString(q.Get("gender")),
		Occasion:  optionalString(q.Get("occasion")),
		Intensity: optionalString(q.Get("intensity")),
		Climate:   optionalString(q.Get("climate")),
		Event:     optionalString(q.Get("event")),
	}

	if families := q["family"]; len(families) > 0 {
		filter.FamilySlugs = families
	}

	minPrice := optionalFloat(q.Get("min_price"))
	maxPrice := optionalFloat(q.Get("max_price"))
	if minPrice != nil || maxPrice != nil {
		filter.PriceRange = &entities.PriceRange{Min: minPrice, Max: maxPrice}
	}

	if sort := q.Get("sort_by_price"); sort == "asc" || sort == "desc" {
		filter.SortByPrice = &sort
	}

	return filter
}

func optionalString(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func optionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || value < 0 {
		return nil
	}
	return &value
}
