package handlers

import (
	"net/http"

	"github.com/esenciapy/backend/internal/domain/repositories"
)

// CatalogHandler handles brand and scent family lookups used by the
// storefront filter UI
type CatalogHandler struct {
	brands   repositories.BrandRepository
	families repositories.ScentFamilyRepository
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(brands repositories.BrandRepository, families repositories.ScentFamilyRepository) *CatalogHandler {
	return &CatalogHandler{
		brands:   brands,
		families: families,
	}
}

// ListBrands handles GET /api/brands
func (h *CatalogHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.brands.ListActive(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"brands": brands,
		"count":  len(brands),
	})
}

// GetBrand handles GET /api/brands/{id}
func (h *CatalogHandler) GetBrand(w http.ResponseWriter, r *http.Request) {
	brandID := r.PathValue("id")
	if brandID == "" {
		respondWithError(w, http.StatusBadRequest, "brand ID is required")
		return
	}

	brand, err := h.brands.GetByID(r.Context(), brandID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, brand)
}

// ListScentFamilies handles GET /api/scent-families
func (h *CatalogHandler) ListScentFamilies(w http.ResponseWriter, r *http.Request) {
	families, err := h.families.ListAll(r.Context())
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"families": families,
		"count":    len(families),
	})
}
