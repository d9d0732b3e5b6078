package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/esenciapy/backend/internal/application/services"
)

const maxBatchSize = 50

// MatchHandler handles match percentage requests
type MatchHandler struct {
	matches *services.MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matches *services.MatchService) *MatchHandler {
	return &MatchHandler{matches: matches}
}

// GetMatch handles GET /api/products/{id}/match
func (h *MatchHandler) GetMatch(w http.ResponseWriter, r *http.Request) {
	productID := r.PathValue("id")
	if productID == "" {
		respondWithError(w, http.StatusBadRequest, "product ID is required")
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	record, err := h.matches.GetMatch(r.Context(), userID, productID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, record)
}

type batchMatchRequest struct {
	UserID     string   `json:"user_id"`
	ProductIDs []string `json:"product_ids"`
}

// GetMatchBatch handles POST /api/matches/batch
func (h *MatchHandler) GetMatchBatch(w http.ResponseWriter, r *http.Request) {
	var req batchMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.UserID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}
	if len(req.ProductIDs) == 0 {
		respondWithError(w, http.StatusBadRequest, "product_ids is required")
		return
	}
	if len(req.ProductIDs) > maxBatchSize {
		respondWithError(w, http.StatusBadRequest, "too many product_ids")
		return
	}

	records, err := h.matches.GetMatchBatch(r.Context(), req.UserID, req.ProductIDs)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"matches": records,
	})
}
