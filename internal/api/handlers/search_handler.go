package handlers

import (
	"net/http"
	"strconv"

	"github.com/esenciapy/backend/internal/application/services"
)

const (
	defaultPageLimit = 30
	maxPageLimit     = 100
)

// SearchHandler handles natural-language search requests
type SearchHandler struct {
	search  *services.SearchService
	history *services.SearchHistoryService
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(search *services.SearchService, history *services.SearchHistoryService) *SearchHandler {
	return &SearchHandler{
		search:  search,
		history: history,
	}
}

// Search handles GET /api/search
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		respondWithError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	var userID *string
	if id := r.URL.Query().Get("user_id"); id != "" {
		userID = &id
	}

	page := parsePage(r)

	result, err := h.search.Search(r.Context(), query, userID, page)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetHistory handles GET /api/search/history
func (h *SearchHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		respondWithError(w, http.StatusBadRequest, "user_id is required")
		return
	}

	limit := parseIntParam(r, "limit", 20)

	events, err := h.history.ListByUser(r.Context(), userID, limit)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"count":  len(events),
	})
}

func parsePage(r *http.Request) services.Page {
	limit := parseIntParam(r, "limit", defaultPageLimit)
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	offset := parseIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return services.Page{Limit: limit, Offset: offset}
}

func parseIntParam(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
