package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esenciapy/backend/internal/application/services"
	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/providers"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/pkg/config"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

type stubCompleter struct{ reply string }

func (s *stubCompleter) Complete(ctx context.Context, prompt string, opts providers.CompletionOptions) (string, error) {
	return s.reply, nil
}

type stubMatchRepo struct{}

func (s *stubMatchRepo) Get(ctx context.Context, userID, productID string) (*entities.MatchRecord, error) {
	return nil, apperrors.NewNotFoundError("match record not found")
}

func (s *stubMatchRepo) Upsert(ctx context.Context, record *entities.MatchRecord) error {
	return nil
}

type stubProfileRepo struct{ profile *entities.UserPreferenceProfile }

func (s *stubProfileRepo) GetByUserID(ctx context.Context, userID string) (*entities.UserPreferenceProfile, error) {
	if s.profile == nil {
		return nil, apperrors.NewNotFoundError("profile not found")
	}
	return s.profile, nil
}

type stubProductRepo struct{ product *entities.Product }

func (s *stubProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	if s.product == nil || s.product.ID != id {
		return nil, apperrors.NewNotFoundError("product not found")
	}
	return s.product, nil
}

func (s *stubProductRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error) {
	return nil, nil
}

func (s *stubProductRepo) Search(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, int, error) {
	return nil, 0, nil
}

func newMatchHandler(profile *entities.UserPreferenceProfile, product *entities.Product) *MatchHandler {
	svc := services.NewMatchService(
		&stubCompleter{reply: "88"},
		&stubMatchRepo{},
		&stubProfileRepo{profile: profile},
		&stubProductRepo{product: product},
		&config.MatchingConfig{CacheTTLDays: 7, OverfetchMultiplier: 2, DayNightThreshold: 70},
	)
	return NewMatchHandler(svc)
}

func serveMatch(h *MatchHandler, target string) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/products/{id}/match", h.GetMatch)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestGetMatch_Success(t *testing.T) {
	profile := &entities.UserPreferenceProfile{
		UserID:      "u1",
		FamilyNames: []string{"Floral"},
		Intensity:   entities.IntensityAlta,
		Occasions:   []string{entities.OccasionNocturno},
		Climates:    []string{entities.ClimateCalor},
		Completed:   true,
	}
	handler := newMatchHandler(profile, &entities.Product{ID: "p1", Name: "Test"})

	rec := serveMatch(handler, "/api/products/p1/match?user_id=u1")

	require.Equal(t, http.StatusOK, rec.Code)
	var record entities.MatchRecord
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&record))
	assert.Equal(t, 88, record.Percentage)
	assert.Equal(t, "u1", record.UserID)
}

func TestGetMatch_MissingUserID(t *testing.T) {
	handler := newMatchHandler(nil, nil)

	rec := serveMatch(handler, "/api/products/p1/match")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetMatch_IncompleteProfile(t *testing.T) {
	handler := newMatchHandler(&entities.UserPreferenceProfile{UserID: "u1"}, &entities.Product{ID: "p1"})

	rec := serveMatch(handler, "/api/products/p1/match?user_id=u1")

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetMatch_UnknownProduct(t *testing.T) {
	profile := &entities.UserPreferenceProfile{
		UserID:      "u1",
		FamilyNames: []string{"Floral"},
		Intensity:   entities.IntensityAlta,
		Occasions:   []string{entities.OccasionNocturno},
		Climates:    []string{entities.ClimateCalor},
		Completed:   true,
	}
	handler := newMatchHandler(profile, nil)

	rec := serveMatch(handler, "/api/products/p1/match?user_id=u1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMatchBatch_Validation(t *testing.T) {
	handler := newMatchHandler(nil, nil)
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/matches/batch", handler.GetMatchBatch)

	cases := []string{
		`{}`,
		`{"user_id":"u1"}`,
		`{"product_ids":["p1"]}`,
		`not json`,
	}
	for _, body := range cases {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/matches/batch", strings.NewReader(body))
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}
