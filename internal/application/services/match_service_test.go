package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esenciapy/backend/internal/domain/entities"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

func completeProfile(userID string) *entities.UserPreferenceProfile {
	return &entities.UserPreferenceProfile{
		UserID:      userID,
		FamilyNames: []string{"Amaderado", "Cítrico"},
		Intensity:   entities.IntensityModerada,
		Occasions:   []string{entities.OccasionCasual},
		Climates:    []string{entities.ClimateCalor},
		Completed:   true,
	}
}

func newMatchFixture(reply string) (*MatchService, *fakeCompleter, *fakeMatchRepo, *fakeProductRepo) {
	completer := &fakeCompleter{reply: reply}
	matches := newFakeMatchRepo()
	products := &fakeProductRepo{byID: map[string]*entities.Product{
		"p1": {ID: "p1", Name: "Aqua Test", BrandName: "Testino"},
	}}
	svc := NewMatchService(
		completer,
		matches,
		&fakeProfileRepo{profile: completeProfile("u1")},
		products,
		testMatchingConfig(),
	)
	return svc, completer, matches, products
}

func TestGetMatch_ComputesAndPersists(t *testing.T) {
	svc, completer, matches, _ := newMatchFixture("85")
	fixed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	record, err := svc.GetMatch(context.Background(), "u1", "p1")

	require.NoError(t, err)
	assert.Equal(t, 85, record.Percentage)
	assert.Equal(t, "u1", record.UserID)
	assert.Equal(t, "p1", record.ProductID)
	assert.Equal(t, fixed, record.CalculatedAt)
	assert.Equal(t, fixed.Add(7*24*time.Hour), record.ExpiresAt)
	assert.Equal(t, 1, completer.callCount())
	assert.Equal(t, 1, matches.upserts)
	assert.Equal(t, matchMaxTokens, completer.lastOpts.MaxTokens)
}

func TestGetMatch_ServesFreshCacheWithoutModelCall(t *testing.T) {
	svc, completer, matches, _ := newMatchFixture("85")
	now := time.Now()
	cached := &entities.MatchRecord{
		ID:         "m1",
		UserID:     "u1",
		ProductID:  "p1",
		Percentage: 72,
		ExpiresAt:  now.Add(24 * time.Hour),
	}
	matches.records[matchKey("u1", "p1")] = cached

	record, err := svc.GetMatch(context.Background(), "u1", "p1")

	require.NoError(t, err)
	assert.Equal(t, 72, record.Percentage)
	assert.Equal(t, 0, completer.callCount())
}

func TestGetMatch_ExpiredCacheRecomputes(t *testing.T) {
	svc, completer, matches, _ := newMatchFixture("91")
	now := time.Now()
	matches.records[matchKey("u1", "p1")] = &entities.MatchRecord{
		ID:         "m1",
		UserID:     "u1",
		ProductID:  "p1",
		Percentage: 10,
		ExpiresAt:  now.Add(-time.Minute),
	}

	record, err := svc.GetMatch(context.Background(), "u1", "p1")

	require.NoError(t, err)
	assert.Equal(t, 91, record.Percentage)
	assert.Equal(t, 1, completer.callCount())
}

func TestGetMatch_IncompleteProfileFailsPrecondition(t *testing.T) {
	profile := completeProfile("u1")
	profile.Completed = false
	svc := NewMatchService(
		&fakeCompleter{reply: "85"},
		newFakeMatchRepo(),
		&fakeProfileRepo{profile: profile},
		&fakeProductRepo{},
		testMatchingConfig(),
	)

	_, err := svc.GetMatch(context.Background(), "u1", "p1")

	assert.True(t, apperrors.IsPrecondition(err))
}

func TestGetMatch_MissingProfileFailsPrecondition(t *testing.T) {
	svc := NewMatchService(
		&fakeCompleter{reply: "85"},
		newFakeMatchRepo(),
		&fakeProfileRepo{},
		&fakeProductRepo{},
		testMatchingConfig(),
	)

	_, err := svc.GetMatch(context.Background(), "u1", "p1")

	assert.True(t, apperrors.IsPrecondition(err))
}

func TestGetMatch_UnknownProductNotFound(t *testing.T) {
	svc, _, _, _ := newMatchFixture("85")

	_, err := svc.GetMatch(context.Background(), "u1", "desconocido")

	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetMatch_NonNumericReplyFallsBackToNeutral(t *testing.T) {
	svc, _, _, _ := newMatchFixture("n/a")

	record, err := svc.GetMatch(context.Background(), "u1", "p1")

	require.NoError(t, err)
	assert.Equal(t, neutralMatchScore, record.Percentage)
}

func TestGetMatch_OutOfRangeReplyFallsBackToNeutral(t *testing.T) {
	svc, _, _, _ := newMatchFixture("137")

	record, err := svc.GetMatch(context.Background(), "u1", "p1")

	require.NoError(t, err)
	assert.Equal(t, neutralMatchScore, record.Percentage)
}

func TestGetMatch_CompletionOutageIsExternalError(t *testing.T) {
	svc, _, matches, _ := newMatchFixture("")
	svc.completer = &fakeCompleter{err: errors.New("model unreachable")}

	record, err := svc.GetMatch(context.Background(), "u1", "p1")

	assert.Nil(t, record)
	assert.True(t, apperrors.IsExternal(err))
	assert.Equal(t, 0, matches.upserts)
}

func TestGetMatch_RecomputesAfterOutageClears(t *testing.T) {
	svc, _, matches, _ := newMatchFixture("")
	svc.completer = &fakeCompleter{err: errors.New("model unreachable")}

	_, err := svc.GetMatch(context.Background(), "u1", "p1")
	require.Error(t, err)

	recovered := &fakeCompleter{reply: "90"}
	svc.completer = recovered

	record, err := svc.GetMatch(context.Background(), "u1", "p1")

	require.NoError(t, err)
	assert.Equal(t, 90, record.Percentage)
	assert.Equal(t, 1, recovered.callCount())
	assert.Equal(t, 1, matches.upserts)
}

func TestGetMatchBatch_OmitsProductsOnCompletionOutage(t *testing.T) {
	svc, _, _, _ := newMatchFixture("")
	svc.completer = &fakeCompleter{err: errors.New("model unreachable")}

	records, err := svc.GetMatchBatch(context.Background(), "u1", []string{"p1"})

	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetMatch_UpsertFailureStillReturnsRecord(t *testing.T) {
	svc, _, matches, _ := newMatchFixture("64")
	matches.upsertErr = errors.New("disk full")

	record, err := svc.GetMatch(context.Background(), "u1", "p1")

	require.NoError(t, err)
	assert.Equal(t, 64, record.Percentage)
}

func TestGetMatchBatch_OmitsFailedProducts(t *testing.T) {
	svc, _, _, products := newMatchFixture("77")
	products.byID["p2"] = &entities.Product{ID: "p2", Name: "Segundo"}

	records, err := svc.GetMatchBatch(context.Background(), "u1", []string{"p1", "p2", "desconocido"})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, 77, records["p1"].Percentage)
	assert.Equal(t, 77, records["p2"].Percentage)
	assert.NotContains(t, records, "desconocido")
}

func TestGetMatchBatch_EmptyInputReturnsEmptyMap(t *testing.T) {
	svc, completer, _, _ := newMatchFixture("77")

	records, err := svc.GetMatchBatch(context.Background(), "u1", nil)

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 0, completer.callCount())
}

func TestGetMatchBatch_ProfileCheckedOnce(t *testing.T) {
	svc := NewMatchService(
		&fakeCompleter{reply: "85"},
		newFakeMatchRepo(),
		&fakeProfileRepo{err: apperrors.NewInternalError("db down", nil)},
		&fakeProductRepo{},
		testMatchingConfig(),
	)

	_, err := svc.GetMatchBatch(context.Background(), "u1", []string{"p1", "p2"})

	assert.Error(t, err)
	assert.False(t, apperrors.IsPrecondition(err))
}

func TestParseMatchScore(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, 0, parseMatchScore(ctx, "0"))
	assert.Equal(t, 100, parseMatchScore(ctx, "100"))
	assert.Equal(t, 42, parseMatchScore(ctx, "  42\n"))
	assert.Equal(t, neutralMatchScore, parseMatchScore(ctx, "-5"))
	assert.Equal(t, neutralMatchScore, parseMatchScore(ctx, "ochenta"))
	assert.Equal(t, neutralMatchScore, parseMatchScore(ctx, "85%"))
}
