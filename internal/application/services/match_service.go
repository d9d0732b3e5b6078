package services

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/providers"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
	"github.com/esenciapy/backend/pkg/config"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

const (
	matchTemperature = 0.3
	matchMaxTokens   = 8

	// neutralMatchScore is returned when the model reply is not a usable
	// integer; a shrug, not an endorsement
	neutralMatchScore = 50
)

var (
	matchCacheMetricsOnce sync.Once
	matchCacheHitCounter  metric.Int64Counter
	matchCacheMissCounter metric.Int64Counter
)

// MatchService computes user/product compatibility percentages via the
// language model and caches them in the match store. Scores are cheap to
// serve and expensive to compute, so cached records are reused until expiry.
type MatchService struct {
	completer providers.CompletionProvider
	matches   repositories.MatchRepository
	profiles  repositories.UserProfileRepository
	products  repositories.ProductRepository
	ttl       time.Duration

	// now is swappable for tests
	now func() time.Time
}

// NewMatchService creates a new match service
func NewMatchService(
	completer providers.CompletionProvider,
	matches repositories.MatchRepository,
	profiles repositories.UserProfileRepository,
	products repositories.ProductRepository,
	cfg *config.MatchingConfig,
) *MatchService {
	ttlDays := cfg.CacheTTLDays
	if ttlDays <= 0 {
		ttlDays = 7
	}

	return &MatchService{
		completer: completer,
		matches:   matches,
		profiles:  profiles,
		products:  products,
		ttl:       time.Duration(ttlDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

// GetMatch returns the compatibility record for a user and product, serving
// a fresh cached record when one exists and recomputing otherwise. An
// incomplete or missing preference profile is a precondition failure, not a
// computation error.
func (s *MatchService) GetMatch(ctx context.Context, userID, productID string) (*entities.MatchRecord, error) {
	if cached := s.freshRecord(ctx, userID, productID); cached != nil {
		return cached, nil
	}

	profile, err := s.completeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	product, err := s.products.GetByID(ctx, productID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, err
		}
		return nil, apperrors.NewInternalError("failed to load product for match", err)
	}

	return s.compute(ctx, profile, product)
}

// GetMatchBatch computes records for several products concurrently. Products
// whose computation fails are omitted from the result rather than failing the
// whole batch; the profile precondition is still checked once up front.
func (s *MatchService) GetMatchBatch(ctx context.Context, userID string, productIDs []string) (map[string]*entities.MatchRecord, error) {
	results := make(map[string]*entities.MatchRecord, len(productIDs))
	if len(productIDs) == 0 {
		return results, nil
	}

	profile, err := s.completeProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)

	for _, productID := range productIDs {
		wg.Add(1)
		go func(productID string) {
			defer wg.Done()

			record := s.freshRecord(ctx, userID, productID)
			if record == nil {
				product, err := s.products.GetByID(ctx, productID)
				if err != nil {
					observability.LoggerFromContext(ctx).Warn().
						Err(err).
						Str("product_id", productID).
						Msg("skipping product in match batch")
					return
				}
				record, err = s.compute(ctx, profile, product)
				if err != nil {
					observability.LoggerFromContext(ctx).Warn().
						Err(err).
						Str("product_id", productID).
						Msg("skipping product in match batch")
					return
				}
			}

			mu.Lock()
			results[productID] = record
			mu.Unlock()
		}(productID)
	}

	wg.Wait()
	return results, nil
}

// freshRecord returns the cached record when present and unexpired, nil
// otherwise. Cache read failures degrade to a recompute.
func (s *MatchService) freshRecord(ctx context.Context, userID, productID string) *entities.MatchRecord {
	record, err := s.matches.Get(ctx, userID, productID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			observability.LoggerFromContext(ctx).Warn().
				Err(err).
				Str("product_id", productID).
				Msg("match cache read failed, recomputing")
		}
		recordMatchCacheMiss(ctx)
		return nil
	}
	if record == nil || record.IsExpired(s.now()) {
		recordMatchCacheMiss(ctx)
		return nil
	}
	recordMatchCacheHit(ctx)
	return record
}

func (s *MatchService) completeProfile(ctx context.Context, userID string) (*entities.UserPreferenceProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.NewPreconditionError("preference profile not set up")
		}
		return nil, apperrors.NewInternalError("failed to load preference profile", err)
	}
	if !profile.IsComplete() {
		return nil, apperrors.NewPreconditionError("preference profile is incomplete")
	}
	return profile, nil
}

// compute scores the product against the profile and stores the result. A
// model outage is a hard failure so nothing gets cached and the next call
// retries; only an unusable reply from a live model collapses to the neutral
// score. A store write failure is logged and the record returned anyway; the
// caller asked for a score, not a durable cache entry.
func (s *MatchService) compute(ctx context.Context, profile *entities.UserPreferenceProfile, product *entities.Product) (*entities.MatchRecord, error) {
	raw, err := s.completer.Complete(ctx, buildMatchPrompt(profile, product), providers.CompletionOptions{
		MaxTokens:   matchMaxTokens,
		Temperature: matchTemperature,
	})
	if err != nil {
		return nil, apperrors.NewExternalError("match completion failed", err)
	}

	now := s.now()
	record := &entities.MatchRecord{
		ID:           uuid.NewString(),
		UserID:       profile.UserID,
		ProductID:    product.ID,
		Percentage:   parseMatchScore(ctx, raw),
		CalculatedAt: now,
		ExpiresAt:    now.Add(s.ttl),
	}

	if err := s.matches.Upsert(ctx, record); err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("product_id", product.ID).
			Msg("failed to persist match record")
	}

	return record, nil
}

// parseMatchScore extracts the 0-100 integer the scoring prompt demands.
// Anything else, including out-of-range numbers, collapses to the neutral
// score.
func parseMatchScore(ctx context.Context, raw string) int {
	cleaned := strings.TrimSpace(raw)
	score, err := strconv.Atoi(cleaned)
	if err != nil || score < 0 || score > 100 {
		observability.LoggerFromContext(ctx).Warn().
			Str("reply", cleaned).
			Msg("unusable match score reply, using neutral score")
		return neutralMatchScore
	}
	return score
}

func initMatchCacheMetrics() {
	meter := otel.Meter("github.com/esenciapy/backend/match_service")
	if counter, err := meter.Int64Counter(
		"match.cache_hit.count",
		metric.WithDescription("Count of match requests served from the score cache"),
	); err == nil {
		matchCacheHitCounter = counter
	}
	if counter, err := meter.Int64Counter(
		"match.cache_miss.count",
		metric.WithDescription("Count of match requests requiring a fresh computation"),
	); err == nil {
		matchCacheMissCounter = counter
	}
}

func recordMatchCacheHit(ctx context.Context) {
	matchCacheMetricsOnce.Do(initMatchCacheMetrics)
	if matchCacheHitCounter != nil {
		matchCacheHitCounter.Add(ctx, 1)
	}
}

func recordMatchCacheMiss(ctx context.Context) {
	matchCacheMetricsOnce.Do(initMatchCacheMetrics)
	if matchCacheMissCounter != nil {
		matchCacheMissCounter.Add(ctx, 1)
	}
}
