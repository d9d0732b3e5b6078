package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
)

const historyWriteTimeout = 5 * time.Second

// SearchHistoryService records executed searches for signed-in users. Writes
// are best-effort and asynchronous; history is an analytics input, never a
// dependency of the search response.
type SearchHistoryService struct {
	history repositories.SearchHistoryRepository
}

// NewSearchHistoryService creates a new search history service
func NewSearchHistoryService(history repositories.SearchHistoryRepository) *SearchHistoryService {
	return &SearchHistoryService{history: history}
}

// Record persists a search event in the background. Anonymous searches are
// dropped. The write runs on a fresh timeout context so it survives the
// request context being cancelled once the response is sent.
func (s *SearchHistoryService) Record(ctx context.Context, userID *string, query string, intent *entities.ParsedIntent, resultIDs []string) {
	if userID == nil || *userID == "" {
		return
	}

	event := &entities.SearchEvent{
		ID:        uuid.NewString(),
		UserID:    userID,
		Query:     query,
		ResultIDs: resultIDs,
		CreatedAt: time.Now(),
	}
	if intent != nil {
		event.Intent = *intent
	}

	logger := observability.LoggerFromContext(ctx)

	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), historyWriteTimeout)
		defer cancel()

		if err := s.history.Insert(writeCtx, event); err != nil {
			logger.Warn().
				Err(err).
				Str("user_id", *userID).
				Msg("failed to record search event")
		}
	}()
}

// ListByUser returns a user's most recent searches, newest first
func (s *SearchHistoryService) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.history.ListByUser(ctx, userID, limit)
}
