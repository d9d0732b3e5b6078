package repositories

import (
	"context"

	"github.com/esenciapy/backend/internal/domain/entities"
)

// SearchHistoryRepository defines append-only persistence of search events
type SearchHistoryRepository interface {
	// Insert appends a search event
	Insert(ctx context.Context, event *entities.SearchEvent) error

	// ListByUser retrieves a user's most recent search events
	ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchEvent, error)
}
