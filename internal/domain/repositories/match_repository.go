package repositories

import (
	"context"

	"github.com/esenciapy/backend/internal/domain/entities"
)

// MatchRepository defines the interface for the match score cache store.
// Records are keyed by (user, product); Upsert is last-write-wins, which is
// safe because concurrent writers compute the same score from the same inputs.
type MatchRepository interface {
	// Get retrieves the cached record for a (user, product) pair
	Get(ctx context.Context, userID, productID string) (*entities.MatchRecord, error)

	// Upsert inserts or overwrites the record for its (user, product) pair
	Upsert(ctx context.Context, record *entities.MatchRecord) error
}
