package repositories

import (
	"context"

	"github.com/esenciapy/backend/internal/domain/entities"
)

// UserProfileRepository defines read access to user preference profiles
type UserProfileRepository interface {
	// GetByUserID retrieves a user's preference profile
	GetByUserID(ctx context.Context, userID string) (*entities.UserPreferenceProfile, error)
}
