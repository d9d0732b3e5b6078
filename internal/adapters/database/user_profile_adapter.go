package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

// UserProfileAdapter implements UserProfileRepository
type UserProfileAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewUserProfileAdapter creates a new user profile adapter
func NewUserProfileAdapter(client *postgres.Client) repositories.UserProfileRepository {
	return &UserProfileAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByUserID retrieves a user's preference profile
func (a *UserProfileAdapter) GetByUserID(ctx context.Context, userID string) (*entities.UserPreferenceProfile, error) {
	query, args, err := a.db.Select(
		"user_id", "family_names", "intensity", "occasions", "climates",
		"completed", "updated_at",
	).From("user_preference_profiles").
		Where(goqu.Ex{"user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	profile := &entities.UserPreferenceProfile{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&profile.UserID,
		pq.Array(&profile.FamilyNames),
		&profile.Intensity,
		pq.Array(&profile.Occasions),
		pq.Array(&profile.Climates),
		&profile.Completed,
		&profile.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("preference profile for user %s not found", userID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get preference profile", err)
	}

	return profile, nil
}
