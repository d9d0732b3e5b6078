package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

// MatchAdapter implements MatchRepository on the match_records table, which
// carries a UNIQUE(user_id, product_id) constraint the upsert conflicts on
type MatchAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMatchAdapter creates a new match adapter
func NewMatchAdapter(client *postgres.Client) repositories.MatchRepository {
	return &MatchAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Get retrieves the cached record for a (user, product) pair
func (a *MatchAdapter) Get(ctx context.Context, userID, productID string) (*entities.MatchRecord, error) {
	query, args, err := a.db.Select(
		"id", "user_id", "product_id", "percentage", "reasons",
		"calculated_at", "expires_at",
	).From("match_records").
		Where(goqu.Ex{"user_id": userID, "product_id": productID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	record := &entities.MatchRecord{}
	var reasons sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&record.UserID,
		&record.ProductID,
		&record.Percentage,
		&reasons,
		&record.CalculatedAt,
		&record.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no match record for user %s and product %s", userID, productID))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get match record", err)
	}

	record.Reasons = reasons.String
	return record, nil
}

// Upsert inserts or overwrites the record for its (user, product) pair.
// Last-write-wins on conflict; concurrent writers compute the same score
// from the same inputs so no locking is needed.
func (a *MatchAdapter) Upsert(ctx context.Context, record *entities.MatchRecord) error {
	row := goqu.Record{
		"id":            record.ID,
		"user_id":       record.UserID,
		"product_id":    record.ProductID,
		"percentage":    record.Percentage,
		"reasons":       sql.NullString{String: record.Reasons, Valid: record.Reasons != ""},
		"calculated_at": record.CalculatedAt,
		"expires_at":    record.ExpiresAt,
	}

	query, args, err := a.db.Insert("match_records").
		Rows(row).
		OnConflict(goqu.DoUpdate("user_id, product_id", goqu.Record{
			"percentage":    record.Percentage,
			"reasons":       sql.NullString{String: record.Reasons, Valid: record.Reasons != ""},
			"calculated_at": record.CalculatedAt,
			"expires_at":    record.ExpiresAt,
		})).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build upsert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to upsert match record", err)
	}

	return nil
}
