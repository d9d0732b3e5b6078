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

// BrandAdapter implements BrandRepository
type BrandAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewBrandAdapter creates a new brand adapter
func NewBrandAdapter(client *postgres.Client) repositories.BrandRepository {
	return &BrandAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// GetByID retrieves a brand by ID
func (a *BrandAdapter) GetByID(ctx context.Context, id string) (*entities.Brand, error) {
	query, args, err := a.db.Select("id", "name", "country", "is_active", "created_at", "updated_at").
		From("brands").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	brand := &entities.Brand{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&brand.ID,
		&brand.Name,
		&brand.Country,
		&brand.IsActive,
		&brand.CreatedAt,
		&brand.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("brand with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get brand", err)
	}

	return brand, nil
}

// ListActive retrieves all active brands
func (a *BrandAdapter) ListActive(ctx context.Context) ([]*entities.Brand, error) {
	query, args, err := a.db.Select("id", "name", "country", "is_active", "created_at", "updated_at").
		From("brands").
		Where(goqu.Ex{"is_active": true}).
		Order(goqu.I("name").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list brands", err)
	}
	defer rows.Close()

	brands := []*entities.Brand{}
	for rows.Next() {
		brand := &entities.Brand{}
		err := rows.Scan(
			&brand.ID,
			&brand.Name,
			&brand.Country,
			&brand.IsActive,
			&brand.CreatedAt,
			&brand.UpdatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan brand", err)
		}
		brands = append(brands, brand)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating brands", err)
	}

	return brands, nil
}
