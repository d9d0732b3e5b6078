package database

import (
	"context"
	"strings"

	"github.com/doug-martin/goqu/v9"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

// ScentFamilyAdapter implements ScentFamilyRepository
type ScentFamilyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewScentFamilyAdapter creates a new scent family adapter
func NewScentFamilyAdapter(client *postgres.Client) repositories.ScentFamilyRepository {
	return &ScentFamilyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// ListAll retrieves the full family catalog
func (a *ScentFamilyAdapter) ListAll(ctx context.Context) ([]*entities.ScentFamily, error) {
	return a.list(ctx, nil)
}

// GetByNames retrieves families by display name, case-insensitive
func (a *ScentFamilyAdapter) GetByNames(ctx context.Context, names []string) ([]*entities.ScentFamily, error) {
	if len(names) == 0 {
		return []*entities.ScentFamily{}, nil
	}

	lowered := make([]string, len(names))
	for i, n := range names {
		lowered[i] = strings.ToLower(strings.TrimSpace(n))
	}

	return a.list(ctx, goqu.L("LOWER(name)").In(lowered))
}

// GetIDsBySlugs resolves family slugs to family IDs
func (a *ScentFamilyAdapter) GetIDsBySlugs(ctx context.Context, slugs []string) ([]string, error) {
	if len(slugs) == 0 {
		return []string{}, nil
	}

	query, args, err := a.db.Select("id").
		From("scent_families").
		Where(goqu.Ex{"slug": slugs}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.scanIDs(ctx, query, args, "failed to get family ids")
}

// GetProductIDsByFamilyIDs resolves family IDs to product IDs via the join table
func (a *ScentFamilyAdapter) GetProductIDsByFamilyIDs(ctx context.Context, familyIDs []string) ([]string, error) {
	if len(familyIDs) == 0 {
		return []string{}, nil
	}

	query, args, err := a.db.Select(goqu.DISTINCT("product_id")).
		From("product_scent_families").
		Where(goqu.Ex{"family_id": familyIDs}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	return a.scanIDs(ctx, query, args, "failed to get product ids by family")
}

func (a *ScentFamilyAdapter) list(ctx context.Context, where goqu.Expression) ([]*entities.ScentFamily, error) {
	ds := a.db.Select("id", "name", "slug", "created_at").
		From("scent_families").
		Order(goqu.I("name").Asc())
	if where != nil {
		ds = ds.Where(where)
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list scent families", err)
	}
	defer rows.Close()

	families := []*entities.ScentFamily{}
	for rows.Next() {
		family := &entities.ScentFamily{}
		if err := rows.Scan(&family.ID, &family.Name, &family.Slug, &family.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan scent family", err)
		}
		families = append(families, family)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating scent families", err)
	}

	return families, nil
}

func (a *ScentFamilyAdapter) scanIDs(ctx context.Context, query string, args []interface{}, errMsg string) ([]string, error) {
	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError(errMsg, err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, apperrors.NewInternalError(errMsg, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError(errMsg, err)
	}

	return ids, nil
}
