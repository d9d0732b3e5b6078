package repositories

import (
	"context"

	"github.com/esenciapy/backend/internal/domain/entities"
)

// ScentFamilyRepository defines the interface for scent family lookups
type ScentFamilyRepository interface {
	// ListAll retrieves the full family catalog
	ListAll(ctx context.Context) ([]*entities.ScentFamily, error)

	// GetByNames retrieves families whose display name matches any of the
	// given names (case-insensitive exact match). Missing names are simply
	// absent from the result.
	GetByNames(ctx context.Context, names []string) ([]*entities.ScentFamily, error)

	// GetIDsBySlugs resolves family slugs to family IDs
	GetIDsBySlugs(ctx context.Context, slugs []string) ([]string, error)

	// GetProductIDsByFamilyIDs resolves family IDs to product IDs via the
	// product↔family join table
	GetProductIDsByFamilyIDs(ctx context.Context, familyIDs []string) ([]string, error)
}
