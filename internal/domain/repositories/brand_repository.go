package repositories

import (
	"context"

	"github.com/esenciapy/backend/internal/domain/entities"
)

// BrandRepository defines the interface for brand lookups
type BrandRepository interface {
	// GetByID retrieves a brand by ID
	GetByID(ctx context.Context, id string) (*entities.Brand, error)

	// ListActive retrieves all active brands
	ListActive(ctx context.Context) ([]*entities.Brand, error)
}
