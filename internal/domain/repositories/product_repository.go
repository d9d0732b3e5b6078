package repositories

import (
	"context"

	"github.com/esenciapy/backend/internal/domain/entities"
)

// ProductRepository defines the interface for product catalog reads
type ProductRepository interface {
	// GetByID retrieves an active product by ID
	GetByID(ctx context.Context, id string) (*entities.Product, error)

	// GetByIDs retrieves multiple products by their IDs
	GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error)

	// Search retrieves products matching the filter along with the total
	// count of store-side matches (before any in-memory filtering)
	Search(ctx context.Context, filter ProductFilter) ([]*entities.Product, int, error)
}

// ProductFilter defines the store-native predicates for product queries.
// Empty/nil fields are not applied. ProductIDs distinguishes nil (no filter)
// from an empty slice (match nothing); callers must not conflate the two.
type ProductFilter struct {
	Text        string
	Gender      string
	Intensity   string
	Occasion    string
	Climate     string
	Event       string
	MinPrice    *float64
	MaxPrice    *float64
	BrandIDs    []string
	ProductIDs  []string
	IsActive    *bool
	SortByPrice string // "asc", "desc", or "" for recency-descending
	Limit       int
	Offset      int
}

// ProductSearchIndex defines the interface for the external free-text product
// index (e.g. Typesense). The catalog falls back to store-side substring
// matching when no index is available.
type ProductSearchIndex interface {
	// Search returns IDs of products whose name/brand/SKU match the text
	Search(ctx context.Context, text string, limit int) ([]string, error)

	// Index upserts a product document into the index
	Index(ctx context.Context, product *entities.Product) error

	// Delete removes a product from the index
	Delete(ctx context.Context, id string) error
}
