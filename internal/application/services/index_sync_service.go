package services

import (
	"context"
	"time"

	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/observability"
)

const indexSyncPageSize = 200

// IndexSyncService keeps the external search index in step with the product
// store by periodically re-indexing the active catalog. The catalog is small
// enough that a full sweep is cheaper than change tracking.
type IndexSyncService struct {
	products repositories.ProductRepository
	index    repositories.ProductSearchIndex
}

// NewIndexSyncService creates a new index sync service
func NewIndexSyncService(products repositories.ProductRepository, index repositories.ProductSearchIndex) *IndexSyncService {
	return &IndexSyncService{
		products: products,
		index:    index,
	}
}

// SyncAll upserts every active product into the index and removes the
// inactive ones, so deactivating a product also drops it from free-text
// search. Individual document failures are logged and skipped so one bad
// document cannot stall the sweep.
func (s *IndexSyncService) SyncAll(ctx context.Context) (int, error) {
	indexed, err := s.indexActive(ctx)
	if err != nil {
		return indexed, err
	}
	if err := s.removeInactive(ctx); err != nil {
		return indexed, err
	}
	return indexed, nil
}

func (s *IndexSyncService) indexActive(ctx context.Context) (int, error) {
	active := true
	indexed := 0

	for offset := 0; ; offset += indexSyncPageSize {
		products, _, err := s.products.Search(ctx, repositories.ProductFilter{
			IsActive: &active,
			Limit:    indexSyncPageSize,
			Offset:   offset,
		})
		if err != nil {
			return indexed, err
		}
		if len(products) == 0 {
			return indexed, nil
		}

		for _, product := range products {
			if err := s.index.Index(ctx, product); err != nil {
				observability.LoggerFromContext(ctx).Warn().
					Err(err).
					Str("product_id", product.ID).
					Msg("failed to index product")
				continue
			}
			indexed++
		}

		if len(products) < indexSyncPageSize {
			return indexed, nil
		}
	}
}

func (s *IndexSyncService) removeInactive(ctx context.Context) error {
	inactive := false

	for offset := 0; ; offset += indexSyncPageSize {
		products, _, err := s.products.Search(ctx, repositories.ProductFilter{
			IsActive: &inactive,
			Limit:    indexSyncPageSize,
			Offset:   offset,
		})
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return nil
		}

		for _, product := range products {
			if err := s.index.Delete(ctx, product.ID); err != nil {
				observability.LoggerFromContext(ctx).Warn().
					Err(err).
					Str("product_id", product.ID).
					Msg("failed to remove product from index")
			}
		}

		if len(products) < indexSyncPageSize {
			return nil
		}
	}
}

// StartPeriodicSync runs SyncAll on the given interval until ctx is cancelled
func (s *IndexSyncService) StartPeriodicSync(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		indexed, err := s.SyncAll(ctx)
		logger := observability.LoggerFromContext(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("index sync failed")
		} else {
			logger.Info().Int("indexed", indexed).Msg("index sync complete")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
