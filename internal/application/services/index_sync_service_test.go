package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
)

type recordingIndex struct {
	mu      sync.Mutex
	indexed []string
	deleted []string
	failFor map[string]error
}

func (r *recordingIndex) Search(ctx context.Context, text string, limit int) ([]string, error) {
	return nil, nil
}

func (r *recordingIndex) Index(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failFor[product.ID]; ok {
		return err
	}
	r.indexed = append(r.indexed, product.ID)
	return nil
}

func (r *recordingIndex) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, id)
	return nil
}

type pagingProductRepo struct {
	fakeProductRepo
	all []*entities.Product
}

func (p *pagingProductRepo) Search(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, int, error) {
	matching := []*entities.Product{}
	for _, product := range p.all {
		if filter.IsActive != nil && product.IsActive != *filter.IsActive {
			continue
		}
		matching = append(matching, product)
	}

	start := filter.Offset
	if start >= len(matching) {
		return nil, len(matching), nil
	}
	end := start + filter.Limit
	if end > len(matching) {
		end = len(matching)
	}
	return matching[start:end], len(matching), nil
}

func TestSyncAll_IndexesEveryActiveProduct(t *testing.T) {
	products := &pagingProductRepo{all: []*entities.Product{
		{ID: "p1", IsActive: true}, {ID: "p2", IsActive: true}, {ID: "p3", IsActive: true},
	}}
	index := &recordingIndex{}
	svc := NewIndexSyncService(products, index)

	indexed, err := svc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, indexed)
	assert.Equal(t, []string{"p1", "p2", "p3"}, index.indexed)
}

func TestSyncAll_SkipsFailedDocuments(t *testing.T) {
	products := &pagingProductRepo{all: []*entities.Product{
		{ID: "p1", IsActive: true}, {ID: "p2", IsActive: true},
	}}
	index := &recordingIndex{failFor: map[string]error{"p1": errors.New("bad document")}}
	svc := NewIndexSyncService(products, index)

	indexed, err := svc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, indexed)
	assert.Equal(t, []string{"p2"}, index.indexed)
}

func TestSyncAll_RemovesInactiveProductsFromIndex(t *testing.T) {
	products := &pagingProductRepo{all: []*entities.Product{
		{ID: "p1", IsActive: true},
		{ID: "p2", IsActive: false},
		{ID: "p3", IsActive: false},
	}}
	index := &recordingIndex{}
	svc := NewIndexSyncService(products, index)

	indexed, err := svc.SyncAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, indexed)
	assert.Equal(t, []string{"p1"}, index.indexed)
	assert.Equal(t, []string{"p2", "p3"}, index.deleted)
}
