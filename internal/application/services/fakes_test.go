package services

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/providers"
	"github.com/esenciapy/backend/internal/domain/repositories"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

type fakeCompleter struct {
	mu         sync.Mutex
	reply      string
	err        error
	calls      int
	lastPrompt string
	lastOpts   providers.CompletionOptions
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string, opts providers.CompletionOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastPrompt = prompt
	f.lastOpts = opts
	return f.reply, f.err
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeCache struct {
	mu    sync.Mutex
	store map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if data, ok := f.store[key]; ok {
		return data, nil
	}
	return nil, providers.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.store[key] = value
	return nil
}

type fakeFamilyRepo struct {
	families     []*entities.ScentFamily
	namesErr     error
	idsBySlugs   []string
	idsErr       error
	productIDs   []string
	productIDErr error
}

func (f *fakeFamilyRepo) ListAll(ctx context.Context) ([]*entities.ScentFamily, error) {
	return f.families, nil
}

func (f *fakeFamilyRepo) GetByNames(ctx context.Context, names []string) ([]*entities.ScentFamily, error) {
	if f.namesErr != nil {
		return nil, f.namesErr
	}
	lowered := map[string]struct{}{}
	for _, n := range names {
		lowered[strings.ToLower(n)] = struct{}{}
	}
	var out []*entities.ScentFamily
	for _, fam := range f.families {
		if _, ok := lowered[strings.ToLower(fam.Name)]; ok {
			out = append(out, fam)
		}
	}
	return out, nil
}

func (f *fakeFamilyRepo) GetIDsBySlugs(ctx context.Context, slugs []string) ([]string, error) {
	return f.idsBySlugs, f.idsErr
}

func (f *fakeFamilyRepo) GetProductIDsByFamilyIDs(ctx context.Context, familyIDs []string) ([]string, error) {
	return f.productIDs, f.productIDErr
}

type fakeProductRepo struct {
	mu         sync.Mutex
	byID       map[string]*entities.Product
	results    []*entities.Product
	total      int
	searchErr  error
	lastFilter *repositories.ProductFilter
	searches   int
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*entities.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		return p, nil
	}
	return nil, apperrors.NewNotFoundError("product not found")
}

func (f *fakeProductRepo) GetByIDs(ctx context.Context, ids []string) ([]*entities.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.Product
	for _, id := range ids {
		if p, ok := f.byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Search(ctx context.Context, filter repositories.ProductFilter) ([]*entities.Product, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	copied := filter
	f.lastFilter = &copied
	if f.searchErr != nil {
		return nil, 0, f.searchErr
	}
	return f.results, f.total, nil
}

func (f *fakeProductRepo) searchCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searches
}

type fakeSearchIndex struct {
	ids []string
	err error
}

func (f *fakeSearchIndex) Search(ctx context.Context, text string, limit int) ([]string, error) {
	return f.ids, f.err
}

func (f *fakeSearchIndex) Index(ctx context.Context, product *entities.Product) error { return nil }

func (f *fakeSearchIndex) Delete(ctx context.Context, id string) error { return nil }

type fakeMatchRepo struct {
	mu        sync.Mutex
	records   map[string]*entities.MatchRecord
	upsertErr error
	upserts   int
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{records: map[string]*entities.MatchRecord{}}
}

func matchKey(userID, productID string) string {
	return userID + "/" + productID
}

func (f *fakeMatchRepo) Get(ctx context.Context, userID, productID string) (*entities.MatchRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record, ok := f.records[matchKey(userID, productID)]; ok {
		return record, nil
	}
	return nil, apperrors.NewNotFoundError("match record not found")
}

func (f *fakeMatchRepo) Upsert(ctx context.Context, record *entities.MatchRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.records[matchKey(record.UserID, record.ProductID)] = record
	return nil
}

type fakeProfileRepo struct {
	profile *entities.UserPreferenceProfile
	err     error
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, userID string) (*entities.UserPreferenceProfile, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.profile == nil {
		return nil, apperrors.NewNotFoundError("profile not found")
	}
	return f.profile, nil
}

type fakeHistoryRepo struct {
	mu       sync.Mutex
	events   []*entities.SearchEvent
	insertEr error
	inserted chan struct{}
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{inserted: make(chan struct{}, 8)}
}

func (f *fakeHistoryRepo) Insert(ctx context.Context, event *entities.SearchEvent) error {
	f.mu.Lock()
	f.events = append(f.events, event)
	err := f.insertEr
	f.mu.Unlock()
	f.inserted <- struct{}{}
	return err
}

func (f *fakeHistoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entities.SearchEvent
	for _, e := range f.events {
		if e.UserID != nil && *e.UserID == userID {
			out = append(out, e)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeHistoryRepo) eventCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

func strptr(s string) *string { return &s }

func intptr(i int) *int { return &i }

func floatptr(f float64) *float64 { return &f }
