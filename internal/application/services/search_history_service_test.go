package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esenciapy/backend/internal/domain/entities"
)

func waitForInsert(t *testing.T, repo *fakeHistoryRepo) {
	t.Helper()
	select {
	case <-repo.inserted:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for history insert")
	}
}

func TestRecord_PersistsEventForSignedInUser(t *testing.T) {
	repo := newFakeHistoryRepo()
	svc := NewSearchHistoryService(repo)

	intent := &entities.ParsedIntent{Gender: strptr(entities.GenderMujer)}
	svc.Record(context.Background(), strptr("u1"), "perfume floral", intent, []string{"p1", "p2"})
	waitForInsert(t, repo)

	events, err := repo.ListByUser(context.Background(), "u1", 10)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "perfume floral", events[0].Query)
	assert.Equal(t, []string{"p1", "p2"}, events[0].ResultIDs)
	assert.Equal(t, entities.GenderMujer, *events[0].Intent.Gender)
	assert.NotEmpty(t, events[0].ID)
}

func TestRecord_AnonymousSearchIsDropped(t *testing.T) {
	repo := newFakeHistoryRepo()
	svc := NewSearchHistoryService(repo)

	svc.Record(context.Background(), nil, "perfume floral", nil, []string{"p1"})
	svc.Record(context.Background(), strptr(""), "perfume floral", nil, []string{"p1"})

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 0, repo.eventCount())
}

func TestRecord_SurvivesCancelledRequestContext(t *testing.T) {
	repo := newFakeHistoryRepo()
	svc := NewSearchHistoryService(repo)

	ctx, cancel := context.WithCancel(context.Background())
	svc.Record(ctx, strptr("u1"), "perfume dulce", nil, nil)
	cancel()

	waitForInsert(t, repo)
	assert.Equal(t, 1, repo.eventCount())
}

func TestListByUser_DefaultsLimit(t *testing.T) {
	repo := newFakeHistoryRepo()
	svc := NewSearchHistoryService(repo)

	svc.Record(context.Background(), strptr("u1"), "uno", nil, nil)
	waitForInsert(t, repo)

	events, err := svc.ListByUser(context.Background(), "u1", 0)
	require.NoError(t, err)
	assert.Len(t, events, 1)
}
