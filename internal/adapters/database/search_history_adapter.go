package database

import (
	"context"
	"encoding/json"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/esenciapy/backend/internal/domain/entities"
	"github.com/esenciapy/backend/internal/domain/repositories"
	"github.com/esenciapy/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/esenciapy/backend/pkg/errors"
)

// SearchHistoryAdapter implements SearchHistoryRepository
type SearchHistoryAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSearchHistoryAdapter creates a new search history adapter
func NewSearchHistoryAdapter(client *postgres.Client) repositories.SearchHistoryRepository {
	return &SearchHistoryAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Insert appends a search event
func (a *SearchHistoryAdapter) Insert(ctx context.Context, event *entities.SearchEvent) error {
	intent, err := json.Marshal(event.Intent)
	if err != nil {
		return apperrors.NewInternalError("failed to encode search intent", err)
	}

	record := goqu.Record{
		"id":         event.ID,
		"user_id":    event.UserID,
		"query":      event.Query,
		"intent":     intent,
		"result_ids": pq.Array(event.ResultIDs),
		"created_at": event.CreatedAt,
	}

	query, args, err := a.db.Insert("search_events").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert search event", err)
	}

	return nil
}

// ListByUser retrieves a user's most recent search events
func (a *SearchHistoryAdapter) ListByUser(ctx context.Context, userID string, limit int) ([]*entities.SearchEvent, error) {
	ds := a.db.Select("id", "user_id", "query", "intent", "result_ids", "created_at").
		From("search_events").
		Where(goqu.Ex{"user_id": userID}).
		Order(goqu.I("created_at").Desc())
	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list search events", err)
	}
	defer rows.Close()

	events := []*entities.SearchEvent{}
	for rows.Next() {
		event := &entities.SearchEvent{}
		var intent []byte

		err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Query,
			&intent,
			pq.Array(&event.ResultIDs),
			&event.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan search event", err)
		}

		if len(intent) > 0 {
			if err := json.Unmarshal(intent, &event.Intent); err != nil {
				return nil, apperrors.NewInternalError("failed to decode search intent", err)
			}
		}

		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("error iterating search events", err)
	}

	return events, nil
}
