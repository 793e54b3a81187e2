package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/pet-service/internal/domain"
)

// EventLogRepository stores dispatched domain events for auditing.
type EventLogRepository interface {
	Append(ctx context.Context, event domain.Event) error
	ListByAggregate(ctx context.Context, aggregateID string) ([]domain.Event, error)
}

type eventLogRepository struct {
	pool *pgxpool.Pool
}

// NewEventLogRepository builds repository.
func NewEventLogRepository(pool *pgxpool.Pool) EventLogRepository {
	return &eventLogRepository{pool: pool}
}

func (r *eventLogRepository) Append(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return err
	}
	const query = `
        INSERT INTO domain_events (id, event_type, aggregate_id, payload, occurred_at)
        VALUES ($1,$2,$3,$4,$5)`
	_, err = r.pool.Exec(ctx, query,
		event.ID,
		string(event.Type),
		event.AggregateID,
		payload,
		event.OccurredAt,
	)
	return err
}

func (r *eventLogRepository) ListByAggregate(ctx context.Context, aggregateID string) ([]domain.Event, error) {
	const query = `
        SELECT id, event_type, aggregate_id, payload, occurred_at
        FROM domain_events WHERE aggregate_id=$1 ORDER BY occurred_at ASC`
	rows, err := r.pool.Query(ctx, query, aggregateID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Event
	for rows.Next() {
		var (
			event   domain.Event
			kind    string
			payload []byte
		)
		if err := rows.Scan(
			&event.ID,
			&kind,
			&event.AggregateID,
			&payload,
			&event.OccurredAt,
		); err != nil {
			return nil, err
		}
		event.Type = domain.EventType(kind)
		if len(payload) > 0 {
			var decoded map[string]any
			if err := json.Unmarshal(payload, &decoded); err != nil {
				return nil, err
			}
			event.Payload = decoded
		}
		result = append(result, event)
	}
	return result, rows.Err()
}
