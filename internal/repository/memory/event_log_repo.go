package memory

import (
	"context"
	"sync"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/repository"
)

type eventLogRepo struct {
	mu      sync.RWMutex
	entries []domain.Event
}

// NewEventLogRepo builds an empty in-memory event log.
func NewEventLogRepo() repository.EventLogRepository {
	return &eventLogRepo{}
}

func (r *eventLogRepo) Append(ctx context.Context, event domain.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, event)
	return nil
}

func (r *eventLogRepo) ListByAggregate(ctx context.Context, aggregateID string) ([]domain.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Event, 0)
	for _, event := range r.entries {
		if event.AggregateID == aggregateID {
			out = append(out, event)
		}
	}
	return out, nil
}
