package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/observability"
	"github.com/spec-kit/pet-service/internal/repository"
)

// AuditService persists every dispatched event to the audit log and keeps
// per-type counters.
type AuditService struct {
	dispatcher events.Dispatcher
	log        repository.EventLogRepository
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, log repository.EventLogRepository, metrics *observability.Metrics, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		log:        log,
		metrics:    metrics,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to the full event stream.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range domain.AllEventTypes() {
		a.dispatcher.Subscribe(eventType, a.handleEvent)
	}
}

// History returns the recorded events for an aggregate.
func (a *AuditService) History(ctx context.Context, aggregateID string) ([]domain.Event, error) {
	return a.log.ListByAggregate(ctx, aggregateID)
}

func (a *AuditService) handleEvent(ctx context.Context, event domain.Event) error {
	if a.metrics != nil {
		a.metrics.RecordEvent(string(event.Type))
	}
	if a.log == nil {
		return nil
	}
	if err := a.log.Append(ctx, event); err != nil {
		a.logger.Error("audit append failed",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	return nil
}
