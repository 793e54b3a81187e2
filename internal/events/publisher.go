package events

import (
	"context"

	"github.com/spec-kit/pet-service/internal/domain"
)

// Publisher drains aggregates into the dispatcher. It replaces the usual
// global event-bus singleton: an instance is constructed at wiring time and
// injected into the services that persist aggregates.
type Publisher struct {
	dispatcher Dispatcher
}

// NewPublisher constructs a publisher over the given dispatcher.
func NewPublisher(dispatcher Dispatcher) *Publisher {
	return &Publisher{dispatcher: dispatcher}
}

// PublishAggregate publishes the aggregate's pending events in append
// order, then clears them. Callers invoke it immediately after a
// successful save so events are never published for changes that failed to
// persist.
func (p *Publisher) PublishAggregate(ctx context.Context, aggregate domain.EventRecorder) error {
	if p == nil || p.dispatcher == nil || aggregate == nil {
		return nil
	}
	for _, event := range aggregate.DomainEvents() {
		if err := p.dispatcher.Publish(ctx, event); err != nil {
			return err
		}
	}
	aggregate.ClearDomainEvents()
	return nil
}

// PublishAggregates drains several aggregates in order.
func (p *Publisher) PublishAggregates(ctx context.Context, aggregates ...domain.EventRecorder) error {
	for _, aggregate := range aggregates {
		if err := p.PublishAggregate(ctx, aggregate); err != nil {
			return err
		}
	}
	return nil
}

// PublishEvent forwards a single event directly.
func (p *Publisher) PublishEvent(ctx context.Context, event domain.Event) error {
	if p == nil || p.dispatcher == nil {
		return nil
	}
	return p.dispatcher.Publish(ctx, event)
}
