package domain

import (
	"time"

	"github.com/google/uuid"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// Entity carries identity, soft-delete state and timestamp bookkeeping
// shared by every domain object.
type Entity struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IsDeleted bool      `json:"is_deleted"`
}

// newEntity assigns identity and initial timestamps.
func newEntity() Entity {
	now := time.Now()
	return Entity{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MarkDeleted soft-deletes the entity. Calling it twice is a no-op.
func (e *Entity) MarkDeleted() {
	e.IsDeleted = true
	e.touch()
}

// touch refreshes UpdatedAt; every mutating method must call it.
func (e *Entity) touch() {
	e.UpdatedAt = time.Now()
}

// ensureMutable rejects business mutations on soft-deleted entities.
func (e *Entity) ensureMutable(what string) error {
	if e.IsDeleted {
		return apperrors.NewPolicyViolation(what+" is deleted", map[string]any{"id": e.ID})
	}
	return nil
}

// AggregateRoot owns a consistency boundary and accumulates domain events
// on behalf of itself and the entities it contains. The pending sequence is
// transient: it is never persisted and is cleared by the publishing
// collaborator after a successful save.
type AggregateRoot struct {
	Entity

	pendingEvents []Event
}

func newAggregateRoot() AggregateRoot {
	return AggregateRoot{Entity: newEntity()}
}

// AddDomainEvent appends an event to the pending sequence, filling in
// identity and timestamp when the caller left them blank.
func (a *AggregateRoot) AddDomainEvent(event Event) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if event.AggregateID == "" {
		event.AggregateID = a.ID
	}
	a.pendingEvents = append(a.pendingEvents, event)
}

// record builds an event for this aggregate and appends it.
func (a *AggregateRoot) record(eventType EventType, payload any) {
	a.AddDomainEvent(Event{Type: eventType, AggregateID: a.ID, Payload: payload})
}

// DomainEvents returns the pending events in append order without clearing
// them.
func (a *AggregateRoot) DomainEvents() []Event {
	out := make([]Event, len(a.pendingEvents))
	copy(out, a.pendingEvents)
	return out
}

// HasDomainEvents reports whether any events await publication.
func (a *AggregateRoot) HasDomainEvents() bool {
	return len(a.pendingEvents) > 0
}

// ClearDomainEvents empties the pending sequence. Intended for the
// publishing collaborator, immediately after a successful save.
func (a *AggregateRoot) ClearDomainEvents() {
	a.pendingEvents = nil
}

// EventRecorder is the surface the event publisher needs from an aggregate.
type EventRecorder interface {
	DomainEvents() []Event
	ClearDomainEvents()
}
