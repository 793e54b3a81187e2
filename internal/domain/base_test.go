package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

func TestAggregateRootEventAccumulation(t *testing.T) {
	root := AggregateRoot{Entity: newEntity()}

	root.record(EventBreedCreated, CatalogEntryPayload{Name: "first"})
	root.record(EventBreedUpdated, CatalogEntryPayload{Name: "second"})

	events := root.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventBreedCreated, events[0].Type)
	assert.Equal(t, EventBreedUpdated, events[1].Type)
	for _, event := range events {
		assert.NotEmpty(t, event.ID)
		assert.Equal(t, root.ID, event.AggregateID)
		assert.False(t, event.OccurredAt.IsZero())
	}

	assert.True(t, root.HasDomainEvents())
	root.ClearDomainEvents()
	assert.False(t, root.HasDomainEvents())
	assert.Empty(t, root.DomainEvents())
}

func TestDomainEventsReturnsCopy(t *testing.T) {
	root := AggregateRoot{Entity: newEntity()}
	root.record(EventBreedCreated, nil)

	events := root.DomainEvents()
	events[0].Type = EventBreedDeleted

	assert.Equal(t, EventBreedCreated, root.DomainEvents()[0].Type)
}

func TestMarkDeletedIsIdempotent(t *testing.T) {
	entity := newEntity()
	entity.MarkDeleted()
	require.True(t, entity.IsDeleted)
	entity.MarkDeleted()
	assert.True(t, entity.IsDeleted)
}

func TestEnsureMutableRejectsDeleted(t *testing.T) {
	entity := newEntity()
	require.NoError(t, entity.ensureMutable("thing"))

	entity.MarkDeleted()
	err := entity.ensureMutable("thing")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))
}
