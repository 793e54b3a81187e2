package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOwnershipHistoryFoldsTransfers(t *testing.T) {
	pet, err := NewPet("Biscuit", "user-c", "breed-1", GenderFemale)
	require.NoError(t, err)

	created := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)
	first := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	second := time.Date(2025, 2, 14, 8, 0, 0, 0, time.UTC)
	stream := []Event{
		{Type: EventPetCreated, AggregateID: pet.ID, OccurredAt: created,
			Payload: PetCreatedPayload{OwnerID: "user-a", BreedID: "breed-1", Name: "Biscuit"}},
		{Type: EventPetMorphologyUpdated, AggregateID: pet.ID, OccurredAt: created.Add(time.Hour)},
		{Type: EventPetOwnershipTransferred, AggregateID: pet.ID, OccurredAt: first,
			Payload: OwnershipTransferredPayload{OldOwnerID: "user-a", NewOwnerID: "user-b"}},
		{Type: EventPetOwnershipTransferred, AggregateID: "other-pet", OccurredAt: first,
			Payload: OwnershipTransferredPayload{OldOwnerID: "x", NewOwnerID: "y"}},
		{Type: EventPetOwnershipTransferred, AggregateID: pet.ID, OccurredAt: second,
			Payload: map[string]any{"old_owner_id": "user-b", "new_owner_id": "user-c"}},
	}

	history := BuildOwnershipHistory(pet, stream)

	require.Len(t, history.Records, 3)
	assert.Equal(t, "user-a", history.Records[0].OwnerID)
	assert.Equal(t, created, history.Records[0].StartDate)
	require.NotNil(t, history.Records[0].EndDate)
	assert.Equal(t, first, *history.Records[0].EndDate)

	assert.Equal(t, "user-b", history.Records[1].OwnerID)
	require.NotNil(t, history.Records[1].EndDate)
	assert.Equal(t, second, *history.Records[1].EndDate)

	assert.Equal(t, "user-c", history.Records[2].OwnerID)
	assert.True(t, history.Records[2].IsCurrent())

	owner, ok := history.CurrentOwner()
	require.True(t, ok)
	assert.Equal(t, "user-c", owner)

	assert.Equal(t, first.Sub(created), history.Records[0].Duration(time.Now()))
}

func TestBuildOwnershipHistoryWithoutStream(t *testing.T) {
	pet, err := NewPet("Biscuit", "user-a", "breed-1", GenderMale)
	require.NoError(t, err)

	history := BuildOwnershipHistory(pet, nil)

	require.Len(t, history.Records, 1)
	assert.Equal(t, "user-a", history.Records[0].OwnerID)
	assert.Equal(t, pet.CreatedAt, history.Records[0].StartDate)
	assert.True(t, history.Records[0].IsCurrent())
}

func TestBuildOwnershipHistoryTransfersOnlyStream(t *testing.T) {
	pet, err := NewPet("Biscuit", "user-b", "breed-1", GenderMale)
	require.NoError(t, err)

	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	stream := []Event{
		{Type: EventPetOwnershipTransferred, AggregateID: pet.ID, OccurredAt: at,
			Payload: OwnershipTransferredPayload{OldOwnerID: "user-a", NewOwnerID: "user-b"}},
	}

	history := BuildOwnershipHistory(pet, stream)

	require.Len(t, history.Records, 1)
	assert.Equal(t, "user-b", history.Records[0].OwnerID)
	assert.Equal(t, at, history.Records[0].StartDate)
	assert.True(t, history.Records[0].IsCurrent())
}
