package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

func newTestPet(t *testing.T) *Pet {
	t.Helper()
	pet, err := NewPet("Rex", "owner-1", "breed-1", GenderMale)
	require.NoError(t, err)
	return pet
}

func TestNewPet(t *testing.T) {
	pet := newTestPet(t)

	assert.Equal(t, "Rex", pet.Name)
	assert.Equal(t, GenderMale, pet.Gender)
	events := pet.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventPetCreated, events[0].Type)

	_, err := NewPet("", "owner-1", "breed-1", GenderMale)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	_, err = NewPet("Rex", "", "breed-1", GenderMale)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	_, err = NewPet("Rex", "owner-1", "", GenderMale)
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))

	pet, err = NewPet("Mia", "owner-1", "breed-1", "")
	require.NoError(t, err)
	assert.Equal(t, GenderUnknown, pet.Gender)
}

func TestPetSetBirthDate(t *testing.T) {
	pet := newTestPet(t)

	err := pet.SetBirthDate(time.Now().Add(24 * time.Hour))
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
	assert.Nil(t, pet.BirthDate)

	birth := time.Now().AddDate(-2, 0, 0)
	require.NoError(t, pet.SetBirthDate(birth))
	require.NotNil(t, pet.BirthDate)
}

func TestPetChangeOwner(t *testing.T) {
	pet := newTestPet(t)
	pet.ClearDomainEvents()

	require.NoError(t, pet.ChangeOwner("owner-2"))
	assert.Equal(t, "owner-2", pet.OwnerID)

	events := pet.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventPetOwnershipTransferred, events[0].Type)
	payload, ok := events[0].Payload.(OwnershipTransferredPayload)
	require.True(t, ok)
	assert.Equal(t, "owner-1", payload.OldOwnerID)
	assert.Equal(t, "owner-2", payload.NewOwnerID)
}

func TestPetGeneMappings(t *testing.T) {
	pet := newTestPet(t)
	pet.ClearDomainEvents()

	require.NoError(t, pet.AddGeneMapping(NewMorphGeneMapping("gene-1", ZygosityHeterozygous, false)))

	err := pet.AddGeneMapping(NewMorphGeneMapping("gene-1", ZygosityHomozygous, true))
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))
	assert.Len(t, pet.GeneMappings, 1)

	mapping, found := pet.GeneMapping("gene-1")
	require.True(t, found)
	assert.Equal(t, ZygosityHeterozygous, mapping.Zygosity)

	err = pet.RemoveGeneMapping("gene-9")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	require.NoError(t, pet.RemoveGeneMapping("gene-1"))
	assert.Empty(t, pet.GeneMappings)

	events := pet.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventPetGeneMappingAdded, events[0].Type)
	assert.Equal(t, EventPetGeneMappingRemoved, events[1].Type)
}

func TestPetPictures(t *testing.T) {
	pet := newTestPet(t)

	first := NewPicture("https://img.example.com/1.jpg", PictureKindAvatar)
	second := NewPicture("https://img.example.com/2.jpg", "")
	require.NoError(t, pet.AddPicture(first))
	require.NoError(t, pet.AddPicture(second))

	require.Len(t, pet.Pictures, 2)
	assert.Equal(t, PictureKindGallery, pet.Pictures[1].Kind)

	err := pet.RemovePicture("missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	require.NoError(t, pet.RemovePicture(first.ID))
	require.Len(t, pet.Pictures, 1)
	assert.Equal(t, second.ID, pet.Pictures[0].ID)
}

func TestPetDeleteBlocksMutation(t *testing.T) {
	pet := newTestPet(t)
	pet.ClearDomainEvents()

	pet.Delete()
	require.True(t, pet.IsDeleted)
	require.Len(t, pet.DomainEvents(), 1)
	assert.Equal(t, EventPetDeleted, pet.DomainEvents()[0].Type)

	pet.Delete()
	assert.Len(t, pet.DomainEvents(), 1)

	err := pet.UpdateDetails("Max", nil)
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))
	err = pet.ChangeOwner("owner-3")
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))
}
