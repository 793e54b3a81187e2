package domain

import (
	"strings"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// Breed is reference data describing a species variant. Pets hold a
// reference to it, never an embedded copy.
type Breed struct {
	AggregateRoot

	Name        string              `json:"name"`
	Description *string             `json:"description,omitempty"`
	Thresholds  LifeStageThresholds `json:"thresholds"`
	Pictures    []Picture           `json:"pictures"`
}

// NewBreed constructs a breed with the generic life-stage table unless
// overridden later.
func NewBreed(name string, description *string) (*Breed, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("breed name required", nil)
	}
	breed := &Breed{
		AggregateRoot: newAggregateRoot(),
		Name:          name,
		Description:   description,
		Thresholds:    DefaultLifeStageThresholds(),
	}
	breed.record(EventBreedCreated, CatalogEntryPayload{Name: name})
	return breed, nil
}

// Update replaces name and description.
func (b *Breed) Update(name string, description *string) error {
	if err := b.ensureMutable("breed"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("breed name required", nil)
	}
	b.Name = name
	b.Description = description
	b.touch()
	b.record(EventBreedUpdated, CatalogEntryPayload{Name: name})
	return nil
}

// SetThresholds overrides the life-stage table. Boundaries must be
// positive and strictly increasing.
func (b *Breed) SetThresholds(t LifeStageThresholds) error {
	if err := b.ensureMutable("breed"); err != nil {
		return err
	}
	if t.AdultAfterYears <= 0 || t.PrimeAfterYears <= t.AdultAfterYears || t.SeniorAfterYears <= t.PrimeAfterYears {
		return apperrors.NewValidationError("life stage thresholds must be increasing", map[string]any{
			"adult_after_years":  t.AdultAfterYears,
			"prime_after_years":  t.PrimeAfterYears,
			"senior_after_years": t.SeniorAfterYears,
		})
	}
	b.Thresholds = t
	b.touch()
	return nil
}

// AddPicture appends to the picture collection.
func (b *Breed) AddPicture(picture Picture) error {
	if err := b.ensureMutable("breed"); err != nil {
		return err
	}
	b.Pictures = append(b.Pictures, picture)
	b.touch()
	return nil
}

// RemovePicture deletes a picture by id.
func (b *Breed) RemovePicture(pictureID string) error {
	if err := b.ensureMutable("breed"); err != nil {
		return err
	}
	idx := findPicture(b.Pictures, pictureID)
	if idx < 0 {
		return apperrors.NewNotFound("picture", map[string]any{"picture_id": pictureID})
	}
	b.Pictures = append(b.Pictures[:idx], b.Pictures[idx+1:]...)
	b.touch()
	return nil
}

// Delete soft-deletes the breed and records the event.
func (b *Breed) Delete() {
	if b.IsDeleted {
		return
	}
	b.MarkDeleted()
	b.record(EventBreedDeleted, CatalogEntryPayload{Name: b.Name})
}
