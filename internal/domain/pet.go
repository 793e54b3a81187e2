package domain

import (
	"strings"
	"time"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// Pet is the aggregate for animals registered by users. Gene mappings and
// pictures live inside the aggregate boundary and only change through its
// methods.
type Pet struct {
	AggregateRoot

	Name         string             `json:"name"`
	Description  *string            `json:"description,omitempty"`
	BirthDate    *time.Time         `json:"birth_date,omitempty"`
	OwnerID      string             `json:"owner_id"`
	BreedID      string             `json:"breed_id"`
	Gender       Gender             `json:"gender"`
	MorphologyID *string            `json:"morphology_id,omitempty"`
	GeneMappings []MorphGeneMapping `json:"gene_mappings"`
	Pictures     []Picture          `json:"pictures"`
}

// NewPet constructs a pet and records the creation event. The owner
// reference is mandatory from the start.
func NewPet(name, ownerID, breedID string, gender Gender) (*Pet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("pet name required", nil)
	}
	if ownerID == "" {
		return nil, apperrors.NewValidationError("owner id required", nil)
	}
	if breedID == "" {
		return nil, apperrors.NewValidationError("breed id required", nil)
	}
	if gender == "" {
		gender = GenderUnknown
	}

	pet := &Pet{
		AggregateRoot: newAggregateRoot(),
		Name:          name,
		OwnerID:       ownerID,
		BreedID:       breedID,
		Gender:        gender,
	}
	pet.record(EventPetCreated, PetCreatedPayload{
		OwnerID: ownerID,
		BreedID: breedID,
		Name:    name,
	})
	return pet, nil
}

// SetBirthDate assigns the birth date, rejecting dates in the future.
func (p *Pet) SetBirthDate(date time.Time) error {
	if err := p.ensureMutable("pet"); err != nil {
		return err
	}
	if date.After(time.Now()) {
		return apperrors.NewValidationError("birth date cannot be in the future", map[string]any{"birth_date": date})
	}
	p.BirthDate = &date
	p.touch()
	return nil
}

// UpdateDetails replaces name and description.
func (p *Pet) UpdateDetails(name string, description *string) error {
	if err := p.ensureMutable("pet"); err != nil {
		return err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.NewValidationError("pet name required", nil)
	}
	p.Name = name
	p.Description = description
	p.touch()
	return nil
}

// ChangeOwner transfers the pet to a new owner and records the event.
func (p *Pet) ChangeOwner(newOwnerID string) error {
	if err := p.ensureMutable("pet"); err != nil {
		return err
	}
	if newOwnerID == "" {
		return apperrors.NewValidationError("owner id required", nil)
	}
	oldOwnerID := p.OwnerID
	p.OwnerID = newOwnerID
	p.touch()
	p.record(EventPetOwnershipTransferred, OwnershipTransferredPayload{
		OldOwnerID: oldOwnerID,
		NewOwnerID: newOwnerID,
	})
	return nil
}

// UpdateMorphology replaces the morphology reference; nil clears it.
func (p *Pet) UpdateMorphology(morphologyID *string) error {
	if err := p.ensureMutable("pet"); err != nil {
		return err
	}
	p.MorphologyID = morphologyID
	p.touch()
	p.record(EventPetMorphologyUpdated, MorphologyRefUpdatedPayload{MorphologyID: morphologyID})
	return nil
}

// AddGeneMapping appends a mapping, enforcing one mapping per gene id.
func (p *Pet) AddGeneMapping(mapping MorphGeneMapping) error {
	if err := p.ensureMutable("pet"); err != nil {
		return err
	}
	if findGeneMapping(p.GeneMappings, mapping.GeneID) >= 0 {
		return apperrors.NewConflict("gene already mapped", map[string]any{"gene_id": mapping.GeneID})
	}
	p.GeneMappings = append(p.GeneMappings, mapping)
	p.touch()
	p.record(EventPetGeneMappingAdded, GeneMappingPayload{
		GeneID:   mapping.GeneID,
		Zygosity: mapping.Zygosity,
	})
	return nil
}

// RemoveGeneMapping deletes the mapping for the given gene id.
func (p *Pet) RemoveGeneMapping(geneID string) error {
	if err := p.ensureMutable("pet"); err != nil {
		return err
	}
	idx := findGeneMapping(p.GeneMappings, geneID)
	if idx < 0 {
		return apperrors.NewNotFound("gene mapping", map[string]any{"gene_id": geneID})
	}
	p.GeneMappings = append(p.GeneMappings[:idx], p.GeneMappings[idx+1:]...)
	p.touch()
	p.record(EventPetGeneMappingRemoved, GeneMappingPayload{GeneID: geneID})
	return nil
}

// GeneMapping looks up the mapping for a gene id.
func (p *Pet) GeneMapping(geneID string) (MorphGeneMapping, bool) {
	idx := findGeneMapping(p.GeneMappings, geneID)
	if idx < 0 {
		return MorphGeneMapping{}, false
	}
	return p.GeneMappings[idx], true
}

// AddPicture appends a picture to the ordered collection.
func (p *Pet) AddPicture(picture Picture) error {
	if err := p.ensureMutable("pet"); err != nil {
		return err
	}
	p.Pictures = append(p.Pictures, picture)
	p.touch()
	return nil
}

// RemovePicture deletes a picture by id.
func (p *Pet) RemovePicture(pictureID string) error {
	if err := p.ensureMutable("pet"); err != nil {
		return err
	}
	idx := findPicture(p.Pictures, pictureID)
	if idx < 0 {
		return apperrors.NewNotFound("picture", map[string]any{"picture_id": pictureID})
	}
	p.Pictures = append(p.Pictures[:idx], p.Pictures[idx+1:]...)
	p.touch()
	return nil
}

// Delete soft-deletes the pet and records the event.
func (p *Pet) Delete() {
	if p.IsDeleted {
		return
	}
	p.MarkDeleted()
	p.record(EventPetDeleted, PetDeletedPayload{OwnerID: p.OwnerID})
}

// Age derives the age value object anchored at now.
func (p *Pet) Age() PetAge {
	return AgeFrom(p.BirthDate)
}

// AgeInYears returns the whole-year age; false when the birth date is
// unknown.
func (p *Pet) AgeInYears() (int, bool) {
	return p.Age().Years()
}

// AgeInMonths returns the calendar-month age.
func (p *Pet) AgeInMonths() (int, bool) {
	return p.Age().Months()
}

// LifeStage maps the age onto the breed's threshold table.
func (p *Pet) LifeStage(t LifeStageThresholds) LifeStage {
	return p.Age().Stage(t)
}

// IsPuppy reports whether the pet is below the adult threshold.
func (p *Pet) IsPuppy(t LifeStageThresholds) bool {
	return p.Age().IsPuppy(t)
}

// IsAdult reports whether the pet has reached the adult threshold.
func (p *Pet) IsAdult(t LifeStageThresholds) bool {
	return p.Age().IsAdult(t)
}

// IsSenior reports whether the pet has reached the senior threshold.
func (p *Pet) IsSenior(t LifeStageThresholds) bool {
	return p.Age().IsSenior(t)
}
