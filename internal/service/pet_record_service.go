package service

import (
	"context"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// PetRecordService manages the care log of a pet: feedings, weighings,
// health observations and the rest. Access follows the pet itself, so
// the owner and admins can read and write records.
type PetRecordService struct {
	records   repository.PetRecordRepository
	pets      repository.PetRepository
	publisher *events.Publisher
}

// PetRecordDependencies bundles requirements for the record service.
type PetRecordDependencies struct {
	RecordRepo repository.PetRecordRepository
	PetRepo    repository.PetRepository
	Publisher  *events.Publisher
}

// PetRecordInput describes a record create/update payload.
type PetRecordInput struct {
	RecordType domain.RecordType
	Data       domain.RecordData
	Notes      *string
}

// PetRecordListFilter narrows record listings.
type PetRecordListFilter struct {
	RecordType *domain.RecordType
	Limit      int
	Offset     int
}

// NewPetRecordService constructs the service.
func NewPetRecordService(deps PetRecordDependencies) *PetRecordService {
	return &PetRecordService{
		records:   deps.RecordRepo,
		pets:      deps.PetRepo,
		publisher: deps.Publisher,
	}
}

// Create appends a care record to the pet's log.
func (s *PetRecordService) Create(ctx context.Context, actor *domain.User, petID string, input PetRecordInput) (*domain.PetRecord, error) {
	if _, err := s.loadPet(ctx, actor, petID); err != nil {
		return nil, err
	}
	record, err := domain.NewPetRecord(petID, actor.ID, input.RecordType, input.Data, input.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.records.Create(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.publisher.PublishAggregate(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

// Get returns a single record from the pet's log.
func (s *PetRecordService) Get(ctx context.Context, actor *domain.User, petID, recordID string) (*domain.PetRecord, error) {
	if _, err := s.loadPet(ctx, actor, petID); err != nil {
		return nil, err
	}
	return s.loadRecord(ctx, petID, recordID)
}

// List returns the pet's records, newest first.
func (s *PetRecordService) List(ctx context.Context, actor *domain.User, petID string, filter PetRecordListFilter) ([]domain.PetRecord, error) {
	if _, err := s.loadPet(ctx, actor, petID); err != nil {
		return nil, err
	}
	return s.records.ListByPet(ctx, petID, repository.PetRecordFilter{
		RecordType: filter.RecordType,
		Limit:      filter.Limit,
		Offset:     filter.Offset,
	})
}

// Update replaces a record's data and notes.
func (s *PetRecordService) Update(ctx context.Context, actor *domain.User, petID, recordID string, input PetRecordInput) (*domain.PetRecord, error) {
	if _, err := s.loadPet(ctx, actor, petID); err != nil {
		return nil, err
	}
	record, err := s.loadRecord(ctx, petID, recordID)
	if err != nil {
		return nil, err
	}
	if err := record.Update(input.Data, input.Notes); err != nil {
		return nil, err
	}
	return s.save(ctx, record)
}

// Delete soft-deletes a record.
func (s *PetRecordService) Delete(ctx context.Context, actor *domain.User, petID, recordID string) error {
	if _, err := s.loadPet(ctx, actor, petID); err != nil {
		return err
	}
	record, err := s.loadRecord(ctx, petID, recordID)
	if err != nil {
		return err
	}
	record.Delete()
	_, err = s.save(ctx, record)
	return err
}

func (s *PetRecordService) loadPet(ctx context.Context, actor *domain.User, petID string) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessPet(actor, pet) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return pet, nil
}

// loadRecord hides records of other pets behind a not-found so record ids
// do not leak across pets.
func (s *PetRecordService) loadRecord(ctx context.Context, petID, recordID string) (*domain.PetRecord, error) {
	record, err := s.records.GetByID(ctx, recordID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if record.PetID != petID {
		return nil, apperrors.NewNotFound("pet record", nil)
	}
	return record, nil
}

func (s *PetRecordService) save(ctx context.Context, record *domain.PetRecord) (*domain.PetRecord, error) {
	if err := s.records.Update(ctx, record); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.publisher.PublishAggregate(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}
