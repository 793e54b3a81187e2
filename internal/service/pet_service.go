package service

import (
	"context"
	"time"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// PetService coordinates pet workflows. Cross-aggregate rules, such as
// morphology compatibility and ownership transfer, live here rather than
// on the entities.
type PetService struct {
	pets      repository.PetRepository
	users     repository.UserRepository
	breeds    repository.BreedRepository
	genes     repository.GeneRepository
	morphs    repository.MorphologyRepository
	log       repository.EventLogRepository
	publisher *events.Publisher
}

// PetDependencies bundles repositories for the pet service.
type PetDependencies struct {
	PetRepo        repository.PetRepository
	UserRepo       repository.UserRepository
	BreedRepo      repository.BreedRepository
	GeneRepo       repository.GeneRepository
	MorphologyRepo repository.MorphologyRepository
	EventLog       repository.EventLogRepository
	Publisher      *events.Publisher
}

// GeneMappingInput describes a gene attached at creation time.
type GeneMappingInput struct {
	GeneID   string
	Zygosity domain.Zygosity
	Required bool
}

// PetCreateInput describes pet creation payload.
type PetCreateInput struct {
	Name         string
	Description  *string
	BreedID      string
	Gender       domain.Gender
	BirthDate    *time.Time
	MorphologyID *string
	GeneMappings []GeneMappingInput
}

// PetListFilter describes listing filters.
type PetListFilter struct {
	OwnerID      *string
	BreedID      *string
	MorphologyID *string
	Gender       *domain.Gender
	Limit        int
	Offset       int
}

// PetAgeReport summarizes a pet's age against its breed's thresholds.
type PetAgeReport struct {
	Known           bool             `json:"known"`
	Years           int              `json:"years"`
	Months          int              `json:"months"`
	Stage           domain.LifeStage `json:"stage"`
	Formatted       string           `json:"formatted"`
	NextBirthday    *time.Time       `json:"next_birthday,omitempty"`
	IsBirthdayToday bool             `json:"is_birthday_today"`
}

// NewPetService constructs the service.
func NewPetService(deps PetDependencies) *PetService {
	return &PetService{
		pets:      deps.PetRepo,
		users:     deps.UserRepo,
		breeds:    deps.BreedRepo,
		genes:     deps.GeneRepo,
		morphs:    deps.MorphologyRepo,
		log:       deps.EventLog,
		publisher: deps.Publisher,
	}
}

// CreatePet validates references before building the aggregate: the owner
// must be active, the breed must exist, every mapped gene must exist and
// the morphology, when given, must be compatible with the mappings.
func (s *PetService) CreatePet(ctx context.Context, ownerID string, input PetCreateInput) (*domain.Pet, error) {
	owner, err := s.users.GetByID(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !owner.IsActive {
		return nil, apperrors.NewPolicyViolation("owner account is not active", map[string]any{"owner_id": ownerID})
	}
	if _, err := s.breeds.GetByID(ctx, input.BreedID); err != nil {
		return nil, apperrors.MapError(err)
	}

	pet, err := domain.NewPet(input.Name, ownerID, input.BreedID, input.Gender)
	if err != nil {
		return nil, err
	}
	if input.Description != nil {
		if err := pet.UpdateDetails(pet.Name, input.Description); err != nil {
			return nil, err
		}
	}
	if input.BirthDate != nil {
		if err := pet.SetBirthDate(*input.BirthDate); err != nil {
			return nil, err
		}
	}
	for _, mapping := range input.GeneMappings {
		if _, err := s.genes.GetByID(ctx, mapping.GeneID); err != nil {
			return nil, apperrors.MapError(err)
		}
		if err := pet.AddGeneMapping(domain.NewMorphGeneMapping(mapping.GeneID, mapping.Zygosity, mapping.Required)); err != nil {
			return nil, err
		}
	}
	if input.MorphologyID != nil {
		if err := s.checkMorphologyCompatibility(ctx, *input.MorphologyID, pet.GeneMappings); err != nil {
			return nil, err
		}
		if err := pet.UpdateMorphology(input.MorphologyID); err != nil {
			return nil, err
		}
	}

	if err := s.pets.Create(ctx, pet); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishAggregate(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// GetPet fetches a pet the actor is allowed to see.
func (s *PetService) GetPet(ctx context.Context, actor *domain.User, petID string) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessPet(actor, pet) {
		return nil, apperrors.NewForbidden("access denied")
	}
	return pet, nil
}

// ListPets returns pets matching the filter. Non-admin actors are scoped
// to their own pets.
func (s *PetService) ListPets(ctx context.Context, actor *domain.User, filter PetListFilter) ([]domain.Pet, error) {
	repoFilter := repository.PetFilter{
		OwnerID:      filter.OwnerID,
		BreedID:      filter.BreedID,
		MorphologyID: filter.MorphologyID,
		Gender:       filter.Gender,
		Limit:        filter.Limit,
		Offset:       filter.Offset,
	}
	if actor != nil && !actor.IsAdmin() {
		ownerID := actor.ID
		repoFilter.OwnerID = &ownerID
	}
	return s.pets.ListWithFilter(ctx, repoFilter)
}

// UpdateDetails changes name and description.
func (s *PetService) UpdateDetails(ctx context.Context, actor *domain.User, petID, name string, description *string) (*domain.Pet, error) {
	return s.mutate(ctx, actor, petID, func(pet *domain.Pet) error {
		return pet.UpdateDetails(name, description)
	})
}

// SetBirthDate records the birth date.
func (s *PetService) SetBirthDate(ctx context.Context, actor *domain.User, petID string, birthDate time.Time) (*domain.Pet, error) {
	return s.mutate(ctx, actor, petID, func(pet *domain.Pet) error {
		return pet.SetBirthDate(birthDate)
	})
}

// TransferOwnership moves the pet to another active account. Only the
// current owner may transfer, and never to themselves.
func (s *PetService) TransferOwnership(ctx context.Context, actor *domain.User, petID, newOwnerID string) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if actor == nil || pet.OwnerID != actor.ID {
		return nil, apperrors.NewForbidden("only the owner can transfer a pet")
	}
	if newOwnerID == pet.OwnerID {
		return nil, apperrors.NewPolicyViolation("pet already belongs to this owner", nil)
	}
	newOwner, err := s.users.GetByID(ctx, newOwnerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !newOwner.IsActive {
		return nil, apperrors.NewPolicyViolation("new owner account is not active", map[string]any{"owner_id": newOwnerID})
	}
	if err := pet.ChangeOwner(newOwnerID); err != nil {
		return nil, err
	}
	return s.save(ctx, pet)
}

// UpdateMorphology sets or clears the morphology reference after a
// compatibility check against the pet's gene mappings.
func (s *PetService) UpdateMorphology(ctx context.Context, actor *domain.User, petID string, morphologyID *string) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessPet(actor, pet) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if morphologyID != nil {
		if err := s.checkMorphologyCompatibility(ctx, *morphologyID, pet.GeneMappings); err != nil {
			return nil, err
		}
	}
	if err := pet.UpdateMorphology(morphologyID); err != nil {
		return nil, err
	}
	return s.save(ctx, pet)
}

// AddGeneMapping attaches a gene to the pet.
func (s *PetService) AddGeneMapping(ctx context.Context, actor *domain.User, petID string, input GeneMappingInput) (*domain.Pet, error) {
	if _, err := s.genes.GetByID(ctx, input.GeneID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.mutate(ctx, actor, petID, func(pet *domain.Pet) error {
		return pet.AddGeneMapping(domain.NewMorphGeneMapping(input.GeneID, input.Zygosity, input.Required))
	})
}

// RemoveGeneMapping detaches a gene from the pet.
func (s *PetService) RemoveGeneMapping(ctx context.Context, actor *domain.User, petID, geneID string) (*domain.Pet, error) {
	return s.mutate(ctx, actor, petID, func(pet *domain.Pet) error {
		return pet.RemoveGeneMapping(geneID)
	})
}

// AddPicture appends a picture to the pet's gallery.
func (s *PetService) AddPicture(ctx context.Context, actor *domain.User, petID, url string, kind domain.PictureKind) (*domain.Pet, error) {
	return s.mutate(ctx, actor, petID, func(pet *domain.Pet) error {
		return pet.AddPicture(domain.NewPicture(url, kind))
	})
}

// RemovePicture removes a picture by id.
func (s *PetService) RemovePicture(ctx context.Context, actor *domain.User, petID, pictureID string) (*domain.Pet, error) {
	return s.mutate(ctx, actor, petID, func(pet *domain.Pet) error {
		return pet.RemovePicture(pictureID)
	})
}

// Delete soft-deletes the pet.
func (s *PetService) Delete(ctx context.Context, actor *domain.User, petID string) error {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !canAccessPet(actor, pet) {
		return apperrors.NewForbidden("access denied")
	}
	pet.Delete()
	_, err = s.save(ctx, pet)
	return err
}

// AgeReport computes the pet's age using its breed's life-stage
// thresholds, falling back to the generic table when the breed is gone.
func (s *PetService) AgeReport(ctx context.Context, actor *domain.User, petID string) (*PetAgeReport, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessPet(actor, pet) {
		return nil, apperrors.NewForbidden("access denied")
	}

	thresholds := domain.DefaultLifeStageThresholds()
	if breed, err := s.breeds.GetByID(ctx, pet.BreedID); err == nil {
		thresholds = breed.Thresholds
	}

	age := pet.Age()
	report := &PetAgeReport{
		Known:           age.Known(),
		Stage:           age.Stage(thresholds),
		Formatted:       age.Formatted(),
		IsBirthdayToday: age.IsBirthdayToday(),
	}
	if years, ok := age.Years(); ok {
		report.Years = years
	}
	if months, ok := age.Months(); ok {
		report.Months = months
	}
	if next, ok := age.NextBirthday(); ok {
		report.NextBirthday = &next
	}
	return report, nil
}

// GeneticProfile joins the pet's gene mappings with catalog genes into a
// profile with an expression summary.
func (s *PetService) GeneticProfile(ctx context.Context, actor *domain.User, petID string) (*domain.GeneticProfile, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessPet(actor, pet) {
		return nil, apperrors.NewForbidden("access denied")
	}
	profile, err := s.buildProfile(ctx, pet)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// CompareGenetics reports the genetic compatibility of two pets. The
// actor must be allowed to see both sides of the pairing.
func (s *PetService) CompareGenetics(ctx context.Context, actor *domain.User, petID, otherID string) (*domain.GeneticCompatibility, error) {
	if petID == otherID {
		return nil, apperrors.NewPolicyViolation("cannot compare a pet with itself", nil)
	}
	left, err := s.GeneticProfile(ctx, actor, petID)
	if err != nil {
		return nil, err
	}
	right, err := s.GeneticProfile(ctx, actor, otherID)
	if err != nil {
		return nil, err
	}
	report := left.CompareWith(*right)
	return &report, nil
}

// OwnershipHistory folds the pet's audit stream into ownership tenures.
func (s *PetService) OwnershipHistory(ctx context.Context, actor *domain.User, petID string) (*domain.OwnershipHistory, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessPet(actor, pet) {
		return nil, apperrors.NewForbidden("access denied")
	}
	var stream []domain.Event
	if s.log != nil {
		if stream, err = s.log.ListByAggregate(ctx, petID); err != nil {
			return nil, apperrors.MapError(err)
		}
	}
	history := domain.BuildOwnershipHistory(pet, stream)
	return &history, nil
}

func (s *PetService) buildProfile(ctx context.Context, pet *domain.Pet) (*domain.GeneticProfile, error) {
	genes := make(map[string]*domain.Gene, len(pet.GeneMappings))
	for _, mapping := range pet.GeneMappings {
		if _, ok := genes[mapping.GeneID]; ok {
			continue
		}
		gene, err := s.genes.GetByID(ctx, mapping.GeneID)
		if err != nil {
			// a soft-deleted catalog gene drops out of the profile
			if apperrors.IsCode(apperrors.MapError(err), "NOT_FOUND") {
				continue
			}
			return nil, apperrors.MapError(err)
		}
		genes[mapping.GeneID] = gene
	}
	profile := domain.BuildGeneticProfile(pet, genes)
	return &profile, nil
}

func (s *PetService) checkMorphologyCompatibility(ctx context.Context, morphologyID string, mappings []domain.MorphGeneMapping) error {
	morph, err := s.morphs.GetByID(ctx, morphologyID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !morph.CompatibleWith(mappings) {
		return apperrors.NewPolicyViolation("morphology is not compatible with the pet's genes", map[string]any{
			"morphology_id": morphologyID,
		})
	}
	return nil
}

func (s *PetService) mutate(ctx context.Context, actor *domain.User, petID string, fn func(*domain.Pet) error) (*domain.Pet, error) {
	pet, err := s.pets.GetByID(ctx, petID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if !canAccessPet(actor, pet) {
		return nil, apperrors.NewForbidden("access denied")
	}
	if err := fn(pet); err != nil {
		return nil, err
	}
	return s.save(ctx, pet)
}

func (s *PetService) save(ctx context.Context, pet *domain.Pet) (*domain.Pet, error) {
	if err := s.pets.Update(ctx, pet); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.publisher.PublishAggregate(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

func canAccessPet(actor *domain.User, pet *domain.Pet) bool {
	if actor == nil {
		return false
	}
	if actor.IsAdmin() {
		return true
	}
	return pet.OwnerID == actor.ID
}
