package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository/memory"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

type petFixture struct {
	pets    *PetService
	users   *UserService
	catalog *CatalogService
	records *PetRecordService
	rec     *eventRecorder

	owner *domain.User
	admin *domain.User
	breed *domain.Breed
}

func newPetFixture(t *testing.T) *petFixture {
	t.Helper()
	ctx := context.Background()

	dispatcher := events.NewInMemoryDispatcher()
	rec := newEventRecorder(dispatcher)
	publisher := events.NewPublisher(dispatcher)

	userRepo := memory.NewUserRepo()
	petRepo := memory.NewPetRepo()
	breedRepo := memory.NewBreedRepo()
	geneRepo := memory.NewGeneRepo()
	morphRepo := memory.NewMorphologyRepo()
	logRepo := memory.NewEventLogRepo()

	audit := NewAuditService(dispatcher, logRepo, nil, zap.NewNop())
	audit.RegisterHandlers()

	users := NewUserService(UserDependencies{
		UserRepo:  userRepo,
		Hasher:    plainHasher{},
		Publisher: publisher,
	})
	catalog := NewCatalogService(CatalogDependencies{
		BreedRepo:      breedRepo,
		GeneRepo:       geneRepo,
		MorphologyRepo: morphRepo,
		Publisher:      publisher,
	})
	pets := NewPetService(PetDependencies{
		PetRepo:        petRepo,
		UserRepo:       userRepo,
		BreedRepo:      breedRepo,
		GeneRepo:       geneRepo,
		MorphologyRepo: morphRepo,
		EventLog:       logRepo,
		Publisher:      publisher,
	})
	records := NewPetRecordService(PetRecordDependencies{
		RecordRepo: memory.NewPetRecordRepo(),
		PetRepo:    petRepo,
		Publisher:  publisher,
	})

	owner := registerUser(t, users, "casey_r", "casey@example.com")
	admin, err := users.Register(ctx, UserRegisterInput{
		Username: "root_admin",
		Email:    "admin@example.com",
		Password: "Sup3rSecret",
		Role:     domain.RoleAdmin,
	})
	require.NoError(t, err)

	breed, err := catalog.CreateBreed(ctx, BreedInput{Name: "Holland Lop"})
	require.NoError(t, err)

	rec.reset()
	return &petFixture{
		pets:    pets,
		users:   users,
		catalog: catalog,
		records: records,
		rec:     rec,
		owner:   owner,
		admin:   admin,
		breed:   breed,
	}
}

func (f *petFixture) createPet(t *testing.T, input PetCreateInput) *domain.Pet {
	t.Helper()
	if input.BreedID == "" {
		input.BreedID = f.breed.ID
	}
	pet, err := f.pets.CreatePet(context.Background(), f.owner.ID, input)
	require.NoError(t, err)
	return pet
}

func TestPetServiceCreatePet(t *testing.T) {
	f := newPetFixture(t)

	pet := f.createPet(t, PetCreateInput{Name: "Rex", Gender: domain.GenderMale})
	assert.Equal(t, f.owner.ID, pet.OwnerID)
	assert.Equal(t, f.breed.ID, pet.BreedID)
	assert.Equal(t, []domain.EventType{domain.EventPetCreated}, f.rec.types())
	assert.Empty(t, pet.DomainEvents())
}

func TestPetServiceCreatePetValidatesReferences(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	_, err := f.pets.CreatePet(ctx, "missing-owner", PetCreateInput{Name: "Rex", BreedID: f.breed.ID})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, err = f.pets.CreatePet(ctx, f.owner.ID, PetCreateInput{Name: "Rex", BreedID: "missing-breed"})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	_, err = f.pets.CreatePet(ctx, f.owner.ID, PetCreateInput{
		Name:    "Rex",
		BreedID: f.breed.ID,
		GeneMappings: []GeneMappingInput{
			{GeneID: "missing-gene", Zygosity: domain.ZygosityHeterozygous},
		},
	})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	assert.Empty(t, f.rec.events, "failed creations must publish nothing")
}

func TestPetServiceCreatePetRejectsInactiveOwner(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	_, err := f.users.Deactivate(ctx, f.owner.ID)
	require.NoError(t, err)

	_, err = f.pets.CreatePet(ctx, f.owner.ID, PetCreateInput{Name: "Rex", BreedID: f.breed.ID})
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))
}

func TestPetServiceAccessControl(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	pet := f.createPet(t, PetCreateInput{Name: "Rex"})
	stranger := registerUser(t, f.users, "jordan_p", "jordan@example.com")

	_, err := f.pets.GetPet(ctx, stranger, pet.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))

	got, err := f.pets.GetPet(ctx, f.owner, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, got.ID)

	got, err = f.pets.GetPet(ctx, f.admin, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, pet.ID, got.ID)

	_, err = f.pets.GetPet(ctx, nil, pet.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestPetServiceListScopesNonAdmins(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	f.createPet(t, PetCreateInput{Name: "Rex"})
	f.createPet(t, PetCreateInput{Name: "Biscuit"})

	other := registerUser(t, f.users, "jordan_p", "jordan@example.com")
	_, err := f.pets.CreatePet(ctx, other.ID, PetCreateInput{Name: "Clover", BreedID: f.breed.ID})
	require.NoError(t, err)

	mine, err := f.pets.ListPets(ctx, f.owner, PetListFilter{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	all, err := f.pets.ListPets(ctx, f.admin, PetListFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	// An admin can still narrow to one owner.
	ownerID := other.ID
	scoped, err := f.pets.ListPets(ctx, f.admin, PetListFilter{OwnerID: &ownerID})
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, "Clover", scoped[0].Name)
}

func TestPetServiceTransferOwnership(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	pet := f.createPet(t, PetCreateInput{Name: "Rex"})
	recipient := registerUser(t, f.users, "jordan_p", "jordan@example.com")
	f.rec.reset()

	_, err := f.pets.TransferOwnership(ctx, f.admin, pet.ID, recipient.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"), "even admins cannot transfer pets they do not own")

	_, err = f.pets.TransferOwnership(ctx, f.owner, pet.ID, f.owner.ID)
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))

	_, err = f.users.Deactivate(ctx, recipient.ID)
	require.NoError(t, err)
	_, err = f.pets.TransferOwnership(ctx, f.owner, pet.ID, recipient.ID)
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))

	_, err = f.users.Activate(ctx, recipient.ID)
	require.NoError(t, err)
	f.rec.reset()

	moved, err := f.pets.TransferOwnership(ctx, f.owner, pet.ID, recipient.ID)
	require.NoError(t, err)
	assert.Equal(t, recipient.ID, moved.OwnerID)
	assert.Equal(t, []domain.EventType{domain.EventPetOwnershipTransferred}, f.rec.types())

	// The previous owner lost access.
	_, err = f.pets.GetPet(ctx, f.owner, pet.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestPetServiceMorphologyCompatibility(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	gene, err := f.catalog.CreateGene(ctx, GeneInput{Name: "Albino", InheritanceType: domain.InheritanceRecessive})
	require.NoError(t, err)
	morph, err := f.catalog.CreateMorphology(ctx, MorphologyInput{Name: "Albino"})
	require.NoError(t, err)
	_, err = f.catalog.AddMorphologyGene(ctx, morph.ID, GeneMappingInput{
		GeneID:   gene.ID,
		Zygosity: domain.ZygosityHomozygous,
		Required: true,
	})
	require.NoError(t, err)

	pet := f.createPet(t, PetCreateInput{Name: "Rex"})

	morphID := morph.ID
	_, err = f.pets.UpdateMorphology(ctx, f.owner, pet.ID, &morphID)
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))

	_, err = f.pets.AddGeneMapping(ctx, f.owner, pet.ID, GeneMappingInput{
		GeneID:   gene.ID,
		Zygosity: domain.ZygosityHomozygous,
	})
	require.NoError(t, err)

	updated, err := f.pets.UpdateMorphology(ctx, f.owner, pet.ID, &morphID)
	require.NoError(t, err)
	require.NotNil(t, updated.MorphologyID)
	assert.Equal(t, morph.ID, *updated.MorphologyID)

	// Clearing the morphology needs no compatibility check.
	cleared, err := f.pets.UpdateMorphology(ctx, f.owner, pet.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, cleared.MorphologyID)
}

func TestPetServiceGeneMappings(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	gene, err := f.catalog.CreateGene(ctx, GeneInput{Name: "Agouti"})
	require.NoError(t, err)
	pet := f.createPet(t, PetCreateInput{Name: "Rex"})

	_, err = f.pets.AddGeneMapping(ctx, f.owner, pet.ID, GeneMappingInput{GeneID: "missing", Zygosity: domain.ZygosityUnknown})
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	updated, err := f.pets.AddGeneMapping(ctx, f.owner, pet.ID, GeneMappingInput{GeneID: gene.ID, Zygosity: domain.ZygosityHeterozygous})
	require.NoError(t, err)
	require.Len(t, updated.GeneMappings, 1)

	_, err = f.pets.AddGeneMapping(ctx, f.owner, pet.ID, GeneMappingInput{GeneID: gene.ID, Zygosity: domain.ZygosityHomozygous})
	assert.True(t, apperrors.IsCode(err, "CONFLICT"))

	updated, err = f.pets.RemoveGeneMapping(ctx, f.owner, pet.ID, gene.ID)
	require.NoError(t, err)
	assert.Empty(t, updated.GeneMappings)
}

func TestPetServicePictures(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	pet := f.createPet(t, PetCreateInput{Name: "Rex"})

	updated, err := f.pets.AddPicture(ctx, f.owner, pet.ID, "https://cdn.example.com/rex.jpg", domain.PictureKindAvatar)
	require.NoError(t, err)
	require.Len(t, updated.Pictures, 1)

	_, err = f.pets.RemovePicture(ctx, f.owner, pet.ID, "missing")
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	updated, err = f.pets.RemovePicture(ctx, f.owner, pet.ID, updated.Pictures[0].ID)
	require.NoError(t, err)
	assert.Empty(t, updated.Pictures)
}

func TestPetServiceDelete(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	pet := f.createPet(t, PetCreateInput{Name: "Rex"})
	f.rec.reset()

	require.NoError(t, f.pets.Delete(ctx, f.owner, pet.ID))
	assert.Equal(t, []domain.EventType{domain.EventPetDeleted}, f.rec.types())

	_, err := f.pets.GetPet(ctx, f.owner, pet.ID)
	assert.True(t, apperrors.IsCode(err, "NOT_FOUND"))

	pets, err := f.pets.ListPets(ctx, f.owner, PetListFilter{})
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestPetServiceAgeReport(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	birth := time.Now().AddDate(-4, 0, -10)
	pet := f.createPet(t, PetCreateInput{Name: "Rex", BirthDate: &birth})

	report, err := f.pets.AgeReport(ctx, f.owner, pet.ID)
	require.NoError(t, err)
	assert.True(t, report.Known)
	assert.Equal(t, 4, report.Years)
	assert.Equal(t, domain.LifeStageAdult, report.Stage)
	require.NotNil(t, report.NextBirthday)
}

func TestPetServiceAgeReportUsesBreedThresholds(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	thresholds := domain.LifeStageThresholds{AdultAfterYears: 1, PrimeAfterYears: 2, SeniorAfterYears: 3}
	_, err := f.catalog.UpdateBreed(ctx, f.breed.ID, BreedInput{Name: f.breed.Name, Thresholds: &thresholds})
	require.NoError(t, err)

	birth := time.Now().AddDate(-4, 0, -10)
	pet := f.createPet(t, PetCreateInput{Name: "Rex", BirthDate: &birth})

	report, err := f.pets.AgeReport(ctx, f.owner, pet.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.LifeStageSenior, report.Stage)
}

func TestPetServiceAgeReportUnknown(t *testing.T) {
	f := newPetFixture(t)

	pet := f.createPet(t, PetCreateInput{Name: "Rex"})

	report, err := f.pets.AgeReport(context.Background(), f.owner, pet.ID)
	require.NoError(t, err)
	assert.False(t, report.Known)
	assert.Equal(t, domain.LifeStageUnknown, report.Stage)
	assert.Equal(t, "unknown", report.Formatted)
	assert.Nil(t, report.NextBirthday)
}

func TestPetServiceGeneticProfile(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	agouti, err := f.catalog.CreateGene(ctx, GeneInput{Name: "Agouti", InheritanceType: domain.InheritanceDominant})
	require.NoError(t, err)
	albino, err := f.catalog.CreateGene(ctx, GeneInput{Name: "Albino", InheritanceType: domain.InheritanceRecessive})
	require.NoError(t, err)

	pet := f.createPet(t, PetCreateInput{Name: "Biscuit", GeneMappings: []GeneMappingInput{
		{GeneID: agouti.ID, Zygosity: domain.ZygosityHeterozygous},
		{GeneID: albino.ID, Zygosity: domain.ZygosityHeterozygous},
	}})

	profile, err := f.pets.GeneticProfile(ctx, f.owner, pet.ID)
	require.NoError(t, err)
	require.Len(t, profile.Expressions, 2)

	summary := profile.Summary()
	assert.Equal(t, 2, summary.TotalGenes)
	assert.Equal(t, 1, summary.Expressed, "het dominant shows, het recessive does not")
	assert.Equal(t, 1, summary.Carried)

	stranger := registerUser(t, f.users, "sam_k", "sam@example.com")
	_, err = f.pets.GeneticProfile(ctx, stranger, pet.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"))
}

func TestPetServiceGeneticProfileSkipsDeletedGenes(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	gene, err := f.catalog.CreateGene(ctx, GeneInput{Name: "Agouti", InheritanceType: domain.InheritanceDominant})
	require.NoError(t, err)
	pet := f.createPet(t, PetCreateInput{Name: "Biscuit", GeneMappings: []GeneMappingInput{
		{GeneID: gene.ID, Zygosity: domain.ZygosityHomozygous},
	}})

	require.NoError(t, f.catalog.DeleteGene(ctx, gene.ID))

	profile, err := f.pets.GeneticProfile(ctx, f.owner, pet.ID)
	require.NoError(t, err)
	assert.Empty(t, profile.Expressions)
}

func TestPetServiceCompareGenetics(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	gene, err := f.catalog.CreateGene(ctx, GeneInput{Name: "Agouti", InheritanceType: domain.InheritanceDominant})
	require.NoError(t, err)

	left := f.createPet(t, PetCreateInput{Name: "Biscuit", GeneMappings: []GeneMappingInput{
		{GeneID: gene.ID, Zygosity: domain.ZygosityHomozygous},
	}})
	right := f.createPet(t, PetCreateInput{Name: "Waffle", GeneMappings: []GeneMappingInput{
		{GeneID: gene.ID, Zygosity: domain.ZygosityHomozygous},
	}})

	report, err := f.pets.CompareGenetics(ctx, f.owner, left.ID, right.ID)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, report.Score, 1e-9)
	assert.Equal(t, []string{gene.ID}, report.SharedGenes)
	require.Len(t, report.OffspringTraits, 1)
	assert.Equal(t, domain.ZygosityHomozygous, report.OffspringTraits[0].Zygosity)

	_, err = f.pets.CompareGenetics(ctx, f.owner, left.ID, left.ID)
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))

	stranger := registerUser(t, f.users, "sam_k", "sam@example.com")
	_, err = f.pets.CompareGenetics(ctx, stranger, left.ID, right.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"), "actor must see both pets")
}

func TestPetServiceOwnershipHistory(t *testing.T) {
	f := newPetFixture(t)
	ctx := context.Background()

	pet := f.createPet(t, PetCreateInput{Name: "Biscuit"})
	recipient := registerUser(t, f.users, "dana_l", "dana@example.com")

	_, err := f.pets.TransferOwnership(ctx, f.owner, pet.ID, recipient.ID)
	require.NoError(t, err)

	history, err := f.pets.OwnershipHistory(ctx, f.admin, pet.ID)
	require.NoError(t, err)
	require.Len(t, history.Records, 2)

	assert.Equal(t, f.owner.ID, history.Records[0].OwnerID)
	require.NotNil(t, history.Records[0].EndDate)
	assert.Equal(t, recipient.ID, history.Records[1].OwnerID)
	assert.True(t, history.Records[1].IsCurrent())

	owner, ok := history.CurrentOwner()
	require.True(t, ok)
	assert.Equal(t, recipient.ID, owner)

	_, err = f.pets.OwnershipHistory(ctx, f.owner, pet.ID)
	assert.True(t, apperrors.IsCode(err, "FORBIDDEN"), "previous owner loses access after the transfer")
}
