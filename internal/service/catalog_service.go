package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// CatalogService manages the reference data pets point at: breeds, genes
// and morphologies. Single-entry reads go through a redis cache; every
// mutation invalidates the touched key.
type CatalogService struct {
	breeds    repository.BreedRepository
	genes     repository.GeneRepository
	morphs    repository.MorphologyRepository
	publisher *events.Publisher
	cache     *redis.Client
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// CatalogDependencies bundles requirements for the catalog service.
type CatalogDependencies struct {
	BreedRepo      repository.BreedRepository
	GeneRepo       repository.GeneRepository
	MorphologyRepo repository.MorphologyRepository
	Publisher      *events.Publisher
	Cache          *redis.Client
	CacheTTL       time.Duration
	Logger         *zap.Logger
}

// BreedInput describes breed create/update payload.
type BreedInput struct {
	Name        string
	Description *string
	Thresholds  *domain.LifeStageThresholds
}

// GeneInput describes gene create/update payload.
type GeneInput struct {
	Name            string
	Alias           *string
	Description     *string
	Notation        *string
	InheritanceType domain.InheritanceType
	Category        domain.GeneCategory
}

// MorphologyInput describes morphology create/update payload.
type MorphologyInput struct {
	Name        string
	Description *string
}

// NewCatalogService constructs the service.
func NewCatalogService(deps CatalogDependencies) *CatalogService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{
		breeds:    deps.BreedRepo,
		genes:     deps.GeneRepo,
		morphs:    deps.MorphologyRepo,
		publisher: deps.Publisher,
		cache:     deps.Cache,
		cacheTTL:  deps.CacheTTL,
		logger:    logger,
	}
}

// CreateBreed creates a breed, with optional threshold overrides.
func (s *CatalogService) CreateBreed(ctx context.Context, input BreedInput) (*domain.Breed, error) {
	breed, err := domain.NewBreed(input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if input.Thresholds != nil {
		if err := breed.SetThresholds(*input.Thresholds); err != nil {
			return nil, err
		}
	}
	if err := s.breeds.Create(ctx, breed); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishAggregate(ctx, breed); err != nil {
		return nil, err
	}
	return breed, nil
}

// GetBreed returns a breed, served from cache when possible.
func (s *CatalogService) GetBreed(ctx context.Context, id string) (*domain.Breed, error) {
	var breed domain.Breed
	if s.cacheGet(ctx, breedKey(id), &breed) {
		return &breed, nil
	}
	loaded, err := s.breeds.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, breedKey(id), loaded)
	return loaded, nil
}

// ListBreeds returns a page of breeds.
func (s *CatalogService) ListBreeds(ctx context.Context, limit, offset int) ([]domain.Breed, error) {
	return s.breeds.List(ctx, limit, offset)
}

// UpdateBreed applies name, description and threshold changes.
func (s *CatalogService) UpdateBreed(ctx context.Context, id string, input BreedInput) (*domain.Breed, error) {
	breed, err := s.breeds.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := breed.Update(input.Name, input.Description); err != nil {
		return nil, err
	}
	if input.Thresholds != nil {
		if err := breed.SetThresholds(*input.Thresholds); err != nil {
			return nil, err
		}
	}
	if err := s.breeds.Update(ctx, breed); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheInvalidate(ctx, breedKey(id))
	if err := s.publisher.PublishAggregate(ctx, breed); err != nil {
		return nil, err
	}
	return breed, nil
}

// DeleteBreed soft-deletes a breed.
func (s *CatalogService) DeleteBreed(ctx context.Context, id string) error {
	breed, err := s.breeds.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	breed.Delete()
	if err := s.breeds.Update(ctx, breed); err != nil {
		return apperrors.MapError(err)
	}
	s.cacheInvalidate(ctx, breedKey(id))
	return s.publisher.PublishAggregate(ctx, breed)
}

// CreateGene creates a gene.
func (s *CatalogService) CreateGene(ctx context.Context, input GeneInput) (*domain.Gene, error) {
	gene, err := domain.NewGene(input.Name, input.InheritanceType, input.Category)
	if err != nil {
		return nil, err
	}
	gene.Alias = input.Alias
	gene.Description = input.Description
	gene.Notation = input.Notation
	if err := s.genes.Create(ctx, gene); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishAggregate(ctx, gene); err != nil {
		return nil, err
	}
	return gene, nil
}

// GetGene returns a gene, served from cache when possible.
func (s *CatalogService) GetGene(ctx context.Context, id string) (*domain.Gene, error) {
	var gene domain.Gene
	if s.cacheGet(ctx, geneKey(id), &gene) {
		return &gene, nil
	}
	loaded, err := s.genes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, geneKey(id), loaded)
	return loaded, nil
}

// ListGenes returns a page of genes.
func (s *CatalogService) ListGenes(ctx context.Context, limit, offset int) ([]domain.Gene, error) {
	return s.genes.List(ctx, limit, offset)
}

// UpdateGene applies field changes.
func (s *CatalogService) UpdateGene(ctx context.Context, id string, input GeneInput) (*domain.Gene, error) {
	gene, err := s.genes.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := gene.Update(input.Name, input.Alias, input.Description, input.Notation, input.InheritanceType, input.Category); err != nil {
		return nil, err
	}
	if err := s.genes.Update(ctx, gene); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheInvalidate(ctx, geneKey(id))
	if err := s.publisher.PublishAggregate(ctx, gene); err != nil {
		return nil, err
	}
	return gene, nil
}

// DeleteGene soft-deletes a gene.
func (s *CatalogService) DeleteGene(ctx context.Context, id string) error {
	gene, err := s.genes.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	gene.Delete()
	if err := s.genes.Update(ctx, gene); err != nil {
		return apperrors.MapError(err)
	}
	s.cacheInvalidate(ctx, geneKey(id))
	return s.publisher.PublishAggregate(ctx, gene)
}

// CreateMorphology creates a morphology.
func (s *CatalogService) CreateMorphology(ctx context.Context, input MorphologyInput) (*domain.Morphology, error) {
	morph, err := domain.NewMorphology(input.Name, input.Description)
	if err != nil {
		return nil, err
	}
	if err := s.morphs.Create(ctx, morph); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishAggregate(ctx, morph); err != nil {
		return nil, err
	}
	return morph, nil
}

// GetMorphology returns a morphology, served from cache when possible.
func (s *CatalogService) GetMorphology(ctx context.Context, id string) (*domain.Morphology, error) {
	var morph domain.Morphology
	if s.cacheGet(ctx, morphologyKey(id), &morph) {
		return &morph, nil
	}
	loaded, err := s.morphs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheSet(ctx, morphologyKey(id), loaded)
	return loaded, nil
}

// ListMorphologies returns a page of morphologies.
func (s *CatalogService) ListMorphologies(ctx context.Context, limit, offset int) ([]domain.Morphology, error) {
	return s.morphs.List(ctx, limit, offset)
}

// UpdateMorphology applies name and description changes.
func (s *CatalogService) UpdateMorphology(ctx context.Context, id string, input MorphologyInput) (*domain.Morphology, error) {
	return s.mutateMorphology(ctx, id, func(morph *domain.Morphology) error {
		return morph.Update(input.Name, input.Description)
	})
}

// AddMorphologyGene attaches a gene requirement to the morphology.
func (s *CatalogService) AddMorphologyGene(ctx context.Context, id string, input GeneMappingInput) (*domain.Morphology, error) {
	if _, err := s.genes.GetByID(ctx, input.GeneID); err != nil {
		return nil, apperrors.MapError(err)
	}
	return s.mutateMorphology(ctx, id, func(morph *domain.Morphology) error {
		return morph.AddGeneMapping(domain.NewMorphGeneMapping(input.GeneID, input.Zygosity, input.Required))
	})
}

// RemoveMorphologyGene detaches a gene requirement.
func (s *CatalogService) RemoveMorphologyGene(ctx context.Context, id, geneID string) (*domain.Morphology, error) {
	return s.mutateMorphology(ctx, id, func(morph *domain.Morphology) error {
		return morph.RemoveGeneMapping(geneID)
	})
}

// DeleteMorphology soft-deletes a morphology.
func (s *CatalogService) DeleteMorphology(ctx context.Context, id string) error {
	morph, err := s.morphs.GetByID(ctx, id)
	if err != nil {
		return apperrors.MapError(err)
	}
	morph.Delete()
	if err := s.morphs.Update(ctx, morph); err != nil {
		return apperrors.MapError(err)
	}
	s.cacheInvalidate(ctx, morphologyKey(id))
	return s.publisher.PublishAggregate(ctx, morph)
}

func (s *CatalogService) mutateMorphology(ctx context.Context, id string, fn func(*domain.Morphology) error) (*domain.Morphology, error) {
	morph, err := s.morphs.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := fn(morph); err != nil {
		return nil, err
	}
	if err := s.morphs.Update(ctx, morph); err != nil {
		return nil, apperrors.MapError(err)
	}
	s.cacheInvalidate(ctx, morphologyKey(id))
	if err := s.publisher.PublishAggregate(ctx, morph); err != nil {
		return nil, err
	}
	return morph, nil
}

func (s *CatalogService) cacheGet(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	raw, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Debug("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		s.logger.Debug("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *CatalogService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, raw, s.cacheTTL).Err(); err != nil {
		s.logger.Debug("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CatalogService) cacheInvalidate(ctx context.Context, key string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, key).Err(); err != nil {
		s.logger.Debug("catalog cache invalidation failed", zap.String("key", key), zap.Error(err))
	}
}

func breedKey(id string) string      { return "catalog:breed:" + id }
func geneKey(id string) string       { return "catalog:gene:" + id }
func morphologyKey(id string) string { return "catalog:morphology:" + id }
