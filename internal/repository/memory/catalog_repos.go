package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/repository"
)

type breedRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Breed
}

// NewBreedRepo builds an empty in-memory breed repository.
func NewBreedRepo() repository.BreedRepository {
	return &breedRepo{byID: make(map[string]domain.Breed)}
}

func (r *breedRepo) Create(ctx context.Context, breed *domain.Breed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[breed.ID] = snapshot(*breed)
	return nil
}

func (r *breedRepo) Update(ctx context.Context, breed *domain.Breed) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[breed.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[breed.ID] = snapshot(*breed)
	return nil
}

func (r *breedRepo) GetByID(ctx context.Context, id string) (*domain.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	breed, ok := r.byID[id]
	if !ok || breed.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return &breed, nil
}

func (r *breedRepo) List(ctx context.Context, limit, offset int) ([]domain.Breed, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Breed, 0)
	for _, breed := range r.byID {
		if !breed.IsDeleted {
			out = append(out, breed)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

type geneRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Gene
}

// NewGeneRepo builds an empty in-memory gene repository.
func NewGeneRepo() repository.GeneRepository {
	return &geneRepo{byID: make(map[string]domain.Gene)}
}

func (r *geneRepo) Create(ctx context.Context, gene *domain.Gene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[gene.ID] = snapshot(*gene)
	return nil
}

func (r *geneRepo) Update(ctx context.Context, gene *domain.Gene) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[gene.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[gene.ID] = snapshot(*gene)
	return nil
}

func (r *geneRepo) GetByID(ctx context.Context, id string) (*domain.Gene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	gene, ok := r.byID[id]
	if !ok || gene.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return &gene, nil
}

func (r *geneRepo) List(ctx context.Context, limit, offset int) ([]domain.Gene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Gene, 0)
	for _, gene := range r.byID {
		if !gene.IsDeleted {
			out = append(out, gene)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}

type morphologyRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Morphology
}

// NewMorphologyRepo builds an empty in-memory morphology repository.
func NewMorphologyRepo() repository.MorphologyRepository {
	return &morphologyRepo{byID: make(map[string]domain.Morphology)}
}

func (r *morphologyRepo) Create(ctx context.Context, morph *domain.Morphology) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[morph.ID] = snapshot(*morph)
	return nil
}

func (r *morphologyRepo) Update(ctx context.Context, morph *domain.Morphology) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[morph.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[morph.ID] = snapshot(*morph)
	return nil
}

func (r *morphologyRepo) GetByID(ctx context.Context, id string) (*domain.Morphology, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	morph, ok := r.byID[id]
	if !ok || morph.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return &morph, nil
}

func (r *morphologyRepo) List(ctx context.Context, limit, offset int) ([]domain.Morphology, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Morphology, 0)
	for _, morph := range r.byID {
		if !morph.IsDeleted {
			out = append(out, morph)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, limit, offset), nil
}
