package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/repository"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.Pet
}

// NewPetRepo builds an empty in-memory pet repository.
func NewPetRepo() repository.PetRepository {
	return &petRepo{byID: make(map[string]domain.Pet)}
}

func (r *petRepo) Create(ctx context.Context, pet *domain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[pet.ID] = snapshot(*pet)
	return nil
}

func (r *petRepo) Update(ctx context.Context, pet *domain.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[pet.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[pet.ID] = snapshot(*pet)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (*domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pet, ok := r.byID[id]
	if !ok || pet.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return &pet, nil
}

func (r *petRepo) ListWithFilter(ctx context.Context, filter repository.PetFilter) ([]domain.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Pet, 0)
	for _, pet := range r.byID {
		if pet.IsDeleted {
			continue
		}
		if filter.OwnerID != nil && pet.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.BreedID != nil && pet.BreedID != *filter.BreedID {
			continue
		}
		if filter.MorphologyID != nil && (pet.MorphologyID == nil || *pet.MorphologyID != *filter.MorphologyID) {
			continue
		}
		if filter.Gender != nil && pet.Gender != *filter.Gender {
			continue
		}
		out = append(out, pet)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}
