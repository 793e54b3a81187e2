package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/repository"
)

type petRecordRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.PetRecord
}

// NewPetRecordRepo builds an empty in-memory care record repository.
func NewPetRecordRepo() repository.PetRecordRepository {
	return &petRecordRepo{byID: make(map[string]domain.PetRecord)}
}

func (r *petRecordRepo) Create(ctx context.Context, record *domain.PetRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[record.ID] = snapshot(*record)
	return nil
}

func (r *petRecordRepo) Update(ctx context.Context, record *domain.PetRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[record.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[record.ID] = snapshot(*record)
	return nil
}

func (r *petRecordRepo) GetByID(ctx context.Context, id string) (*domain.PetRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.byID[id]
	if !ok || record.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return &record, nil
}

func (r *petRecordRepo) ListByPet(ctx context.Context, petID string, filter repository.PetRecordFilter) ([]domain.PetRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.PetRecord, 0)
	for _, record := range r.byID {
		if record.IsDeleted || record.PetID != petID {
			continue
		}
		if filter.RecordType != nil && record.RecordType != *filter.RecordType {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, filter.Limit, filter.Offset), nil
}
