// Package memory holds map-backed repository implementations. They mirror
// the postgres error contract (pgx.ErrNoRows on missing rows) so services
// behave identically against either backend.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/repository"
)

type userRepo struct {
	mu   sync.RWMutex
	byID map[string]domain.User
}

// NewUserRepo builds an empty in-memory user repository.
func NewUserRepo() repository.UserRepository {
	return &userRepo{byID: make(map[string]domain.User)}
}

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[user.ID] = snapshot(*user)
	return nil
}

func (r *userRepo) Update(ctx context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.byID[user.ID] = snapshot(*user)
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.byID[id]
	if !ok || user.IsDeleted {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *userRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byID {
		if user.Username == username && !user.IsDeleted {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byID {
		if user.Email == email && !user.IsDeleted {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *userRepo) ExistsByUsername(ctx context.Context, username, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byID {
		if user.Username == username && !user.IsDeleted && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) ExistsByEmail(ctx context.Context, email, excludeID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.byID {
		if user.Email == email && !user.IsDeleted && user.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (r *userRepo) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.User, 0)
	for _, user := range r.byID {
		if !user.IsDeleted {
			out = append(out, user)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return paginate(out, limit, offset), nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if limit <= 0 {
		limit = 50
	}
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// snapshot stores an aggregate copy without its pending events. The pending
// sequence is transient and must not survive a round trip through storage.
func snapshot[T any, P interface {
	*T
	ClearDomainEvents()
}](aggregate T) T {
	P(&aggregate).ClearDomainEvents()
	return aggregate
}
