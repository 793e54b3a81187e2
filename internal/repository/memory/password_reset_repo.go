package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pet-service/internal/repository"
)

type passwordResetRepo struct {
	mu      sync.RWMutex
	byToken map[string]repository.PasswordResetToken
}

// NewPasswordResetRepo builds an empty in-memory reset token repository.
func NewPasswordResetRepo() repository.PasswordResetRepository {
	return &passwordResetRepo{byToken: make(map[string]repository.PasswordResetToken)}
}

func (r *passwordResetRepo) Create(ctx context.Context, token *repository.PasswordResetToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if token.ID == "" {
		token.ID = uuid.NewString()
	}
	if token.CreatedAt.IsZero() {
		token.CreatedAt = time.Now()
	}
	r.byToken[token.Token] = *token
	return nil
}

func (r *passwordResetRepo) GetByToken(ctx context.Context, tokenStr string) (*repository.PasswordResetToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	token, ok := r.byToken[tokenStr]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &token, nil
}

func (r *passwordResetRepo) MarkUsed(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, token := range r.byToken {
		if token.ID == id {
			now := time.Now()
			token.UsedAt = &now
			r.byToken[key] = token
			return nil
		}
	}
	return pgx.ErrNoRows
}
