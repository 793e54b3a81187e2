package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/pet-service/internal/auth"
	"github.com/spec-kit/pet-service/internal/config"
	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// PasswordResetSender delivers freshly minted reset tokens out of band.
// Tokens never travel back over the HTTP response.
type PasswordResetSender interface {
	SendPasswordReset(ctx context.Context, user *domain.User, token *repository.PasswordResetToken)
}

// AuthService coordinates login and password reset flows. Registration
// lives on UserService; the auth handler delegates to it.
type AuthService struct {
	users     repository.UserRepository
	resets    repository.PasswordResetRepository
	tokenMgr  *auth.TokenManager
	hasher    domain.PasswordHasher
	policy    *domain.PasswordPolicy
	publisher *events.Publisher
	sender    PasswordResetSender
	resetTTL  time.Duration
}

// AuthDependencies encapsulates requirements for the auth service.
type AuthDependencies struct {
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	Hasher            domain.PasswordHasher
	Policy            *domain.PasswordPolicy
	Publisher         *events.Publisher
	ResetSender       PasswordResetSender
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	policy := deps.Policy
	if policy == nil {
		policy = domain.DefaultPasswordPolicy()
	}
	return &AuthService{
		users:     deps.UserRepo,
		resets:    deps.PasswordResetRepo,
		tokenMgr:  auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		hasher:    deps.Hasher,
		policy:    policy,
		publisher: deps.Publisher,
		sender:    deps.ResetSender,
		resetTTL:  time.Duration(cfg.Auth.PasswordResetTTLMinutes) * time.Minute,
	}
}

// Login authenticates by username or email and returns a signed token.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByUsername(ctx, identifier)
	if err == pgx.ErrNoRows {
		user, err = s.users.GetByEmail(ctx, identifier)
	}
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, "", time.Time{}, err
	}
	if !user.CanLogin() {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("account disabled")
	}
	if !user.VerifyPassword(password, s.hasher) {
		return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid credentials")
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// Logout currently no-ops for stateless JWT approach.
func (s *AuthService) Logout(_ context.Context, _ string) error {
	return nil
}

// RequestPasswordReset persists a reset token for the account with the
// given email.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (*repository.PasswordResetToken, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	token := &repository.PasswordResetToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: time.Now().Add(s.resetTTL),
	}
	if err := s.resets.Create(ctx, token); err != nil {
		return nil, err
	}
	if s.sender != nil {
		s.sender.SendPasswordReset(ctx, user, token)
	}
	return token, nil
}

// ConfirmPasswordReset validates the reset token and updates the password.
func (s *AuthService) ConfirmPasswordReset(ctx context.Context, tokenStr, newPassword string) error {
	token, err := s.resets.GetByToken(ctx, tokenStr)
	if err != nil {
		return apperrors.MapError(err)
	}
	if token.UsedAt != nil || time.Now().After(token.ExpiresAt) {
		return apperrors.NewUnauthorized("token expired or used")
	}

	user, err := s.users.GetByID(ctx, token.UserID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if err := user.ChangePassword(newPassword, s.hasher, s.policy); err != nil {
		return err
	}
	if err := s.users.Update(ctx, user); err != nil {
		return err
	}
	if err := s.publisher.PublishAggregate(ctx, user); err != nil {
		return err
	}
	return s.resets.MarkUsed(ctx, token.ID)
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
