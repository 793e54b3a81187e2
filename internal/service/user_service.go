package service

import (
	"context"

	"github.com/spec-kit/pet-service/internal/domain"
	"github.com/spec-kit/pet-service/internal/events"
	"github.com/spec-kit/pet-service/internal/repository"
	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// UserService coordinates account lifecycle workflows.
type UserService struct {
	users     repository.UserRepository
	hasher    domain.PasswordHasher
	policy    *domain.PasswordPolicy
	publisher *events.Publisher
}

// UserDependencies bundles requirements for the user service.
type UserDependencies struct {
	UserRepo  repository.UserRepository
	Hasher    domain.PasswordHasher
	Policy    *domain.PasswordPolicy
	Publisher *events.Publisher
}

// UserRegisterInput describes registration payload.
type UserRegisterInput struct {
	Username string
	Email    string
	FullName *string
	Password string
	Role     domain.Role
}

// UserProfileInput describes profile update payload. Nil fields are left
// untouched.
type UserProfileInput struct {
	FullName *string
	Email    *string
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	policy := deps.Policy
	if policy == nil {
		policy = domain.DefaultPasswordPolicy()
	}
	return &UserService{
		users:     deps.UserRepo,
		hasher:    deps.Hasher,
		policy:    policy,
		publisher: deps.Publisher,
	}
}

// Register creates a new account after uniqueness checks.
func (s *UserService) Register(ctx context.Context, input UserRegisterInput) (*domain.User, error) {
	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}

	taken, err := s.users.ExistsByUsername(ctx, input.Username, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"username": input.Username})
	}
	taken, err = s.users.ExistsByEmail(ctx, input.Email, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": input.Email})
	}

	user, err := domain.NewUser(input.Username, input.Email, input.FullName, input.Password, role, s.hasher, s.policy)
	if err != nil {
		return nil, err
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.publisher.PublishAggregate(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID returns a visible user.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// List returns a page of users.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.users.List(ctx, limit, offset)
}

// UpdateProfile applies partial profile changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, input UserProfileInput) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if input.Email != nil {
		taken, err := s.users.ExistsByEmail(ctx, *input.Email, user.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperrors.NewConflict("email already registered", map[string]any{"email": *input.Email})
		}
	}
	if err := user.UpdateProfile(input.FullName, input.Email); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}

// UpdateUsername changes the login name after a uniqueness check.
func (s *UserService) UpdateUsername(ctx context.Context, userID, newUsername string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	taken, err := s.users.ExistsByUsername(ctx, newUsername, user.ID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperrors.NewConflict("username already taken", map[string]any{"username": newUsername})
	}
	if err := user.UpdateUsername(newUsername); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}

// ChangePassword verifies the current password before applying the new one.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	if !user.VerifyPassword(currentPassword, s.hasher) {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if err := user.ChangePassword(newPassword, s.hasher, s.policy); err != nil {
		return err
	}
	_, err = s.save(ctx, user)
	return err
}

// Activate enables a deactivated account.
func (s *UserService) Activate(ctx context.Context, userID string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(user *domain.User) error { return user.Activate() })
}

// Deactivate disables an account.
func (s *UserService) Deactivate(ctx context.Context, userID string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(user *domain.User) error { return user.Deactivate() })
}

// PromoteToAdmin grants the admin role, recording who did it.
func (s *UserService) PromoteToAdmin(ctx context.Context, userID, promotedBy string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(user *domain.User) error { return user.PromoteToAdmin(promotedBy) })
}

// DemoteToUser revokes the admin role.
func (s *UserService) DemoteToUser(ctx context.Context, userID string) (*domain.User, error) {
	return s.mutate(ctx, userID, func(user *domain.User) error { return user.DemoteToUser() })
}

// Delete soft-deletes the account.
func (s *UserService) Delete(ctx context.Context, userID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return apperrors.MapError(err)
	}
	user.Delete()
	_, err = s.save(ctx, user)
	return err
}

func (s *UserService) mutate(ctx context.Context, userID string, fn func(*domain.User) error) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := fn(user); err != nil {
		return nil, err
	}
	return s.save(ctx, user)
}

func (s *UserService) save(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := s.users.Update(ctx, user); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.publisher.PublishAggregate(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
