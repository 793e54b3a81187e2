package domain

import (
	"regexp"
	"strings"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// Role enumerates user access levels.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
	RoleGuest Role = "guest"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User is the aggregate for accounts that own pets.
type User struct {
	AggregateRoot

	Username       string  `json:"username"`
	Email          string  `json:"email"`
	FullName       *string `json:"full_name,omitempty"`
	HashedPassword string  `json:"-"`
	Role           Role    `json:"role"`
	IsActive       bool    `json:"is_active"`
}

// NewUser constructs an active user with a freshly hashed password.
func NewUser(username, email string, fullName *string, plainPassword string, role Role, hasher PasswordHasher, policy *PasswordPolicy) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := policy.Validate(plainPassword); err != nil {
		return nil, err
	}
	hash, err := hasher.Hash(plainPassword)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = RoleUser
	}

	user := &User{
		AggregateRoot:  newAggregateRoot(),
		Username:       username,
		Email:          email,
		FullName:       fullName,
		HashedPassword: hash,
		Role:           role,
		IsActive:       true,
	}
	user.record(EventUserRegistered, UserRegisteredPayload{
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	})
	return user, nil
}

// VerifyPassword delegates verification to the hasher.
func (u *User) VerifyPassword(plain string, hasher PasswordHasher) bool {
	return hasher.Verify(plain, u.HashedPassword)
}

// ChangePassword validates the new password against the policy before
// replacing the stored hash.
func (u *User) ChangePassword(newPlain string, hasher PasswordHasher, policy *PasswordPolicy) error {
	if err := u.ensureMutable("user"); err != nil {
		return err
	}
	if err := policy.Validate(newPlain); err != nil {
		return err
	}
	hash, err := hasher.Hash(newPlain)
	if err != nil {
		return err
	}
	u.HashedPassword = hash
	u.touch()
	u.record(EventUserPasswordChanged, nil)
	return nil
}

// Activate enables the account. Activating an already-active user is a
// no-op and emits nothing.
func (u *User) Activate() error {
	if err := u.ensureMutable("user"); err != nil {
		return err
	}
	if u.IsActive {
		return nil
	}
	u.IsActive = true
	u.touch()
	u.record(EventUserActivated, ActivationChangedPayload{Active: true})
	return nil
}

// Deactivate disables the account. Idempotent like Activate.
func (u *User) Deactivate() error {
	if err := u.ensureMutable("user"); err != nil {
		return err
	}
	if !u.IsActive {
		return nil
	}
	u.IsActive = false
	u.touch()
	u.record(EventUserDeactivated, ActivationChangedPayload{Active: false})
	return nil
}

// PromoteToAdmin raises the user to admin. Promoting an admin is rejected
// so callers are told the transition had no meaning.
func (u *User) PromoteToAdmin(promotedBy string) error {
	if err := u.ensureMutable("user"); err != nil {
		return err
	}
	if u.Role == RoleAdmin {
		return apperrors.NewPolicyViolation("user is already an admin", map[string]any{"user_id": u.ID})
	}
	oldRole := u.Role
	u.Role = RoleAdmin
	u.touch()
	u.record(EventUserRolePromoted, RoleChangedPayload{
		OldRole: oldRole,
		NewRole: RoleAdmin,
		ActorID: &promotedBy,
	})
	return nil
}

// DemoteToUser lowers an admin back to a regular user.
func (u *User) DemoteToUser() error {
	if err := u.ensureMutable("user"); err != nil {
		return err
	}
	if u.Role != RoleAdmin {
		return apperrors.NewPolicyViolation("user is not an admin", map[string]any{"user_id": u.ID, "role": u.Role})
	}
	u.Role = RoleUser
	u.touch()
	u.record(EventUserRoleDemoted, RoleChangedPayload{
		OldRole: RoleAdmin,
		NewRole: RoleUser,
	})
	return nil
}

// UpdateProfile replaces full name and email, validating formats first.
func (u *User) UpdateProfile(fullName *string, email *string) error {
	if err := u.ensureMutable("user"); err != nil {
		return err
	}
	updated := []string{}
	if email != nil {
		trimmed := strings.TrimSpace(*email)
		if err := validateEmail(trimmed); err != nil {
			return err
		}
		if trimmed != u.Email {
			u.Email = trimmed
			updated = append(updated, "email")
		}
	}
	if fullName != nil {
		u.FullName = fullName
		updated = append(updated, "full_name")
	}
	if len(updated) == 0 {
		return nil
	}
	u.touch()
	u.record(EventUserProfileUpdated, ProfileUpdatedPayload{UpdatedFields: updated})
	return nil
}

// UpdateUsername renames the account after format validation. Uniqueness
// is the repository's concern.
func (u *User) UpdateUsername(newUsername string) error {
	if err := u.ensureMutable("user"); err != nil {
		return err
	}
	newUsername = strings.TrimSpace(newUsername)
	if err := validateUsername(newUsername); err != nil {
		return err
	}
	if newUsername == u.Username {
		return nil
	}
	old := u.Username
	u.Username = newUsername
	u.touch()
	u.record(EventUserUsernameChanged, UsernameChangedPayload{
		OldUsername: old,
		NewUsername: newUsername,
	})
	return nil
}

// Delete soft-deletes the account and records the event.
func (u *User) Delete() {
	if u.IsDeleted {
		return
	}
	u.MarkDeleted()
	u.record(EventUserDeleted, UserDeletedPayload{Username: u.Username})
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsGuest reports whether the user holds the guest role.
func (u *User) IsGuest() bool {
	return u.Role == RoleGuest
}

// CanLogin is true iff the account is active and not soft-deleted.
func (u *User) CanLogin() bool {
	return u.IsActive && !u.IsDeleted
}

func validateUsername(username string) error {
	if !usernamePattern.MatchString(username) {
		return apperrors.NewValidationError("invalid username", map[string]any{"username": username})
	}
	return nil
}

func validateEmail(email string) error {
	if !emailPattern.MatchString(email) {
		return apperrors.NewValidationError("invalid email", map[string]any{"email": email})
	}
	return nil
}
