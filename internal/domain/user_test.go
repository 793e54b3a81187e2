package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

func newTestUser(t *testing.T) *User {
	t.Helper()
	user, err := NewUser("casey_r", "casey@example.com", nil, "Sup3rSecret", RoleUser, plainHasher{}, DefaultPasswordPolicy())
	require.NoError(t, err)
	return user
}

func TestNewUser(t *testing.T) {
	user := newTestUser(t)

	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)
	assert.Equal(t, RoleUser, user.Role)
	assert.True(t, user.VerifyPassword("Sup3rSecret", plainHasher{}))
	assert.False(t, user.VerifyPassword("wrong", plainHasher{}))

	events := user.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventUserRegistered, events[0].Type)
	assert.Equal(t, user.ID, events[0].AggregateID)
}

func TestNewUserValidation(t *testing.T) {
	cases := []struct {
		name     string
		username string
		email    string
		password string
		code     string
	}{
		{"short username", "ab", "a@b.com", "Sup3rSecret", "VALIDATION_FAILED"},
		{"bad characters", "has space", "a@b.com", "Sup3rSecret", "VALIDATION_FAILED"},
		{"bad email", "casey_r", "not-an-email", "Sup3rSecret", "VALIDATION_FAILED"},
		{"weak password", "casey_r", "a@b.com", "weak", "POLICY_VIOLATION"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewUser(tc.username, tc.email, nil, tc.password, RoleUser, plainHasher{}, DefaultPasswordPolicy())
			require.Error(t, err)
			assert.True(t, apperrors.IsCode(err, tc.code))
		})
	}
}

func TestUserChangePassword(t *testing.T) {
	user := newTestUser(t)
	user.ClearDomainEvents()

	require.NoError(t, user.ChangePassword("An0therSecret", plainHasher{}, DefaultPasswordPolicy()))
	assert.True(t, user.VerifyPassword("An0therSecret", plainHasher{}))

	events := user.DomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, EventUserPasswordChanged, events[0].Type)

	err := user.ChangePassword("weak", plainHasher{}, DefaultPasswordPolicy())
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))
}

func TestUserActivationIsIdempotent(t *testing.T) {
	user := newTestUser(t)
	user.ClearDomainEvents()

	require.NoError(t, user.Activate())
	assert.Empty(t, user.DomainEvents())

	require.NoError(t, user.Deactivate())
	require.Len(t, user.DomainEvents(), 1)
	assert.Equal(t, EventUserDeactivated, user.DomainEvents()[0].Type)
	assert.False(t, user.CanLogin())

	user.ClearDomainEvents()
	require.NoError(t, user.Deactivate())
	assert.Empty(t, user.DomainEvents())

	require.NoError(t, user.Activate())
	require.Len(t, user.DomainEvents(), 1)
	assert.Equal(t, EventUserActivated, user.DomainEvents()[0].Type)
	assert.True(t, user.CanLogin())
}

func TestUserRoleTransitions(t *testing.T) {
	user := newTestUser(t)
	user.ClearDomainEvents()

	err := user.DemoteToUser()
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))

	require.NoError(t, user.PromoteToAdmin("actor-1"))
	assert.True(t, user.IsAdmin())

	err = user.PromoteToAdmin("actor-1")
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))

	require.NoError(t, user.DemoteToUser())
	assert.Equal(t, RoleUser, user.Role)

	events := user.DomainEvents()
	require.Len(t, events, 2)
	assert.Equal(t, EventUserRolePromoted, events[0].Type)
	assert.Equal(t, EventUserRoleDemoted, events[1].Type)
}

func TestUserUpdateProfile(t *testing.T) {
	user := newTestUser(t)
	user.ClearDomainEvents()

	name := "Casey Ruiz"
	email := "new@example.com"
	require.NoError(t, user.UpdateProfile(&name, &email))
	assert.Equal(t, email, user.Email)
	require.Len(t, user.DomainEvents(), 1)

	user.ClearDomainEvents()
	require.NoError(t, user.UpdateProfile(nil, &email))
	assert.Empty(t, user.DomainEvents(), "unchanged email should not emit")

	err := user.UpdateProfile(nil, strptr("bad-email"))
	assert.True(t, apperrors.IsCode(err, "VALIDATION_FAILED"))
}

func TestUserUpdateUsername(t *testing.T) {
	user := newTestUser(t)
	user.ClearDomainEvents()

	require.NoError(t, user.UpdateUsername("casey_r"))
	assert.Empty(t, user.DomainEvents(), "same username should not emit")

	require.NoError(t, user.UpdateUsername("casey.ruiz"))
	require.Len(t, user.DomainEvents(), 1)
	assert.Equal(t, EventUserUsernameChanged, user.DomainEvents()[0].Type)
}

func TestUserDelete(t *testing.T) {
	user := newTestUser(t)
	user.ClearDomainEvents()

	user.Delete()
	require.True(t, user.IsDeleted)
	assert.False(t, user.CanLogin())
	require.Len(t, user.DomainEvents(), 1)
	assert.Equal(t, EventUserDeleted, user.DomainEvents()[0].Type)

	user.Delete()
	assert.Len(t, user.DomainEvents(), 1)

	err := user.Activate()
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))
}

func strptr(s string) *string { return &s }
