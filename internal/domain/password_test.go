package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// plainHasher is a transparent stand-in for bcrypt in tests.
type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }
func (plainHasher) Verify(plain, hashed string) bool  { return hashed == "hashed:"+plain }

func TestPasswordPolicyAccepts(t *testing.T) {
	policy := DefaultPasswordPolicy()
	assert.NoError(t, policy.Validate("Sup3rSecret"))
	assert.True(t, policy.IsValid("Sup3rSecret"))
}

func TestPasswordPolicyReportsAllViolations(t *testing.T) {
	policy := DefaultPasswordPolicy()

	err := policy.Validate("ab")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, "POLICY_VIOLATION"))

	domainErr := apperrors.ToDomainError(err)
	reasons, ok := domainErr.Details["reasons"].([]string)
	require.True(t, ok)
	// too short, no uppercase, no digit
	assert.Len(t, reasons, 3)
}

func TestPasswordPolicyMaxLength(t *testing.T) {
	policy := DefaultPasswordPolicy()
	long := "Aa1" + strings.Repeat("x", policy.MaxLength)
	assert.Error(t, policy.Validate(long))
}

func TestPasswordPolicyRequireSpecial(t *testing.T) {
	policy := DefaultPasswordPolicy()
	policy.RequireSpecial = true

	assert.Error(t, policy.Validate("Sup3rSecret"))
	assert.NoError(t, policy.Validate("Sup3rSecret!"))
}
