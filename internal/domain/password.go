package domain

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "github.com/spec-kit/pet-service/pkg/util"
)

// PasswordHasher is the hashing capability the domain expects from the
// infrastructure layer.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hashed string) bool
}

// PasswordPolicy encapsulates the password strength rules. All violated
// rules are reported together, not just the first.
type PasswordPolicy struct {
	MinLength         int
	MaxLength         int
	RequireUppercase  bool
	RequireLowercase  bool
	RequireDigit      bool
	RequireSpecial    bool
	SpecialCharacters string
}

// DefaultPasswordPolicy mirrors the service's standard rules.
func DefaultPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{
		MinLength:         8,
		MaxLength:         128,
		RequireUppercase:  true,
		RequireLowercase:  true,
		RequireDigit:      true,
		RequireSpecial:    false,
		SpecialCharacters: "!@#$%^&*()_+-=[]{}|;:,.<>?",
	}
}

// Validate checks the password against every rule and returns a policy
// violation listing all failed rules, or nil.
func (p *PasswordPolicy) Validate(password string) error {
	reasons := []string{}

	if len(password) < p.MinLength {
		reasons = append(reasons, fmt.Sprintf("must be at least %d characters long", p.MinLength))
	}
	if p.MaxLength > 0 && len(password) > p.MaxLength {
		reasons = append(reasons, fmt.Sprintf("must not exceed %d characters", p.MaxLength))
	}
	if p.RequireUppercase && !strings.ContainsFunc(password, unicode.IsUpper) {
		reasons = append(reasons, "must contain an uppercase letter")
	}
	if p.RequireLowercase && !strings.ContainsFunc(password, unicode.IsLower) {
		reasons = append(reasons, "must contain a lowercase letter")
	}
	if p.RequireDigit && !strings.ContainsFunc(password, unicode.IsDigit) {
		reasons = append(reasons, "must contain a digit")
	}
	if p.RequireSpecial && !strings.ContainsAny(password, p.SpecialCharacters) {
		reasons = append(reasons, "must contain a special character")
	}

	if len(reasons) > 0 {
		return apperrors.NewPolicyViolation("password too weak", map[string]any{"reasons": reasons})
	}
	return nil
}

// IsValid reports validity without surfacing the reasons.
func (p *PasswordPolicy) IsValid(password string) bool {
	return p.Validate(password) == nil
}
