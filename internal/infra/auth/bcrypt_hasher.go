// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"faceauth/config"
	domainerrors "faceauth/internal/domain/errors"
	"faceauth/internal/domain/service"

	"golang.org/x/crypto/bcrypt"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// bcrypt draws a fresh random salt for every hash.
type bcryptHasher struct {
	cost   int
	policy *config.PasswordStrengthConfig
}

// NewBcryptHasher builds the hasher from the auth and passwordStrength sections.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	cost := bcrypt.DefaultCost
	if cfg != nil && cfg.Auth != nil && cfg.Auth.BcryptCost != 0 {
		cost = cfg.Auth.BcryptCost
	}

	var policy *config.PasswordStrengthConfig
	if cfg != nil {
		policy = cfg.PasswordStrength
	}

	return newBcryptHasher(cost, policy)
}

// NewBcryptHasherWithCost returns a hasher with the given cost and no strength policy.
func NewBcryptHasherWithCost(cost int) service.PasswordHasher {
	return newBcryptHasher(cost, nil)
}

func newBcryptHasher(cost int, policy *config.PasswordStrengthConfig) *bcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost, policy: policy}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
func (h *bcryptHasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	return string(bytes), nil
}

// Check compares a plaintext password with a bcrypt hash.
func (h *bcryptHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidatePasswordStrength enforces the configured policy. Without one every password passes.
func (h *bcryptHasher) ValidatePasswordStrength(password string) error {
	p := h.policy
	if p == nil {
		return nil
	}

	length := utf8.RuneCountInString(password)
	if p.MinLength > 0 && length < p.MinLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("must be at least " + strconv.Itoa(p.MinLength) + " characters long")
	}
	// bcrypt ignores everything past 72 bytes
	if p.MaxLength > 0 && length > p.MaxLength {
		return domainerrors.ErrPasswordStrength.WrapMessage("must be at most " + strconv.Itoa(p.MaxLength) + " characters long")
	}
	if p.RequireLowercase && !h.hasLowercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("must contain at least one lowercase letter")
	}
	if p.RequireUppercase && !h.hasUppercase(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("must contain at least one uppercase letter")
	}
	if p.RequireNumbers && !h.hasNumbers(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("must contain at least one number")
	}
	if p.RequireSpecial && !h.hasSpecialChars(password) {
		return domainerrors.ErrPasswordStrength.WrapMessage("must contain at least one special character")
	}
	if h.containsForbiddenWords(password, p.ForbiddenWords) {
		return domainerrors.ErrPasswordForbiddenWords.WrapMessage("contains forbidden words")
	}

	return nil
}

func (h *bcryptHasher) hasUppercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsUpper) >= 0
}

func (h *bcryptHasher) hasLowercase(s string) bool {
	return strings.IndexFunc(s, unicode.IsLower) >= 0
}

func (h *bcryptHasher) hasNumbers(s string) bool {
	return strings.IndexFunc(s, unicode.IsDigit) >= 0
}

func (h *bcryptHasher) hasSpecialChars(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsPunct(r) || unicode.IsSymbol(r)
	}) >= 0
}

func (h *bcryptHasher) containsForbiddenWords(s string, words []string) bool {
	lowered := strings.ToLower(s)
	for _, word := range words {
		if word != "" && strings.Contains(lowered, strings.ToLower(word)) {
			return true
		}
	}

	return false
}
