package service

import (
	"unicode"

	"github.com/storefront-api/internal/config"
)

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	if policy.MinLength <= 0 &&
		!policy.RequireUpper &&
		!policy.RequireLower &&
		!policy.RequireNumber &&
		!policy.RequireSpecial {
		return nil
	}

	if policy.MinLength > 0 {
		if len([]rune(password)) < policy.MinLength {
			return ErrWeakPassword.derive("error.password_min_length", policy.MinLength)
		}
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		default:
			hasSpecial = true
		}
	}

	return firstViolation(
		fieldRule{ok: !policy.RequireUpper || hasUpper, err: ErrWeakPassword.derive("error.password_require_upper")},
		fieldRule{ok: !policy.RequireLower || hasLower, err: ErrWeakPassword.derive("error.password_require_lower")},
		fieldRule{ok: !policy.RequireNumber || hasNumber, err: ErrWeakPassword.derive("error.password_require_number")},
		fieldRule{ok: !policy.RequireSpecial || hasSpecial, err: ErrWeakPassword.derive("error.password_require_special")},
	)
}
