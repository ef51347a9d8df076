// internal/pkg/password/policy.go
package password

import (
	"strings"
	"unicode"

	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
)

const specialChars = "!@#$%^&*()_+-=[]{}|;:,.<>?"

// ValidatePassword enforces the account password policy: 8-128 characters
// with at least one uppercase letter, one lowercase letter, one digit and
// one special character.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return xerrors.Validation("Password must be at least 8 characters")
	}
	if len(password) > 128 {
		return xerrors.Validation("Password must be less than 128 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range password {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		}
		if strings.ContainsRune(specialChars, c) {
			hasSpecial = true
		}
	}

	if !hasUpper {
		return xerrors.Validation("Password must contain uppercase letter")
	}
	if !hasLower {
		return xerrors.Validation("Password must contain lowercase letter")
	}
	if !hasDigit {
		return xerrors.Validation("Password must contain number")
	}
	if !hasSpecial {
		return xerrors.Validation("Password must contain special character")
	}
	return nil
}
