// internal/pkg/validate/validate.go
package validate

import (
	"regexp"
	"unicode"

	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks the address shape. Deliverability is the mailer's problem.
func Email(email string) error {
	if !emailRe.MatchString(email) {
		return xerrors.Validation("Invalid email format")
	}
	return nil
}

// Username enforces 3-30 characters from letters, digits, underscore and
// dash.
func Username(username string) error {
	if len(username) < 3 {
		return xerrors.Validation("Username must be at least 3 characters")
	}
	if len(username) > 30 {
		return xerrors.Validation("Username must be less than 30 characters")
	}
	for _, c := range username {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' && c != '-' {
			return xerrors.Validation("Username can only contain letters, numbers, underscore, and dash")
		}
	}
	return nil
}
