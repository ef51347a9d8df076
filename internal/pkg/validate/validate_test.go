// internal/pkg/validate/validate_test.go
package validate_test

import (
	"testing"

	"github.com/swayamn72/Aegis2.0/internal/pkg/validate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	for _, email := range []string{"a@b.co", "first.last@sub.example.com", "x+tag@example.io"} {
		assert.NoError(t, validate.Email(email), email)
	}
	for _, email := range []string{"", "plain", "no@dot", "two words@example.com", "@example.com"} {
		err := validate.Email(email)
		require.Error(t, err, email)
		assert.EqualError(t, err, "Invalid email format")
	}
}

func TestUsername(t *testing.T) {
	for _, name := range []string{"abc", "player_one", "the-dash", "Abc123"} {
		assert.NoError(t, validate.Username(name), name)
	}

	tests := []struct {
		name     string
		username string
		message  string
	}{
		{"too short", "ab", "Username must be at least 3 characters"},
		{"too long", "abcdefghijklmnopqrstuvwxyz12345", "Username must be less than 30 characters"},
		{"spaces", "two words", "Username can only contain letters, numbers, underscore, and dash"},
		{"punctuation", "nope!", "Username can only contain letters, numbers, underscore, and dash"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.Username(tc.username)
			require.Error(t, err)
			assert.EqualError(t, err, tc.message)
		})
	}
}
