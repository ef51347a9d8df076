// internal/pkg/password/hasher_test.go
package password_test

import (
	"strings"
	"testing"

	xerrors "github.com/swayamn72/Aegis2.0/internal/pkg/errors"
	"github.com/swayamn72/Aegis2.0/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash(t *testing.T) {
	hasher := password.NewHasher()

	t.Run("produces argon2id PHC string", func(t *testing.T) {
		hash, err := hasher.Hash("Abcdef1!")
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(hash, "$argon2id$"))
	})

	t.Run("same password produces different hashes", func(t *testing.T) {
		hash1, err := hasher.Hash("Abcdef1!")
		require.NoError(t, err)
		hash2, err := hasher.Hash("Abcdef1!")
		require.NoError(t, err)
		assert.NotEqual(t, hash1, hash2)
	})

	t.Run("rejects weak password", func(t *testing.T) {
		_, err := hasher.Hash("short")
		require.Error(t, err)
		msg, ok := xerrors.AsValidation(err)
		require.True(t, ok)
		assert.Equal(t, "Password must be at least 8 characters", msg)
	})
}

func TestVerify(t *testing.T) {
	hasher := password.NewHasher()

	t.Run("correct password verifies", func(t *testing.T) {
		hash, err := hasher.Hash("Correct1!pass")
		require.NoError(t, err)
		assert.True(t, hasher.Verify("Correct1!pass", hash))
	})

	t.Run("incorrect password fails", func(t *testing.T) {
		hash, err := hasher.Hash("Correct1!pass")
		require.NoError(t, err)
		assert.False(t, hasher.Verify("Wrong1!password", hash))
	})

	t.Run("malformed hash fails without error", func(t *testing.T) {
		assert.False(t, hasher.Verify("Correct1!pass", "not-a-hash"))
		assert.False(t, hasher.Verify("Correct1!pass", ""))
		assert.False(t, hasher.Verify("Correct1!pass", "$argon2id$v=19$garbage"))
	})

	t.Run("bcrypt-format hash fails without error", func(t *testing.T) {
		assert.False(t, hasher.Verify("Correct1!pass", "$2a$10$N9qo8uLOickgx2ZMRZoMye"))
	})

	t.Run("hostile parameters fail without panicking", func(t *testing.T) {
		hash, err := hasher.Hash("Correct1!pass")
		require.NoError(t, err)
		parts := strings.Split(hash, "$")
		salt, key := parts[4], parts[5]

		cases := []struct {
			name   string
			params string
		}{
			{"zero rounds", "m=65536,t=0,p=4"},
			{"zero parallelism", "m=65536,t=1,p=0"},
			{"zero memory", "m=0,t=1,p=4"},
			{"absurd memory", "m=4294967295,t=1,p=4"},
			{"absurd parallelism", "m=65536,t=1,p=70000"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				crafted := "$argon2id$v=19$" + tc.params + "$" + salt + "$" + key
				assert.False(t, hasher.Verify("Correct1!pass", crafted))
			})
		}
	})
}

func TestValidatePassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantMsg  string
	}{
		{"too short", "Ab1!", "Password must be at least 8 characters"},
		{"too long", strings.Repeat("Ab1!", 40), "Password must be less than 128 characters"},
		{"no uppercase", "abcdef1!", "Password must contain uppercase letter"},
		{"no lowercase", "ABCDEF1!", "Password must contain lowercase letter"},
		{"no digit", "Abcdefg!", "Password must contain number"},
		{"no special", "Abcdefg1", "Password must contain special character"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := password.ValidatePassword(tc.password)
			require.Error(t, err)
			msg, ok := xerrors.AsValidation(err)
			require.True(t, ok)
			assert.Equal(t, tc.wantMsg, msg)
		})
	}

	t.Run("accepts compliant password", func(t *testing.T) {
		assert.NoError(t, password.ValidatePassword("Abcdef1!"))
	})
}
