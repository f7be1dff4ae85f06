package user_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valutatrade-hub/valutatrade/pkg/user"
)

func TestNewHashesPassword(t *testing.T) {
	u, err := user.New("alice", "1234", 1)
	require.NoError(t, err)

	assert.Equal(t, "alice", u.Username)
	assert.NotEqual(t, "1234", u.HashedPassword)
	assert.Len(t, u.Salt, 16, "8 random bytes hex-encoded")
	assert.Len(t, u.HashedPassword, 64, "sha256 hex digest")
	assert.False(t, u.RegisteredAt.IsZero())
}

func TestVerifyPassword(t *testing.T) {
	u, err := user.New("alice", "s3cret", 1)
	require.NoError(t, err)

	assert.True(t, u.VerifyPassword("s3cret"))
	assert.False(t, u.VerifyPassword("wrong"))
	assert.False(t, u.VerifyPassword(""))
}

func TestSaltMakesHashesDiffer(t *testing.T) {
	a, err := user.New("alice", "same", 1)
	require.NoError(t, err)
	b, err := user.New("bobby", "same", 2)
	require.NoError(t, err)

	assert.NotEqual(t, a.HashedPassword, b.HashedPassword)
}

func TestChangePassword(t *testing.T) {
	u, err := user.New("alice", "old-pass", 1)
	require.NoError(t, err)

	require.NoError(t, u.ChangePassword("new-pass"))
	assert.True(t, u.VerifyPassword("new-pass"))
	assert.False(t, u.VerifyPassword("old-pass"))

	assert.Error(t, u.ChangePassword("no"))
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, user.ValidateUsername("bob42"))
	assert.Error(t, user.ValidateUsername("ab"))
	assert.Error(t, user.ValidateUsername("this_has_underscores"))
	assert.Error(t, user.ValidateUsername("waaaaaaaaaaaaaaaaaaaaaytoolong"))
	assert.Error(t, user.ValidateUsername(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, user.ValidatePassword("1234"))
	assert.Error(t, user.ValidatePassword("123"))
	assert.Error(t, user.ValidatePassword("   "))
}

// The persisted field names are a compatibility contract with the historical
// users.json layout.
func TestJSONFieldNames(t *testing.T) {
	u, err := user.New("alice", "1234", 7)
	require.NoError(t, err)

	data, err := json.Marshal(u)
	require.NoError(t, err)

	var raw map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"user_id", "username", "hashed_password", "salt", "registration_date"} {
		assert.Contains(t, raw, key)
	}
}
