package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/travelmate-app/travelmate-client/types"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestStorePersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("token-1"))
	require.NoError(t, s.SetUser(&types.User{ID: "user-1", Email: "alice@example.com"}))

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, "token-1", reopened.Token())
	require.NotNil(t, reopened.User())
	assert.Equal(t, "alice@example.com", reopened.User().Email)
}

func TestStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("token-1"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &doc))
	assert.Equal(t, "token-1", doc["access_token"])
}

func TestStoreClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.SetToken("token-1"))
	require.NoError(t, s.SetUser(&types.User{ID: "user-1"}))

	require.NoError(t, s.Clear())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())

	reopened, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, reopened.Token())
}

func TestStoreCorruptFileStartsFresh(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := Open(path)
	require.NoError(t, err)
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestTokenExpired(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_data.json")
	s, err := Open(path)
	require.NoError(t, err)

	now := time.Now()

	// No token stored
	assert.False(t, s.TokenExpired(now))

	// Valid for another hour
	require.NoError(t, s.SetToken(signedToken(t, now.Add(time.Hour))))
	assert.False(t, s.TokenExpired(now))

	// Expired an hour ago
	require.NoError(t, s.SetToken(signedToken(t, now.Add(-time.Hour))))
	assert.True(t, s.TokenExpired(now))

	// Opaque token without claims is treated as live
	require.NoError(t, s.SetToken("not-a-jwt"))
	assert.False(t, s.TokenExpired(now))
}
