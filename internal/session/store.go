// Package session holds the locally persisted login state (access token and
// cached user) and the in-process state consumed by the UI layer.
package session

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/travelmate-app/travelmate-client/errors"
	"github.com/travelmate-app/travelmate-client/logger"
	"github.com/travelmate-app/travelmate-client/types"
)

// storeData is the on-disk session document.
type storeData struct {
	AccessToken string      `json:"access_token"`
	User        *types.User `json:"user,omitempty"`
}

// Store persists the session as a single JSON file, read fully at open and
// rewritten fully on every mutation. It implements apiclient.TokenSource.
type Store struct {
	path string
	mu   sync.Mutex
	data storeData
}

// Open loads the session file at path, starting fresh if it does not exist
// or cannot be parsed.
func Open(path string) (*Store, error) {
	s := &Store{path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, errors.ServerError, "failed to read session file")
	}

	if err := json.Unmarshal(raw, &s.data); err != nil {
		logger.GetLogger().Warnw("Session file is corrupt, starting fresh",
			"path", path,
			"error", err)
		s.data = storeData{}
	}
	return s, nil
}

// Token returns the stored access token, or "" when not logged in.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.AccessToken
}

// SetToken stores a new access token and persists the session.
func (s *Store) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.AccessToken = token
	return s.save()
}

// User returns the cached user, or nil.
func (s *Store) User() *types.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.User
}

// SetUser caches the user profile and persists the session.
func (s *Store) SetUser(user *types.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.User = user
	return s.save()
}

// Clear wipes the stored token and user. Called on logout.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = storeData{}
	return s.save()
}

// TokenExpired reports whether the stored token carries an exp claim in the
// past. The claim is read without signature verification; this is only a
// hint to prompt re-login early, the backend remains the authority.
func (s *Store) TokenExpired(now time.Time) bool {
	token := s.Token()
	if token == "" {
		return false
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return false
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ServerError, "failed to encode session")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		logger.GetLogger().Errorw("Failed to save session file",
			"path", s.path,
			"error", err)
		return errors.Wrap(err, errors.ServerError, "failed to save session")
	}
	return nil
}
