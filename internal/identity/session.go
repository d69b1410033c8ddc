package identity

import (
	"os"
	"path/filepath"
	"strings"

	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

// SessionStore persists the signed session token between command
// invocations. Only the principal crosses invocations this way; the
// dataset itself is volatile.
type SessionStore struct {
	path string
}

// NewSessionStore builds a store writing to the given file path.
func NewSessionStore(path string) *SessionStore {
	return &SessionStore{path: path}
}

// Save writes the token, creating parent directories as needed.
func (s *SessionStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token+"\n"), 0o600)
}

// Load returns the stored token, or AUTH_FAILED when no session exists.
func (s *SessionStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewAuthError("no active session; run login first")
		}
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", apperrors.NewAuthError("no active session; run login first")
	}
	return token, nil
}

// Clear removes the stored session. Clearing an absent session is not
// an error.
func (s *SessionStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
