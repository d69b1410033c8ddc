package identity

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "nested", "session"))

	require.NoError(t, store.Save("token-value"))
	token, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "token-value", token)

	require.NoError(t, store.Clear())
	_, err = store.Load()
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAuthFailed))
}

func TestSessionStoreClearIsIdempotent(t *testing.T) {
	store := NewSessionStore(filepath.Join(t.TempDir(), "session"))
	assert.NoError(t, store.Clear())
}
