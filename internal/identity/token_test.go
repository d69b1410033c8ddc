package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	principal := &domain.Principal{UserID: "u1", Name: "IT Support", Role: domain.RoleITSupport}

	token, expiresAt, err := tm.Generate(principal)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.False(t, expiresAt.IsZero())

	parsed, err := tm.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, principal.UserID, parsed.UserID)
	assert.Equal(t, principal.Name, parsed.Name)
	assert.Equal(t, principal.Role, parsed.Role)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	token, _, err := tm.Generate(&domain.Principal{UserID: "u1", Name: "x", Role: domain.RoleStaff})
	require.NoError(t, err)

	other := NewTokenManager("other-secret", 60)
	_, err = other.Parse(token)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAuthFailed))
}

func TestTokenRejectsGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret", 60)
	_, err := tm.Parse("not-a-token")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAuthFailed))
}
