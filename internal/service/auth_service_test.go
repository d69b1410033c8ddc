package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/events"
	"github.com/spec-kit/helpdesk-core/internal/identity"
	"github.com/spec-kit/helpdesk-core/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

func newAuthFixture(t *testing.T) (*AuthService, *identity.TokenManager, repository.UserRepository, *[]events.Event) {
	t.Helper()
	userRepo := repository.NewUserRepository()
	require.NoError(t, userRepo.Create(context.Background(), &domain.User{
		ID: "u1", Name: "John Smith", Email: "john.smith@company.com",
		Role: domain.RoleStaff, Status: domain.UserStatusActive,
	}))

	published := []events.Event{}
	dispatcher := events.NewInMemoryDispatcher()
	dispatcher.Subscribe(events.EventUserLoggedIn, func(_ context.Context, event events.Event) error {
		published = append(published, event)
		return nil
	})

	tokens := identity.NewTokenManager("test-secret", 60)
	svc := NewAuthService(identity.NewDemoVerifier(userRepo), tokens, dispatcher)
	return svc, tokens, userRepo, &published
}

func TestLoginIssuesParseableTokenAndRoute(t *testing.T) {
	svc, tokens, _, published := newAuthFixture(t)

	result, err := svc.Login(context.Background(), identity.Credential{
		Email:  "john.smith@company.com",
		Secret: "demo123",
	})
	require.NoError(t, err)
	assert.Equal(t, "/dashboard/staff", result.Route)
	assert.False(t, result.ExpiresAt.IsZero())

	principal, err := tokens.Parse(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", principal.UserID)
	assert.Equal(t, domain.RoleStaff, principal.Role)

	require.Len(t, *published, 1)
	assert.Equal(t, events.EventUserLoggedIn, (*published)[0].Type)
}

func TestLoginRecordsLastLogin(t *testing.T) {
	svc, _, userRepo, _ := newAuthFixture(t)

	_, err := svc.Login(context.Background(), identity.Credential{
		Email:  "john.smith@company.com",
		Secret: "demo123",
	})
	require.NoError(t, err)

	user, err := userRepo.GetByEmail(context.Background(), "john.smith@company.com")
	require.NoError(t, err)
	assert.NotNil(t, user.LastLogin)
}

func TestLoginUnknownEmailGetsHeuristicRole(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	result, err := svc.Login(context.Background(), identity.Credential{
		Email:  "support@company.com",
		Secret: "demo123",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleITSupport, result.Principal.Role)
	assert.Equal(t, "/dashboard/it-support", result.Route)
}

func TestLoginFailsClosedOnEmptyCredential(t *testing.T) {
	svc, _, _, published := newAuthFixture(t)

	_, err := svc.Login(context.Background(), identity.Credential{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAuthFailed))
	assert.Empty(t, *published)
}
