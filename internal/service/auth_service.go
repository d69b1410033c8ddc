package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/events"
	"github.com/spec-kit/helpdesk-core/internal/identity"
)

// AuthService coordinates the login flow: credential resolution,
// session token issue and the post-login navigation target.
type AuthService struct {
	verifier   identity.Verifier
	tokens     *identity.TokenManager
	dispatcher events.Dispatcher
}

// NewAuthService builds the service.
func NewAuthService(verifier identity.Verifier, tokens *identity.TokenManager, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{verifier: verifier, tokens: tokens, dispatcher: dispatcher}
}

// LoginResult carries everything a caller needs after a successful login.
type LoginResult struct {
	Principal *domain.Principal
	Token     string
	ExpiresAt time.Time
	Route     string
}

// Login resolves the credential to a principal and issues a session
// token. The verifier handles lastLogin bookkeeping and fails closed
// on empty or malformed input.
func (s *AuthService) Login(ctx context.Context, cred identity.Credential) (*LoginResult, error) {
	principal, err := s.verifier.Verify(ctx, cred)
	if err != nil {
		return nil, err
	}

	token, expiresAt, err := s.tokens.Generate(principal)
	if err != nil {
		return nil, err
	}
	route := identity.DashboardRoute(principal.Role)

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserLoggedIn,
			EntityID:  principal.UserID,
			Actor:     events.Actor{UserID: principal.UserID, Name: principal.Name, Role: principal.Role},
			Timestamp: time.Now(),
			Payload: events.UserLoggedInPayload{
				Name:  principal.Name,
				Role:  principal.Role,
				Route: route,
			},
		})
	}

	return &LoginResult{
		Principal: principal,
		Token:     token,
		ExpiresAt: expiresAt,
		Route:     route,
	}, nil
}
