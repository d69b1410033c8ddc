package identity

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

// timeNow is swapped in tests.
var timeNow = time.Now

// Credential is what a caller presents at login. The secret's content
// is never inspected beyond presence; there is no real verification.
type Credential struct {
	Email  string
	Secret string
}

// Verifier resolves a credential to a session principal. Swapping this
// interface is the intended path to a real directory lookup; callers
// never depend on the demo heuristic below.
type Verifier interface {
	Verify(ctx context.Context, cred Credential) (*domain.Principal, error)
}

// DemoVerifier derives the role from the credential's text: an email
// containing "admin" maps to admin, "support" to it_support, anything
// else to staff. This is a demo placeholder, not authentication.
type DemoVerifier struct {
	users repository.UserRepository
}

// NewDemoVerifier builds a verifier over the given directory.
func NewDemoVerifier(users repository.UserRepository) *DemoVerifier {
	return &DemoVerifier{users: users}
}

// Verify fails closed on empty fields, refuses deactivated accounts,
// records LastLogin on matched directory users, and synthesizes a
// session-only principal when the email is unknown.
func (v *DemoVerifier) Verify(ctx context.Context, cred Credential) (*domain.Principal, error) {
	email := strings.TrimSpace(cred.Email)
	if email == "" || strings.TrimSpace(cred.Secret) == "" {
		return nil, apperrors.NewAuthError("email and password are required")
	}

	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.HasCode(err, apperrors.CodeNotFound) {
			return synthesizePrincipal(email), nil
		}
		return nil, err
	}
	if user.Status != domain.UserStatusActive {
		return nil, apperrors.NewAuthError("account is deactivated")
	}

	if err := v.touchLastLogin(ctx, user); err != nil {
		return nil, err
	}
	return &domain.Principal{UserID: user.ID, Name: user.Name, Role: user.Role}, nil
}

func (v *DemoVerifier) touchLastLogin(ctx context.Context, user *domain.User) error {
	now := timeNow()
	user.LastLogin = &now
	return v.users.Update(ctx, user)
}

func synthesizePrincipal(email string) *domain.Principal {
	role := inferRole(email)
	return &domain.Principal{
		UserID: uuid.NewString(),
		Name:   displayNameFor(role),
		Role:   role,
	}
}

func inferRole(email string) domain.Role {
	lowered := strings.ToLower(email)
	switch {
	case strings.Contains(lowered, "admin"):
		return domain.RoleAdmin
	case strings.Contains(lowered, "support"):
		return domain.RoleITSupport
	default:
		return domain.RoleStaff
	}
}

func displayNameFor(role domain.Role) string {
	switch role {
	case domain.RoleAdmin:
		return "Admin User"
	case domain.RoleITSupport:
		return "IT Support"
	default:
		return "Staff Member"
	}
}

// DashboardRoute returns the navigation target for a role, e.g.
// /dashboard/it-support.
func DashboardRoute(role domain.Role) string {
	return "/dashboard/" + strings.ReplaceAll(string(role), "_", "-")
}
