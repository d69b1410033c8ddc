package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/events"
	"github.com/spec-kit/helpdesk-core/internal/policy"
	"github.com/spec-kit/helpdesk-core/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

// UserService manages the user directory. Every operation is gated on
// the admin-only management policy.
type UserService struct {
	users      repository.UserRepository
	policy     *policy.AccessPolicy
	dispatcher events.Dispatcher
}

// UserDependencies bundles collaborators for the user service.
type UserDependencies struct {
	UserRepo   repository.UserRepository
	Policy     *policy.AccessPolicy
	Dispatcher events.Dispatcher
}

// NewUserService constructs the service.
func NewUserService(deps UserDependencies) *UserService {
	return &UserService{
		users:      deps.UserRepo,
		policy:     deps.Policy,
		dispatcher: deps.Dispatcher,
	}
}

// Create provisions a new active account. Fails with DUPLICATE_EMAIL
// when the email is already in the directory.
func (s *UserService) Create(ctx context.Context, principal *domain.Principal, name, email string, role domain.Role) (*domain.User, error) {
	if decision := s.policy.CanManageUsers(principal); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}

	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, apperrors.NewValidationError("name is required", nil)
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("a valid email is required", map[string]any{"email": email})
	}
	if !domain.ValidRole(role) {
		return nil, apperrors.NewValidationError("unknown role", map[string]any{"role": role})
	}

	user := &domain.User{
		Name:   name,
		Email:  email,
		Role:   role,
		Status: domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, principal, events.Event{
		Type:     events.EventUserCreated,
		EntityID: user.ID,
		Payload:  events.UserCreatedPayload{Name: user.Name, Role: user.Role},
	})
	return user, nil
}

// SetStatus activates or deactivates an account. Deactivation hides
// nothing: the user's historical ticket associations stay intact.
func (s *UserService) SetStatus(ctx context.Context, principal *domain.Principal, id string, status domain.UserStatus) (*domain.User, error) {
	if decision := s.policy.CanManageUsers(principal); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}
	if !domain.ValidUserStatus(status) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": status})
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	oldStatus := user.Status
	user.Status = status
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, principal, events.Event{
		Type:     events.EventUserStatusChanged,
		EntityID: user.ID,
		Payload: events.UserStatusChangedPayload{
			Name:      user.Name,
			OldStatus: oldStatus,
			NewStatus: status,
		},
	})
	return user, nil
}

// Delete removes an account from the directory. The user's tickets
// survive with an orphaned owner reference.
func (s *UserService) Delete(ctx context.Context, principal *domain.Principal, id string) error {
	if decision := s.policy.CanManageUsers(principal); !decision.Allowed {
		return apperrors.NewForbidden(decision.Reason)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, principal, events.Event{
		Type:     events.EventUserDeleted,
		EntityID: id,
		Payload:  events.UserDeletedPayload{Name: user.Name},
	})
	return nil
}

// Find searches the directory across name, email and role.
func (s *UserService) Find(ctx context.Context, principal *domain.Principal, filter repository.UserFilter) ([]domain.User, error) {
	if decision := s.policy.CanManageUsers(principal); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}
	return s.users.ListWithFilter(ctx, filter)
}

func (s *UserService) publishEvent(ctx context.Context, principal *domain.Principal, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.Actor = events.Actor{UserID: principal.UserID, Name: principal.Name, Role: principal.Role}
	_ = s.dispatcher.Publish(ctx, event)
}
