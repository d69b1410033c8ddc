package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

// UserFilter captures directory search parameters. Text matches
// case-insensitively as a substring across name, email and role.
type UserFilter struct {
	Text string
}

// UserRepository defines access to the in-memory user directory.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Delete(ctx context.Context, id string) error
	ListWithFilter(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Count(ctx context.Context) int
}

type userRepository struct {
	mu      sync.RWMutex
	records map[string]*domain.User
	byEmail map[string]string
	order   []string
}

// NewUserRepository returns an empty in-memory directory.
func NewUserRepository() UserRepository {
	return &userRepository{
		records: make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

// Create adds a user, enforcing email uniqueness. An empty ID gets a
// generated one; preset IDs (seed data) are honored.
func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := normalizeEmail(user.Email)
	if _, exists := r.byEmail[email]; exists {
		return apperrors.NewDuplicateEmail(user.Email)
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	} else if _, exists := r.records[user.ID]; exists {
		return apperrors.NewConflict("user id already exists", map[string]any{"id": user.ID})
	}
	if user.JoinedDate.IsZero() {
		user.JoinedDate = time.Now()
	}
	user.Version = 1

	stored := *user
	r.records[user.ID] = &stored
	r.byEmail[email] = user.ID
	r.order = append(r.order, user.ID)
	return nil
}

// Update rewrites a user record with an optimistic version check.
func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.records[user.ID]
	if !ok {
		return apperrors.NewNotFound("user", map[string]any{"id": user.ID})
	}
	if current.Version != user.Version {
		return apperrors.NewConflict("user was modified concurrently", map[string]any{"id": user.ID})
	}
	if normalizeEmail(user.Email) != normalizeEmail(current.Email) {
		email := normalizeEmail(user.Email)
		if owner, exists := r.byEmail[email]; exists && owner != user.ID {
			return apperrors.NewDuplicateEmail(user.Email)
		}
		delete(r.byEmail, normalizeEmail(current.Email))
		r.byEmail[email] = user.ID
	}

	user.Version++
	stored := *user
	r.records[user.ID] = &stored
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.records[id]
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	copied := *user
	return &copied, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
	}
	copied := *r.records[id]
	return &copied, nil
}

// Delete removes a user. A second delete of the same id fails with
// NOT_FOUND; deletion is not idempotent.
func (r *userRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.records[id]
	if !ok {
		return apperrors.NewNotFound("user", map[string]any{"id": id})
	}
	delete(r.records, id)
	delete(r.byEmail, normalizeEmail(user.Email))
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ListWithFilter returns users in creation order.
func (r *userRepository) ListWithFilter(_ context.Context, filter UserFilter) ([]domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	text := strings.ToLower(strings.TrimSpace(filter.Text))
	result := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		user := r.records[id]
		if text != "" {
			name := strings.ToLower(user.Name)
			email := strings.ToLower(user.Email)
			role := strings.ToLower(string(user.Role))
			if !strings.Contains(name, text) && !strings.Contains(email, text) && !strings.Contains(role, text) {
				continue
			}
		}
		result = append(result, *user)
	}
	return result, nil
}

func (r *userRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
