package repository

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

// DeletedOwnerPlaceholder is the display name reported for tickets whose
// owner no longer exists in the directory. Deleting a user never deletes
// their tickets.
const DeletedOwnerPlaceholder = "Deleted User"

// OwnerNameFunc resolves a user id to a display name for text search.
// Implementations must return DeletedOwnerPlaceholder for unknown ids.
type OwnerNameFunc func(userID string) string

// TicketFilter captures search parameters. Omitted fields match all;
// present fields compose with logical AND.
type TicketFilter struct {
	Text     string
	Status   *domain.TicketStatus
	Priority *domain.TicketPriority
	OwnerID  *string
}

// TicketRepository encapsulates ticket storage.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.Ticket) error
	Update(ctx context.Context, ticket *domain.Ticket) error
	GetByID(ctx context.Context, id string) (*domain.Ticket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.Ticket, error)
	Count(ctx context.Context) int
}

// ticketRepository is a volatile in-memory store. All state resets with
// the process; a mutex guards the maps so the store stays safe if a
// future caller introduces concurrent sessions.
type ticketRepository struct {
	mu        sync.RWMutex
	records   map[string]*domain.Ticket
	order     []string
	nextSeq   int
	ownerName OwnerNameFunc
}

// NewTicketRepository instantiates an empty in-memory store. ownerName
// is consulted for free-text matching against owner display names.
func NewTicketRepository(ownerName OwnerNameFunc) TicketRepository {
	if ownerName == nil {
		ownerName = func(string) string { return DeletedOwnerPlaceholder }
	}
	return &ticketRepository{
		records:   make(map[string]*domain.Ticket),
		nextSeq:   1,
		ownerName: ownerName,
	}
}

// Create stores a new ticket. An empty ID is assigned the next TKT-###
// identifier; preset IDs (seed data) are honored and advance the
// sequence past their numeric suffix so later assignments cannot collide.
func (r *ticketRepository) Create(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if ticket.ID == "" {
		ticket.ID = fmt.Sprintf("TKT-%03d", r.nextSeq)
		r.nextSeq++
	} else {
		if _, exists := r.records[ticket.ID]; exists {
			return apperrors.NewConflict("ticket id already exists", map[string]any{"id": ticket.ID})
		}
		if seq, ok := ticketSeq(ticket.ID); ok && seq >= r.nextSeq {
			r.nextSeq = seq + 1
		}
	}

	now := time.Now()
	if ticket.CreatedAt.IsZero() {
		ticket.CreatedAt = now
	}
	if ticket.UpdatedAt.IsZero() {
		ticket.UpdatedAt = ticket.CreatedAt
	}
	ticket.Version = 1

	stored := *ticket
	r.records[ticket.ID] = &stored
	r.order = append(r.order, ticket.ID)
	return nil
}

// Update rewrites a ticket record, refreshing UpdatedAt. The caller's
// Version must match the stored one; the write bumps it.
func (r *ticketRepository) Update(_ context.Context, ticket *domain.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.records[ticket.ID]
	if !ok {
		return apperrors.NewNotFound("ticket", map[string]any{"id": ticket.ID})
	}
	if current.Version != ticket.Version {
		return apperrors.NewConflict("ticket was modified concurrently", map[string]any{"id": ticket.ID})
	}

	ticket.UpdatedAt = time.Now()
	ticket.Version++
	stored := *ticket
	r.records[ticket.ID] = &stored
	return nil
}

func (r *ticketRepository) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ticket, ok := r.records[id]
	if !ok {
		return nil, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	copied := *ticket
	return &copied, nil
}

// ListWithFilter returns matching tickets ordered by CreatedAt
// descending, preserving creation order on ties.
func (r *ticketRepository) ListWithFilter(_ context.Context, filter TicketFilter) ([]domain.Ticket, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Ticket, 0, len(r.order))
	for _, id := range r.order {
		ticket := r.records[id]
		if r.matches(ticket, filter) {
			result = append(result, *ticket)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (r *ticketRepository) Count(_ context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.records)
}

func (r *ticketRepository) matches(ticket *domain.Ticket, filter TicketFilter) bool {
	if filter.Status != nil && ticket.Status != *filter.Status {
		return false
	}
	if filter.Priority != nil && ticket.Priority != *filter.Priority {
		return false
	}
	if filter.OwnerID != nil && ticket.OwnerID != *filter.OwnerID {
		return false
	}
	if text := strings.ToLower(strings.TrimSpace(filter.Text)); text != "" {
		title := strings.ToLower(ticket.Title)
		id := strings.ToLower(ticket.ID)
		owner := strings.ToLower(r.ownerName(ticket.OwnerID))
		if !strings.Contains(title, text) && !strings.Contains(id, text) && !strings.Contains(owner, text) {
			return false
		}
	}
	return true
}

func ticketSeq(id string) (int, bool) {
	const prefix = "TKT-"
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	seq, err := strconv.Atoi(strings.TrimPrefix(id, prefix))
	if err != nil {
		return 0, false
	}
	return seq, true
}
