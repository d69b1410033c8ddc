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

// TicketService coordinates ticket workflows: creation, lifecycle
// transitions, resolution notes and role-scoped queries.
type TicketService struct {
	tickets    repository.TicketRepository
	users      repository.UserRepository
	policy     *policy.AccessPolicy
	dispatcher events.Dispatcher
}

// TicketDependencies bundles collaborators for the ticket service.
type TicketDependencies struct {
	TicketRepo repository.TicketRepository
	UserRepo   repository.UserRepository
	Policy     *policy.AccessPolicy
	Dispatcher events.Dispatcher
}

// TicketCreateInput describes the ticket creation payload.
type TicketCreateInput struct {
	Title       string
	Description string
	Category    domain.TicketCategory
	Priority    domain.TicketPriority
}

// TicketView is a ticket with its owner resolved for display. Tickets
// whose owner has been deleted resolve to a placeholder name.
type TicketView struct {
	domain.Ticket
	OwnerName string
}

// NewTicketService constructs the service.
func NewTicketService(deps TicketDependencies) *TicketService {
	return &TicketService{
		tickets:    deps.TicketRepo,
		users:      deps.UserRepo,
		policy:     deps.Policy,
		dispatcher: deps.Dispatcher,
	}
}

// Create opens a new ticket owned by the principal. The owner must
// exist in the directory; the owner's ticketsCreated counter advances.
func (s *TicketService) Create(ctx context.Context, principal *domain.Principal, input TicketCreateInput) (*domain.Ticket, error) {
	if decision := s.policy.CanMutateTicket(principal, policy.OpCreateTicket); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}

	title := strings.TrimSpace(input.Title)
	description := strings.TrimSpace(input.Description)
	if title == "" {
		return nil, apperrors.NewValidationError("title is required", nil)
	}
	if description == "" {
		return nil, apperrors.NewValidationError("description is required", nil)
	}
	if !domain.ValidCategory(input.Category) {
		return nil, apperrors.NewValidationError("unknown category", map[string]any{"category": input.Category})
	}
	if !domain.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidationError("priority is required", map[string]any{"priority": input.Priority})
	}

	owner, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	ticket := &domain.Ticket{
		Title:       title,
		Description: description,
		Category:    input.Category,
		Priority:    input.Priority,
		Status:      domain.TicketStatusOpen,
		OwnerID:     owner.ID,
	}
	if err := s.tickets.Create(ctx, ticket); err != nil {
		return nil, err
	}

	owner.TicketsCreated++
	if err := s.users.Update(ctx, owner); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, principal, events.Event{
		Type:     events.EventTicketCreated,
		EntityID: ticket.ID,
		Payload: events.TicketCreatedPayload{
			Title:    ticket.Title,
			Category: ticket.Category,
			Priority: ticket.Priority,
		},
	})
	return ticket, nil
}

// Transition moves a ticket along the lifecycle. Permitted edges are
// open→in_progress, open→resolved and in_progress→resolved; resolved
// and closed are terminal, and same-state transitions are rejected.
func (s *TicketService) Transition(ctx context.Context, principal *domain.Principal, ticketID string, next domain.TicketStatus) (*domain.Ticket, error) {
	if decision := s.policy.CanMutateTicket(principal, policy.OpTransition); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}
	if !domain.ValidStatus(next) {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": next})
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if !isValidTransition(ticket.Status, next) {
		return nil, apperrors.NewInvalidTransition(string(ticket.Status), string(next))
	}

	oldStatus := ticket.Status
	ticket.Status = next
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, principal, events.Event{
		Type:     events.EventTicketStatusChanged,
		EntityID: ticket.ID,
		Payload: events.TicketStatusChangedPayload{
			OldStatus: oldStatus,
			NewStatus: next,
		},
	})
	return ticket, nil
}

// SetResolution attaches resolution notes to a ticket. Allowed while
// the ticket is open, in progress or resolved; it never changes the
// status, only refreshes updatedAt.
func (s *TicketService) SetResolution(ctx context.Context, principal *domain.Principal, ticketID, text string) (*domain.Ticket, error) {
	if decision := s.policy.CanMutateTicket(principal, policy.OpSetResolution); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, apperrors.NewValidationError("resolution text is required", nil)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Status == domain.TicketStatusClosed {
		return nil, apperrors.NewValidationError("cannot edit resolution of a closed ticket",
			map[string]any{"id": ticket.ID, "status": ticket.Status})
	}

	ticket.Resolution = text
	if err := s.tickets.Update(ctx, ticket); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, principal, events.Event{
		Type:     events.EventTicketResolutionUpdated,
		EntityID: ticket.ID,
		Payload: events.TicketResolutionUpdatedPayload{
			Preview: stringPreview(text, 120),
		},
	})
	return ticket, nil
}

// Get fetches a single ticket, enforcing visibility.
func (s *TicketService) Get(ctx context.Context, principal *domain.Principal, ticketID string) (*TicketView, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if decision := s.policy.CanViewTicket(principal, ticket); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}
	view := s.toView(ctx, *ticket)
	return &view, nil
}

// Find returns tickets visible to the principal matching the filter.
// Staff results are always scoped to tickets they own, regardless of
// the requested owner filter.
func (s *TicketService) Find(ctx context.Context, principal *domain.Principal, filter repository.TicketFilter) ([]TicketView, error) {
	if decision := s.policy.CanMutateTicket(principal, policy.OpReadTicket); !decision.Allowed {
		return nil, apperrors.NewForbidden(decision.Reason)
	}

	if principal.Role == domain.RoleStaff {
		if filter.OwnerID != nil && *filter.OwnerID != principal.UserID {
			return []TicketView{}, nil
		}
		ownerID := principal.UserID
		filter.OwnerID = &ownerID
	}

	tickets, err := s.tickets.ListWithFilter(ctx, filter)
	if err != nil {
		return nil, err
	}
	views := make([]TicketView, 0, len(tickets))
	for _, ticket := range tickets {
		views = append(views, s.toView(ctx, ticket))
	}
	return views, nil
}

// StatusCounts summarizes the visible tickets for dashboard cards.
type StatusCounts struct {
	Total      int
	Open       int
	InProgress int
	Resolved   int
}

// CountByStatus tallies visible tickets per state.
func (s *TicketService) CountByStatus(ctx context.Context, principal *domain.Principal) (*StatusCounts, error) {
	views, err := s.Find(ctx, principal, repository.TicketFilter{})
	if err != nil {
		return nil, err
	}
	counts := &StatusCounts{Total: len(views)}
	for _, view := range views {
		switch view.Status {
		case domain.TicketStatusOpen:
			counts.Open++
		case domain.TicketStatusInProgress:
			counts.InProgress++
		case domain.TicketStatusResolved:
			counts.Resolved++
		}
	}
	return counts, nil
}

func (s *TicketService) toView(ctx context.Context, ticket domain.Ticket) TicketView {
	name := repository.DeletedOwnerPlaceholder
	if owner, err := s.users.GetByID(ctx, ticket.OwnerID); err == nil {
		name = owner.Name
	}
	return TicketView{Ticket: ticket, OwnerName: name}
}

func (s *TicketService) publishEvent(ctx context.Context, principal *domain.Principal, event events.Event) {
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

// allowedTransitions is the lifecycle edge table. resolved and closed
// have no outgoing edges.
var allowedTransitions = map[domain.TicketStatus][]domain.TicketStatus{
	domain.TicketStatusOpen:       {domain.TicketStatusInProgress, domain.TicketStatusResolved},
	domain.TicketStatusInProgress: {domain.TicketStatusResolved},
	domain.TicketStatusResolved:   {},
	domain.TicketStatusClosed:     {},
}

func isValidTransition(current, next domain.TicketStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

func stringPreview(body string, max int) string {
	body = strings.TrimSpace(body)
	if len(body) <= max {
		return body
	}
	if max <= 3 {
		return body[:max]
	}
	return body[:max-3] + "..."
}
