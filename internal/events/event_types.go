package events

import (
	"time"

	"github.com/spec-kit/helpdesk-core/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventTicketCreated           EventType = "ticket_created"
	EventTicketStatusChanged     EventType = "ticket_status_changed"
	EventTicketResolutionUpdated EventType = "ticket_resolution_updated"
	EventUserCreated             EventType = "user_created"
	EventUserStatusChanged       EventType = "user_status_changed"
	EventUserDeleted             EventType = "user_deleted"
	EventUserLoggedIn            EventType = "user_logged_in"
)

// Actor encapsulates who triggered an event.
type Actor struct {
	UserID string      `json:"user_id"`
	Name   string      `json:"name"`
	Role   domain.Role `json:"role"`
}

// Event represents a domain event emitted by services. EntityID is the
// ticket or user id the event concerns.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  string      `json:"entity_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// TicketCreatedPayload payload.
type TicketCreatedPayload struct {
	Title    string                `json:"title"`
	Category domain.TicketCategory `json:"category"`
	Priority domain.TicketPriority `json:"priority"`
}

// TicketStatusChangedPayload payload.
type TicketStatusChangedPayload struct {
	OldStatus domain.TicketStatus `json:"old_status"`
	NewStatus domain.TicketStatus `json:"new_status"`
}

// TicketResolutionUpdatedPayload payload.
type TicketResolutionUpdatedPayload struct {
	Preview string `json:"preview"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	Name string      `json:"name"`
	Role domain.Role `json:"role"`
}

// UserStatusChangedPayload payload.
type UserStatusChangedPayload struct {
	Name      string            `json:"name"`
	OldStatus domain.UserStatus `json:"old_status"`
	NewStatus domain.UserStatus `json:"new_status"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Name string `json:"name"`
}

// UserLoggedInPayload payload.
type UserLoggedInPayload struct {
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
	Route string      `json:"route"`
}
