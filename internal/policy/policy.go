package policy

import (
	"github.com/spec-kit/helpdesk-core/internal/domain"
)

// TicketOperation identifies a guarded ticket action.
type TicketOperation string

const (
	OpCreateTicket  TicketOperation = "create_ticket"
	OpReadTicket    TicketOperation = "read_ticket"
	OpTransition    TicketOperation = "transition"
	OpSetResolution TicketOperation = "set_resolution"
)

// Decision is the tagged outcome of a policy check. Denied decisions
// carry the reason reported back to the caller.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow grants the operation.
func Allow() Decision {
	return Decision{Allowed: true}
}

// Deny refuses the operation with a caller-visible reason.
func Deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// AccessPolicy decides visibility and permissions from a principal's
// role. Checks run on every mutating operation regardless of what the
// calling surface chose to display.
type AccessPolicy struct{}

// NewAccessPolicy constructs the policy.
func NewAccessPolicy() *AccessPolicy {
	return &AccessPolicy{}
}

// CanViewTicket: staff see only tickets they own; it_support and admin
// see all tickets.
func (p *AccessPolicy) CanViewTicket(principal *domain.Principal, ticket *domain.Ticket) Decision {
	if principal == nil {
		return Deny("authentication required")
	}
	switch principal.Role {
	case domain.RoleITSupport, domain.RoleAdmin:
		return Allow()
	case domain.RoleStaff:
		if ticket != nil && ticket.OwnerID == principal.UserID {
			return Allow()
		}
		return Deny("staff may only view their own tickets")
	}
	return Deny("unknown role")
}

// CanMutateTicket: staff are restricted to creating and reading their
// own tickets; status transitions and resolution edits require
// it_support or admin.
func (p *AccessPolicy) CanMutateTicket(principal *domain.Principal, op TicketOperation) Decision {
	if principal == nil {
		return Deny("authentication required")
	}
	switch op {
	case OpCreateTicket, OpReadTicket:
		if domain.ValidRole(principal.Role) {
			return Allow()
		}
		return Deny("unknown role")
	case OpTransition, OpSetResolution:
		if principal.Role == domain.RoleITSupport || principal.Role == domain.RoleAdmin {
			return Allow()
		}
		return Deny("it_support or admin role required")
	}
	return Deny("unknown operation")
}

// CanManageUsers: user provisioning, activation and deletion are
// admin-only.
func (p *AccessPolicy) CanManageUsers(principal *domain.Principal) Decision {
	if principal == nil {
		return Deny("authentication required")
	}
	if principal.Role == domain.RoleAdmin {
		return Allow()
	}
	return Deny("admin role required")
}
