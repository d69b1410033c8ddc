package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-core/internal/events"
	"github.com/spec-kit/helpdesk-core/internal/notify"
)

// NotificationService turns domain events into user-facing
// notifications through the fire-and-forget sink.
type NotificationService struct {
	dispatcher events.Dispatcher
	sink       notify.Notifier
	logger     *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, sink notify.Notifier, logger *zap.Logger) *NotificationService {
	return &NotificationService{dispatcher: dispatcher, sink: sink, logger: logger}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketCreated, n.handleTicketCreated)
	n.dispatcher.Subscribe(events.EventTicketStatusChanged, n.handleTicketStatusChanged)
	n.dispatcher.Subscribe(events.EventTicketResolutionUpdated, n.handleTicketResolutionUpdated)
	n.dispatcher.Subscribe(events.EventUserCreated, n.handleUserCreated)
	n.dispatcher.Subscribe(events.EventUserStatusChanged, n.handleUserStatusChanged)
	n.dispatcher.Subscribe(events.EventUserDeleted, n.handleUserDeleted)
	n.dispatcher.Subscribe(events.EventUserLoggedIn, n.handleUserLoggedIn)
}

func (n *NotificationService) handleTicketCreated(_ context.Context, event events.Event) error {
	n.logger.Debug("TicketCreated", zap.String("ticket_id", event.EntityID))
	n.sink.Notify(notify.KindSuccess, "Ticket Created Successfully",
		fmt.Sprintf("Your support ticket has been submitted and assigned ID: %s", event.EntityID))
	return nil
}

func (n *NotificationService) handleTicketStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.TicketStatusChangedPayload)
	if !ok {
		return nil
	}
	n.logger.Debug("TicketStatusChanged", zap.String("ticket_id", event.EntityID))
	n.sink.Notify(notify.KindSuccess, "Status Updated",
		fmt.Sprintf("Ticket %s status changed to %s", event.EntityID,
			strings.ReplaceAll(string(payload.NewStatus), "_", " ")))
	return nil
}

func (n *NotificationService) handleTicketResolutionUpdated(_ context.Context, event events.Event) error {
	n.logger.Debug("TicketResolutionUpdated", zap.String("ticket_id", event.EntityID))
	n.sink.Notify(notify.KindSuccess, "Resolution Updated",
		fmt.Sprintf("Resolution notes added for ticket %s", event.EntityID))
	return nil
}

func (n *NotificationService) handleUserCreated(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserCreatedPayload)
	if !ok {
		return nil
	}
	n.logger.Debug("UserCreated", zap.String("user_id", event.EntityID))
	n.sink.Notify(notify.KindSuccess, "User Created",
		fmt.Sprintf("%s has been added to the system", payload.Name))
	return nil
}

func (n *NotificationService) handleUserStatusChanged(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserStatusChangedPayload)
	if !ok {
		return nil
	}
	verb := "deactivated"
	if payload.NewStatus == "active" {
		verb = "activated"
	}
	n.logger.Debug("UserStatusChanged", zap.String("user_id", event.EntityID))
	n.sink.Notify(notify.KindSuccess, "User Status Updated",
		fmt.Sprintf("%s has been %s", payload.Name, verb))
	return nil
}

func (n *NotificationService) handleUserDeleted(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserDeletedPayload)
	if !ok {
		return nil
	}
	n.logger.Debug("UserDeleted", zap.String("user_id", event.EntityID))
	n.sink.Notify(notify.KindError, "User Deleted",
		fmt.Sprintf("%s has been removed from the system", payload.Name))
	return nil
}

func (n *NotificationService) handleUserLoggedIn(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.UserLoggedInPayload)
	if !ok {
		return nil
	}
	n.logger.Debug("UserLoggedIn", zap.String("user_id", event.EntityID))
	n.sink.Notify(notify.KindSuccess, "Login Successful",
		fmt.Sprintf("Welcome back, %s!", payload.Name))
	return nil
}
