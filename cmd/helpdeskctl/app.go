package main

import (
	"context"
	"os"

	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk-core/internal/config"
	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/events"
	"github.com/spec-kit/helpdesk-core/internal/identity"
	"github.com/spec-kit/helpdesk-core/internal/notify"
	"github.com/spec-kit/helpdesk-core/internal/observability"
	"github.com/spec-kit/helpdesk-core/internal/policy"
	"github.com/spec-kit/helpdesk-core/internal/repository"
	"github.com/spec-kit/helpdesk-core/internal/seed"
	"github.com/spec-kit/helpdesk-core/internal/service"
	"github.com/spec-kit/helpdesk-core/internal/worker"
)

// app wires the stores, policy and services for one invocation. Data
// state is rebuilt from the seed fixture every run; only the session
// token survives between commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	metrics *observability.Metrics

	users   repository.UserRepository
	tickets repository.TicketRepository

	ticketService *service.TicketService
	userService   *service.UserService
	authService   *service.AuthService

	tokens  *identity.TokenManager
	session *identity.SessionStore
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	ctx := context.Background()

	userRepo := repository.NewUserRepository()
	ticketRepo := repository.NewTicketRepository(func(userID string) string {
		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return repository.DeletedOwnerPlaceholder
		}
		return user.Name
	})

	fixture, err := seed.Load(cfg.Seed.FilePath)
	if err != nil {
		return nil, err
	}
	if err := seed.Apply(ctx, fixture, userRepo, ticketRepo); err != nil {
		return nil, err
	}

	dispatcher := events.NewInMemoryDispatcher()
	sink := notify.Multi(
		notify.NewLogNotifier(logger),
		notify.NewConsoleNotifier(os.Stderr),
	)
	notificationService := service.NewNotificationService(dispatcher, sink, logger)
	worker.StartNotificationWorker(notificationService)

	accessPolicy := policy.NewAccessPolicy()
	tokens := identity.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.SessionTTLMinutes)

	return &app{
		cfg:     cfg,
		logger:  logger,
		metrics: observability.NewMetrics(),
		users:   userRepo,
		tickets: ticketRepo,
		ticketService: service.NewTicketService(service.TicketDependencies{
			TicketRepo: ticketRepo,
			UserRepo:   userRepo,
			Policy:     accessPolicy,
			Dispatcher: dispatcher,
		}),
		userService: service.NewUserService(service.UserDependencies{
			UserRepo:   userRepo,
			Policy:     accessPolicy,
			Dispatcher: dispatcher,
		}),
		authService: service.NewAuthService(identity.NewDemoVerifier(userRepo), tokens, dispatcher),
		tokens:      tokens,
		session:     identity.NewSessionStore(cfg.Session.FilePath),
	}, nil
}

// requirePrincipal loads the stored session token and resolves it to
// the acting principal.
func (a *app) requirePrincipal() (*domain.Principal, error) {
	token, err := a.session.Load()
	if err != nil {
		return nil, err
	}
	return a.tokens.Parse(token)
}
