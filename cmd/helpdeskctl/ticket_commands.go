package main

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/repository"
	"github.com/spec-kit/helpdesk-core/internal/service"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

func createTicketCommand() *command {
	return &command{
		name:    "create-ticket",
		summary: "Submit a new support ticket",
		usage:   "create-ticket --title <t> --description <d> --category <c> --priority <p>",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("create-ticket", pflag.ContinueOnError)
			title := flags.String("title", "", "brief description of the issue")
			description := flags.String("description", "", "detailed description")
			category := flags.String("category", "", "hardware|software|network|access|other")
			priority := flags.String("priority", "", "low|medium|high")
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			ticket, err := a.ticketService.Create(context.Background(), principal, service.TicketCreateInput{
				Title:       *title,
				Description: *description,
				Category:    domain.TicketCategory(*category),
				Priority:    domain.TicketPriority(*priority),
			})
			if err != nil {
				return err
			}

			if *asJSON {
				return printJSON(ticketToJSON(*ticket, principal.Name))
			}
			fmt.Printf("created %s (%s, %s)\n", ticket.ID, ticket.Status, ticket.Priority)
			return nil
		},
	}
}

func transitionCommand() *command {
	return &command{
		name:    "transition",
		summary: "Move a ticket to a new status",
		usage:   "transition <ticket-id> <status>",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("transition", pflag.ContinueOnError)
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}
			rest := flags.Args()
			if len(rest) != 2 {
				return apperrors.NewValidationError("usage: transition <ticket-id> <status>", nil)
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			ticket, err := a.ticketService.Transition(context.Background(), principal, rest[0], domain.TicketStatus(rest[1]))
			if err != nil {
				return err
			}

			if *asJSON {
				return printJSON(ticketToJSON(*ticket, ""))
			}
			fmt.Printf("%s is now %s\n", ticket.ID, ticket.Status)
			return nil
		},
	}
}

func setResolutionCommand() *command {
	return &command{
		name:    "set-resolution",
		summary: "Attach resolution notes to a ticket",
		usage:   "set-resolution <ticket-id> <text>",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("set-resolution", pflag.ContinueOnError)
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}
			rest := flags.Args()
			if len(rest) != 2 {
				return apperrors.NewValidationError("usage: set-resolution <ticket-id> <text>", nil)
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			ticket, err := a.ticketService.SetResolution(context.Background(), principal, rest[0], rest[1])
			if err != nil {
				return err
			}

			if *asJSON {
				return printJSON(ticketToJSON(*ticket, ""))
			}
			fmt.Printf("resolution updated for %s\n", ticket.ID)
			return nil
		},
	}
}

func listTicketsCommand() *command {
	return &command{
		name:    "list-tickets",
		summary: "List tickets visible to the session role",
		usage:   "list-tickets [--text <q>] [--status <s>] [--priority <p>] [--owner <id>]",
		run: func(a *app, args []string) error {
			flags := pflag.NewFlagSet("list-tickets", pflag.ContinueOnError)
			text := flags.String("text", "", "search by title, owner, or id")
			status := flags.String("status", "", "filter by status")
			priority := flags.String("priority", "", "filter by priority")
			owner := flags.String("owner", "", "filter by owner id")
			asJSON := flags.Bool("json", false, "output as JSON")
			if err := flags.Parse(args); err != nil {
				return err
			}

			filter := repository.TicketFilter{Text: *text}
			if *status != "" {
				s := domain.TicketStatus(*status)
				if !domain.ValidStatus(s) {
					return apperrors.NewValidationError("unknown status", map[string]any{"status": *status})
				}
				filter.Status = &s
			}
			if *priority != "" {
				p := domain.TicketPriority(*priority)
				if !domain.ValidPriority(p) {
					return apperrors.NewValidationError("unknown priority", map[string]any{"priority": *priority})
				}
				filter.Priority = &p
			}
			if *owner != "" {
				filter.OwnerID = owner
			}

			principal, err := a.requirePrincipal()
			if err != nil {
				return err
			}
			views, err := a.ticketService.Find(context.Background(), principal, filter)
			if err != nil {
				return err
			}

			if *asJSON {
				out := make([]ticketJSON, 0, len(views))
				for _, view := range views {
					out = append(out, ticketToJSON(view.Ticket, view.OwnerName))
				}
				return printJSON(out)
			}
			printTicketTable(views)
			return nil
		},
	}
}
