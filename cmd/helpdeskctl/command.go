package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/service"
)

// command is one CLI subcommand. run returns an error mapped to the
// exit-code contract: 0 success, 1 validation/lookup/auth failure,
// 2 policy rejection.
type command struct {
	name    string
	summary string
	usage   string
	run     func(a *app, args []string) error
}

func commands() []*command {
	return []*command{
		loginCommand(),
		logoutCommand(),
		whoamiCommand(),
		createTicketCommand(),
		transitionCommand(),
		setResolutionCommand(),
		listTicketsCommand(),
		createUserCommand(),
		setUserStatusCommand(),
		deleteUserCommand(),
		listUsersCommand(),
	}
}

func lookupCommand(name string) (*command, bool) {
	for _, cmd := range commands() {
		if cmd.name == name {
			return cmd, true
		}
	}
	return nil, false
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "usage: helpdeskctl <command> [flags]")
	fmt.Fprintln(out)
	fmt.Fprintln(out, "commands:")
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, cmd := range commands() {
		fmt.Fprintf(w, "  %s\t%s\n", cmd.usage, cmd.summary)
	}
	w.Flush()
}

func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// ticketJSON is the structured result shape for ticket commands.
type ticketJSON struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
	Owner       string `json:"owner,omitempty"`
	OwnerID     string `json:"owner_id"`
	Resolution  string `json:"resolution,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func ticketToJSON(t domain.Ticket, ownerName string) ticketJSON {
	return ticketJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Category:    string(t.Category),
		Priority:    string(t.Priority),
		Status:      string(t.Status),
		Owner:       ownerName,
		OwnerID:     t.OwnerID,
		Resolution:  t.Resolution,
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   t.UpdatedAt.Format(time.RFC3339),
	}
}

func printTicketTable(views []service.TicketView) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tCATEGORY\tOWNER\tUPDATED\tTITLE")
	for _, view := range views {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			view.ID, view.Status, view.Priority, view.Category,
			view.OwnerName, view.UpdatedAt.Format("2006-01-02"), view.Title)
	}
	w.Flush()
}

// userJSON is the structured result shape for directory commands.
type userJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
	Status         string `json:"status"`
	LastLogin      string `json:"last_login"`
	TicketsCreated int    `json:"tickets_created"`
	JoinedDate     string `json:"joined_date"`
}

func userToJSON(u domain.User) userJSON {
	lastLogin := "never"
	if u.LastLogin != nil {
		lastLogin = u.LastLogin.Format(time.RFC3339)
	}
	return userJSON{
		ID:             u.ID,
		Name:           u.Name,
		Email:          u.Email,
		Role:           string(u.Role),
		Status:         string(u.Status),
		LastLogin:      lastLogin,
		TicketsCreated: u.TicketsCreated,
		JoinedDate:     u.JoinedDate.Format("2006-01-02"),
	}
}

func printUserTable(users []domain.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS\tLAST LOGIN\tTICKETS\tJOINED")
	for _, user := range users {
		lastLogin := "never"
		if user.LastLogin != nil {
			lastLogin = user.LastLogin.Format("2006-01-02")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%d\t%s\n",
			user.ID, user.Name, user.Email, user.Role, user.Status,
			lastLogin, user.TicketsCreated, user.JoinedDate.Format("2006-01-02"))
	}
	w.Flush()
}
