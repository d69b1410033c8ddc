package seed

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/repository"
)

// Fixture is the demo dataset applied at startup. The whole dataset is
// volatile; every process starts over from the fixture.
type Fixture struct {
	Users   []UserSeed   `yaml:"users"`
	Tickets []TicketSeed `yaml:"tickets"`
}

// UserSeed describes one directory record. LastLogin is a date or the
// literal "never".
type UserSeed struct {
	ID             string `yaml:"id"`
	Name           string `yaml:"name"`
	Email          string `yaml:"email"`
	Role           string `yaml:"role"`
	Status         string `yaml:"status"`
	LastLogin      string `yaml:"last_login"`
	TicketsCreated int    `yaml:"tickets_created"`
	JoinedDate     string `yaml:"joined_date"`
}

// TicketSeed describes one ticket record.
type TicketSeed struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Status      string `yaml:"status"`
	Priority    string `yaml:"priority"`
	Category    string `yaml:"category"`
	Owner       string `yaml:"owner"`
	CreatedAt   string `yaml:"created_at"`
	UpdatedAt   string `yaml:"updated_at"`
	Resolution  string `yaml:"resolution"`
}

// defaultFixture mirrors the demo dataset the dashboards were built
// around: five directory accounts and four tickets in assorted states.
const defaultFixture = `
users:
  - id: "1"
    name: John Smith
    email: john.smith@company.com
    role: staff
    status: active
    last_login: "2024-01-15"
    tickets_created: 5
    joined_date: "2023-06-10"
  - id: "2"
    name: Jane Doe
    email: jane.doe@company.com
    role: staff
    status: active
    last_login: "2024-01-14"
    tickets_created: 3
    joined_date: "2023-08-15"
  - id: "3"
    name: Mike Wilson
    email: mike.wilson@company.com
    role: it_support
    status: active
    last_login: "2024-01-15"
    tickets_created: 1
    joined_date: "2023-03-20"
  - id: "4"
    name: Sarah Johnson
    email: sarah.johnson@company.com
    role: staff
    status: inactive
    last_login: "2023-12-20"
    tickets_created: 8
    joined_date: "2023-01-05"
  - id: "5"
    name: Admin User
    email: admin@company.com
    role: admin
    status: active
    last_login: "2024-01-15"
    tickets_created: 0
    joined_date: "2022-11-01"
tickets:
  - id: TKT-001
    title: Computer not starting up
    description: My work computer won't boot up after the power outage yesterday. The screen remains black.
    status: open
    priority: high
    category: hardware
    owner: "1"
    created_at: "2024-01-15"
    updated_at: "2024-01-15"
  - id: TKT-002
    title: Software installation request
    description: Need Adobe Photoshop installed on my workstation for the marketing project.
    status: in_progress
    priority: medium
    category: software
    owner: "2"
    created_at: "2024-01-12"
    updated_at: "2024-01-14"
    resolution: Installation in progress. Will complete by tomorrow.
  - id: TKT-003
    title: Network connectivity issues
    description: Unable to access shared network drives and internet is very slow.
    status: resolved
    priority: high
    category: network
    owner: "3"
    created_at: "2024-01-10"
    updated_at: "2024-01-13"
    resolution: Network switch was reset and all connections restored. Issue resolved.
  - id: TKT-004
    title: Email access problems
    description: Cannot log into Outlook. Getting authentication errors.
    status: open
    priority: low
    category: access
    owner: "4"
    created_at: "2024-01-14"
    updated_at: "2024-01-14"
`

// Load parses a fixture from path, or the built-in demo dataset when
// path is empty.
func Load(path string) (*Fixture, error) {
	data := []byte(defaultFixture)
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read seed file: %w", err)
		}
	}
	var fixture Fixture
	if err := yaml.Unmarshal(data, &fixture); err != nil {
		return nil, fmt.Errorf("parse seed data: %w", err)
	}
	return &fixture, nil
}

// Apply inserts the fixture into the repositories. Users go first so
// ticket owner references resolve during seeding.
func Apply(ctx context.Context, fixture *Fixture, users repository.UserRepository, tickets repository.TicketRepository) error {
	for _, entry := range fixture.Users {
		user, err := entry.toDomain()
		if err != nil {
			return err
		}
		if err := users.Create(ctx, user); err != nil {
			return fmt.Errorf("seed user %s: %w", entry.ID, err)
		}
	}
	for _, entry := range fixture.Tickets {
		ticket, err := entry.toDomain()
		if err != nil {
			return err
		}
		if err := tickets.Create(ctx, ticket); err != nil {
			return fmt.Errorf("seed ticket %s: %w", entry.ID, err)
		}
	}
	return nil
}

func (s UserSeed) toDomain() (*domain.User, error) {
	role := domain.Role(s.Role)
	if !domain.ValidRole(role) {
		return nil, fmt.Errorf("seed user %s: unknown role %q", s.ID, s.Role)
	}
	status := domain.UserStatus(s.Status)
	if !domain.ValidUserStatus(status) {
		return nil, fmt.Errorf("seed user %s: unknown status %q", s.ID, s.Status)
	}
	joined, err := parseDate(s.JoinedDate)
	if err != nil {
		return nil, fmt.Errorf("seed user %s: %w", s.ID, err)
	}

	user := &domain.User{
		ID:             s.ID,
		Name:           s.Name,
		Email:          s.Email,
		Role:           role,
		Status:         status,
		TicketsCreated: s.TicketsCreated,
		JoinedDate:     joined,
	}
	if s.LastLogin != "" && s.LastLogin != "never" {
		last, err := parseDate(s.LastLogin)
		if err != nil {
			return nil, fmt.Errorf("seed user %s: %w", s.ID, err)
		}
		user.LastLogin = &last
	}
	return user, nil
}

func (s TicketSeed) toDomain() (*domain.Ticket, error) {
	status := domain.TicketStatus(s.Status)
	if !domain.ValidStatus(status) {
		return nil, fmt.Errorf("seed ticket %s: unknown status %q", s.ID, s.Status)
	}
	priority := domain.TicketPriority(s.Priority)
	if !domain.ValidPriority(priority) {
		return nil, fmt.Errorf("seed ticket %s: unknown priority %q", s.ID, s.Priority)
	}
	category := domain.TicketCategory(s.Category)
	if !domain.ValidCategory(category) {
		return nil, fmt.Errorf("seed ticket %s: unknown category %q", s.ID, s.Category)
	}
	created, err := parseDate(s.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("seed ticket %s: %w", s.ID, err)
	}
	updated, err := parseDate(s.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("seed ticket %s: %w", s.ID, err)
	}

	return &domain.Ticket{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Category:    category,
		Priority:    priority,
		Status:      status,
		OwnerID:     s.Owner,
		Resolution:  s.Resolution,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}, nil
}

func parseDate(value string) (time.Time, error) {
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", value, err)
	}
	return parsed, nil
}
