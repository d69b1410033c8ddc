package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/repository"
)

func TestDefaultFixtureLoads(t *testing.T) {
	fixture, err := Load("")
	require.NoError(t, err)
	assert.Len(t, fixture.Users, 5)
	assert.Len(t, fixture.Tickets, 4)
}

func TestDefaultFixtureApplies(t *testing.T) {
	fixture, err := Load("")
	require.NoError(t, err)

	ctx := context.Background()
	users := repository.NewUserRepository()
	tickets := repository.NewTicketRepository(nil)
	require.NoError(t, Apply(ctx, fixture, users, tickets))

	assert.Equal(t, 5, users.Count(ctx))
	assert.Equal(t, 4, tickets.Count(ctx))

	// every seeded ticket owner exists in the directory
	all, err := tickets.ListWithFilter(ctx, repository.TicketFilter{})
	require.NoError(t, err)
	for _, ticket := range all {
		_, err := users.GetByID(ctx, ticket.OwnerID)
		assert.NoError(t, err, "owner of %s", ticket.ID)
	}

	// ids continue past the seeded range
	next := &domain.Ticket{
		Title: "new", Description: "d", Category: domain.TicketCategoryOther,
		Priority: domain.TicketPriorityLow, Status: domain.TicketStatusOpen, OwnerID: "1",
	}
	require.NoError(t, tickets.Create(ctx, next))
	assert.Equal(t, "TKT-005", next.ID)

	// inactive account and never-logged-in bookkeeping survive seeding
	sarah, err := users.GetByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusInactive, sarah.Status)
	require.NotNil(t, sarah.LastLogin)
}

func TestLoadFromFileOverridesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	custom := `
users:
  - id: "9"
    name: Solo Admin
    email: solo@company.com
    role: admin
    status: active
    last_login: never
    joined_date: "2024-01-01"
tickets: []
`
	require.NoError(t, os.WriteFile(path, []byte(custom), 0o600))

	fixture, err := Load(path)
	require.NoError(t, err)
	require.Len(t, fixture.Users, 1)
	assert.Empty(t, fixture.Tickets)

	user, err := fixture.Users[0].toDomain()
	require.NoError(t, err)
	assert.Nil(t, user.LastLogin)
	assert.Equal(t, domain.RoleAdmin, user.Role)
}

func TestLoadRejectsUnknownEnumValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	bad := `
users:
  - id: "1"
    name: X
    email: x@company.com
    role: wizard
    status: active
    joined_date: "2024-01-01"
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o600))

	fixture, err := Load(path)
	require.NoError(t, err)

	ctx := context.Background()
	err = Apply(ctx, fixture, repository.NewUserRepository(), repository.NewTicketRepository(nil))
	assert.Error(t, err)
}
