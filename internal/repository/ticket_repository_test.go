package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

func newTicket(title string, owner string) *domain.Ticket {
	return &domain.Ticket{
		Title:       title,
		Description: "details",
		Category:    domain.TicketCategoryHardware,
		Priority:    domain.TicketPriorityMedium,
		Status:      domain.TicketStatusOpen,
		OwnerID:     owner,
	}
}

func ownerNames(names map[string]string) OwnerNameFunc {
	return func(id string) string {
		if name, ok := names[id]; ok {
			return name
		}
		return DeletedOwnerPlaceholder
	}
}

func TestCreateAssignsSequentialIDs(t *testing.T) {
	repo := NewTicketRepository(nil)
	ctx := context.Background()

	first := newTicket("first", "u1")
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, "TKT-001", first.ID)

	second := newTicket("second", "u1")
	require.NoError(t, repo.Create(ctx, second))
	assert.Equal(t, "TKT-002", second.ID)

	assert.False(t, first.CreatedAt.IsZero())
	assert.Equal(t, first.CreatedAt, first.UpdatedAt)
}

func TestCreateAdvancesPastSeededIDs(t *testing.T) {
	repo := NewTicketRepository(nil)
	ctx := context.Background()

	seeded := newTicket("seeded", "u1")
	seeded.ID = "TKT-004"
	require.NoError(t, repo.Create(ctx, seeded))

	next := newTicket("next", "u1")
	require.NoError(t, repo.Create(ctx, next))
	assert.Equal(t, "TKT-005", next.ID)
}

func TestCreateRejectsDuplicateID(t *testing.T) {
	repo := NewTicketRepository(nil)
	ctx := context.Background()

	seeded := newTicket("seeded", "u1")
	seeded.ID = "TKT-001"
	require.NoError(t, repo.Create(ctx, seeded))

	dup := newTicket("dup", "u1")
	dup.ID = "TKT-001"
	err := repo.Create(ctx, dup)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestUpdateRefreshesUpdatedAtAndVersion(t *testing.T) {
	repo := NewTicketRepository(nil)
	ctx := context.Background()

	ticket := newTicket("update me", "u1")
	require.NoError(t, repo.Create(ctx, ticket))

	time.Sleep(2 * time.Millisecond)
	ticket.Status = domain.TicketStatusInProgress
	require.NoError(t, repo.Update(ctx, ticket))

	stored, err := repo.GetByID(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.TicketStatusInProgress, stored.Status)
	assert.True(t, stored.UpdatedAt.After(stored.CreatedAt))
	assert.Equal(t, int64(2), stored.Version)
}

func TestUpdateRejectsStaleVersion(t *testing.T) {
	repo := NewTicketRepository(nil)
	ctx := context.Background()

	ticket := newTicket("contended", "u1")
	require.NoError(t, repo.Create(ctx, ticket))

	stale := *ticket
	ticket.Status = domain.TicketStatusInProgress
	require.NoError(t, repo.Update(ctx, ticket))

	stale.Status = domain.TicketStatusResolved
	err := repo.Update(ctx, &stale)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))
}

func TestGetByIDUnknown(t *testing.T) {
	repo := NewTicketRepository(nil)
	_, err := repo.GetByID(context.Background(), "TKT-999")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestListWithFilterComposesWithAnd(t *testing.T) {
	repo := NewTicketRepository(ownerNames(map[string]string{"u1": "John Smith", "u2": "Jane Doe"}))
	ctx := context.Background()

	a := newTicket("Printer jam", "u1")
	a.Priority = domain.TicketPriorityHigh
	require.NoError(t, repo.Create(ctx, a))

	b := newTicket("Printer driver", "u2")
	b.Priority = domain.TicketPriorityLow
	require.NoError(t, repo.Create(ctx, b))

	c := newTicket("VPN down", "u1")
	c.Priority = domain.TicketPriorityHigh
	require.NoError(t, repo.Create(ctx, c))

	high := domain.TicketPriorityHigh
	result, err := repo.ListWithFilter(ctx, TicketFilter{Text: "printer", Priority: &high})
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, a.ID, result[0].ID)
}

func TestListWithFilterTextMatchesOwnerNameAndID(t *testing.T) {
	repo := NewTicketRepository(ownerNames(map[string]string{"u1": "John Smith"}))
	ctx := context.Background()

	ticket := newTicket("Broken keyboard", "u1")
	require.NoError(t, repo.Create(ctx, ticket))
	require.NoError(t, repo.Create(ctx, newTicket("Unrelated", "ghost")))

	byOwner, err := repo.ListWithFilter(ctx, TicketFilter{Text: "john sm"})
	require.NoError(t, err)
	require.Len(t, byOwner, 1)
	assert.Equal(t, ticket.ID, byOwner[0].ID)

	byID, err := repo.ListWithFilter(ctx, TicketFilter{Text: "tkt-001"})
	require.NoError(t, err)
	require.Len(t, byID, 1)
	assert.Equal(t, ticket.ID, byID[0].ID)
}

func TestListWithFilterOrdersByCreatedAtDescending(t *testing.T) {
	repo := NewTicketRepository(nil)
	ctx := context.Background()

	base := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	older := newTicket("older", "u1")
	older.CreatedAt = base
	require.NoError(t, repo.Create(ctx, older))

	newest := newTicket("newest", "u1")
	newest.CreatedAt = base.Add(48 * time.Hour)
	require.NoError(t, repo.Create(ctx, newest))

	tieFirst := newTicket("tie first", "u1")
	tieFirst.CreatedAt = base.Add(24 * time.Hour)
	require.NoError(t, repo.Create(ctx, tieFirst))

	tieSecond := newTicket("tie second", "u1")
	tieSecond.CreatedAt = base.Add(24 * time.Hour)
	require.NoError(t, repo.Create(ctx, tieSecond))

	result, err := repo.ListWithFilter(ctx, TicketFilter{})
	require.NoError(t, err)
	require.Len(t, result, 4)
	assert.Equal(t, "newest", result[0].Title)
	// ties keep creation order
	assert.Equal(t, "tie first", result[1].Title)
	assert.Equal(t, "tie second", result[2].Title)
	assert.Equal(t, "older", result[3].Title)
}

func TestListWithFilterEmptyFilterReturnsAll(t *testing.T) {
	repo := NewTicketRepository(nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, newTicket("t", "u1")))
	}
	result, err := repo.ListWithFilter(ctx, TicketFilter{})
	require.NoError(t, err)
	assert.Len(t, result, 3)
	assert.Equal(t, 3, repo.Count(ctx))
}
