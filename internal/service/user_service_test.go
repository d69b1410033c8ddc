package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/helpdesk-core/internal/domain"
	"github.com/spec-kit/helpdesk-core/internal/repository"
	apperrors "github.com/spec-kit/helpdesk-core/pkg/util"
)

func TestUserCreateRequiresAdmin(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	for _, principal := range []*domain.Principal{f.staffOne, f.support} {
		_, err := f.users.Create(ctx, principal, "New User", "new@company.com", domain.RoleStaff)
		assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden), "role %s", principal.Role)
		assert.Equal(t, 2, apperrors.ExitCode(err))
	}

	user, err := f.users.Create(ctx, f.admin, "New User", "new@company.com", domain.RoleStaff)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.Equal(t, 0, user.TicketsCreated)
	assert.Nil(t, user.LastLogin)
	assert.False(t, user.JoinedDate.IsZero())
}

func TestUserCreateDuplicateEmailKeepsCount(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	before := f.userRepo.Count(ctx)
	_, err := f.users.Create(ctx, f.admin, "Impostor", "john@company.com", domain.RoleStaff)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeDuplicateEmail))
	assert.Equal(t, before, f.userRepo.Count(ctx))
}

func TestUserCreateValidation(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.users.Create(ctx, f.admin, "", "x@company.com", domain.RoleStaff)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = f.users.Create(ctx, f.admin, "No Email", "not-an-email", domain.RoleStaff)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

	_, err = f.users.Create(ctx, f.admin, "Bad Role", "ok@company.com", "superuser")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestDeactivateThenReactivatePreservesHistory(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	f.createTicket(t, f.staffOne, "keeps history")
	original, err := f.userRepo.GetByID(ctx, "u1")
	require.NoError(t, err)

	deactivated, err := f.users.SetStatus(ctx, f.admin, "u1", domain.UserStatusInactive)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusInactive, deactivated.Status)

	reactivated, err := f.users.SetStatus(ctx, f.admin, "u1", domain.UserStatusActive)
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusActive, reactivated.Status)
	assert.Equal(t, original.TicketsCreated, reactivated.TicketsCreated)
	assert.Equal(t, original.JoinedDate, reactivated.JoinedDate)

	// ticket associations survive the toggle
	views, err := f.tickets.Find(ctx, f.support, repository.TicketFilter{Text: "john"})
	require.NoError(t, err)
	assert.Len(t, views, 1)
}

func TestSetStatusRejectsUnknownValues(t *testing.T) {
	f := newServiceFixture(t)
	_, err := f.users.SetStatus(context.Background(), f.admin, "u1", "suspended")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))
}

func TestDeleteUserTwiceFails(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	require.NoError(t, f.users.Delete(ctx, f.admin, "u2"))
	err := f.users.Delete(ctx, f.admin, "u2")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestDeleteUserRequiresAdmin(t *testing.T) {
	f := newServiceFixture(t)
	err := f.users.Delete(context.Background(), f.support, "u2")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}

func TestFindUsersRequiresAdmin(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	_, err := f.users.Find(ctx, f.staffOne, repository.UserFilter{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	all, err := f.users.Find(ctx, f.admin, repository.UserFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 4)

	filtered, err := f.users.Find(ctx, f.admin, repository.UserFilter{Text: "wilson"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "Mike Wilson", filtered[0].Name)
}
