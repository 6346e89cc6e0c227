package repositories

import (
	"context"
	"testing"
	"time"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestTicketRepository_CRUDAndList(t *testing.T) {
	db := newTestDB(t)
	createTicketTable(t, db)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	now := time.Now()
	first := &entities.Ticket{
		ID:           uuid.New(),
		TicketNumber: entities.NewTicketNumber(entities.TicketPrefixUser, now),
		UserID:       null.StringFrom(uuid.NewString()),
		Email:        "a@finsim.app",
		Subject:      "Billing question",
		Message:      "Why was I charged twice?",
		Status:       entities.TicketStatusNew,
		CreatedAt:    now.Add(-time.Hour),
		UpdatedAt:    now.Add(-time.Hour),
	}
	require.NoError(t, repo.Create(ctx, first))

	second := &entities.Ticket{
		ID:           uuid.New(),
		TicketNumber: entities.NewTicketNumber(entities.TicketPrefixUser, now.Add(time.Millisecond)),
		Email:        "b@finsim.app",
		Subject:      "Feature request",
		Message:      "Please add CSV export",
		Status:       entities.TicketStatusOpen,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, entities.TicketStatusNew, got.Status)

	got.Status = entities.TicketStatusReplied
	got.Reply = null.StringFrom("Refund issued")
	got.RepliedBy = null.StringFrom("ops@finsim.app")
	require.NoError(t, repo.Update(ctx, got))

	replied, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	require.Equal(t, entities.TicketStatusReplied, replied.Status)
	require.Equal(t, "Refund issued", replied.Reply.String)

	all, total, err := repo.List(ctx, nil, utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, int64(2), total)
	// Newest first
	require.Equal(t, second.ID, all[0].ID)

	status := entities.TicketStatusReplied
	filtered, total, err := repo.List(ctx, &status, utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	require.Equal(t, int64(1), total)
	require.Equal(t, first.ID, filtered[0].ID)
}

func TestTicketRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createTicketTable(t, db)
	repo := NewTicketRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.Ticket{ID: uuid.New(), Status: entities.TicketStatusClosed})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
