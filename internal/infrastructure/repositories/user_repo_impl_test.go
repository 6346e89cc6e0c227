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
)

func TestUserRepository_CRUDAndList(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	now := time.Now()
	u := &entities.User{
		ID:           uuid.New(),
		Email:        "a@finsim.app",
		FullName:     "Alice",
		PasswordHash: "hash",
		Role:         entities.UserRoleUser,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, byID.Email)
	require.True(t, byID.IsVerified)

	byEmail, err := repo.GetByEmail(ctx, u.Email)
	require.NoError(t, err)
	require.Equal(t, u.ID, byEmail.ID)

	u.FullName = "Alice Updated"
	u.PasswordHash = "hash2"
	require.NoError(t, repo.Update(ctx, u))

	updated, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice Updated", updated.FullName)
	require.Equal(t, "hash2", updated.PasswordHash)

	require.NoError(t, repo.SetBlocked(ctx, u.ID, true))
	blocked, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.True(t, blocked.IsBlocked)

	items, total, err := repo.List(ctx, "", utils.PaginationParams{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(1), total)

	items, total, err = repo.List(ctx, "alice", utils.PaginationParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, int64(1), total)

	require.NoError(t, repo.Delete(ctx, u.ID))
	_, err = repo.GetByID(ctx, u.ID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_NotFoundBranches(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()
	id := uuid.New()

	_, err := repo.GetByID(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "missing@finsim.app")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.User{ID: id, FullName: "x", Role: entities.UserRoleUser})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.SetBlocked(ctx, id, true)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Delete(ctx, id)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &entities.User{ID: uuid.New(), Email: "dup@finsim.app", FullName: "A", Role: entities.UserRoleUser}
	require.NoError(t, repo.Create(ctx, u))

	dup := &entities.User{ID: uuid.New(), Email: "dup@finsim.app", FullName: "B", Role: entities.UserRoleUser}
	require.Error(t, repo.Create(ctx, dup))
}
