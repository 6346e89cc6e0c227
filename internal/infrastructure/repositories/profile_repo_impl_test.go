package repositories

import (
	"context"
	"testing"
	"time"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestProfileRepository_UpsertPreservesSubscription(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	now := time.Now()
	profile := &entities.UserProfile{
		ID:        uuid.New(),
		UserID:    userID,
		FirstName: "Alice",
		LastName:  "Aalto",
		Currency:  "EUR",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Upsert(ctx, profile))

	// Attach subscription state through Update, like the purchase flow does
	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	got.Subscription = entities.SubscriptionState{
		PlanID:               null.StringFrom("plan-1"),
		PlanName:             null.StringFrom("Premium"),
		StartedAt:            null.TimeFrom(now),
		ExpiresAt:            null.TimeFrom(now.Add(30 * 24 * time.Hour)),
		StripeCustomerID:     null.StringFrom("cus_1"),
		StripeSubscriptionID: null.StringFrom("sub_1"),
		StripePriceID:        null.StringFrom("price_1"),
		IsActive:             true,
	}
	require.NoError(t, repo.Update(ctx, got))

	// A later profile upsert must not clobber the subscription
	profile.FirstName = "Alicia"
	profile.MonthlyIncome = null.Int64From(250000)
	require.NoError(t, repo.Upsert(ctx, profile))

	got, err = repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.Equal(t, "Alicia", got.FirstName)
	require.Equal(t, int64(250000), got.MonthlyIncome.Int64)
	require.True(t, got.Subscription.IsActive)
	require.Equal(t, "sub_1", got.Subscription.StripeSubscriptionID.String)

	bySub, err := repo.GetByStripeSubscriptionID(ctx, "sub_1")
	require.NoError(t, err)
	require.Equal(t, userID, bySub.UserID)
}

func TestProfileRepository_UpdateClearsSubscription(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	profile := &entities.UserProfile{
		ID:        uuid.New(),
		UserID:    userID,
		FirstName: "Bob",
		LastName:  "Berg",
		Subscription: entities.SubscriptionState{
			PlanID:               null.StringFrom("plan-1"),
			StripeCustomerID:     null.StringFrom("cus_1"),
			StripeSubscriptionID: null.StringFrom("sub_2"),
			IsActive:             true,
		},
	}
	require.NoError(t, repo.Upsert(ctx, profile))

	got, err := repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	got.Subscription.Clear()
	require.NoError(t, repo.Update(ctx, got))

	got, err = repo.GetByUserID(ctx, userID)
	require.NoError(t, err)
	require.False(t, got.Subscription.IsActive)
	require.False(t, got.Subscription.PlanID.Valid)
	require.False(t, got.Subscription.StripeCustomerID.Valid)

	_, err = repo.GetByStripeSubscriptionID(ctx, "sub_2")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileRepository_NotFoundAndDelete(t *testing.T) {
	db := newTestDB(t)
	createProfileTable(t, db)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	_, err := repo.GetByUserID(ctx, uuid.New())
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	err = repo.Update(ctx, &entities.UserProfile{ID: uuid.New(), UserID: uuid.New()})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	// DeleteByUserID tolerates missing rows
	require.NoError(t, repo.DeleteByUserID(ctx, uuid.New()))

	userID := uuid.New()
	require.NoError(t, repo.Upsert(ctx, &entities.UserProfile{ID: uuid.New(), UserID: userID, FirstName: "C"}))
	require.NoError(t, repo.DeleteByUserID(ctx, userID))
	_, err = repo.GetByUserID(ctx, userID)
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}
