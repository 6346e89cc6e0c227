package usecases_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/volatiletech/null/v8"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/usecases"
)

func TestProfileUsecase_Get(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	uc := usecases.NewProfileUsecase(profileRepo, new(MockUserRepository))

	missing := uuid.New()
	profileRepo.On("GetByUserID", context.Background(), missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err := uc.Get(context.Background(), missing)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	userID := uuid.New()
	profileRepo.On("GetByUserID", context.Background(), userID).Return(&entities.UserProfile{UserID: userID}, nil).Once()
	profile, err := uc.Get(context.Background(), userID)
	assert.NoError(t, err)
	assert.Equal(t, userID, profile.UserID)
}

func TestProfileUsecase_Upsert(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	userRepo := new(MockUserRepository)
	uc := usecases.NewProfileUsecase(profileRepo, userRepo)

	userID := uuid.New()
	userRepo.On("GetByID", context.Background(), userID).Return(&entities.User{ID: userID}, nil).Once()

	income := int64(500000)
	risk := "medium"
	dob := time.Date(1990, 4, 12, 0, 0, 0, 0, time.UTC)

	profileRepo.On("Upsert", context.Background(), mock.AnythingOfType("*entities.UserProfile")).Return(nil).Run(func(args mock.Arguments) {
		p := args.Get(1).(*entities.UserProfile)
		assert.Equal(t, userID, p.UserID)
		assert.Equal(t, "Ada", p.FirstName)
		assert.Equal(t, int64(500000), p.MonthlyIncome.Int64)
		assert.Equal(t, "medium", p.RiskTolerance.String)
		assert.Equal(t, dob, p.DateOfBirth.Time)
		// Billing state is never written through this path.
		assert.False(t, p.Subscription.IsActive)
		assert.False(t, p.Subscription.StripeCustomerID.Valid)
	}).Once()

	// The response is re-read so it carries stored subscription state.
	stored := &entities.UserProfile{
		ID:        uuid.New(),
		UserID:    userID,
		FirstName: "Ada",
		Subscription: entities.SubscriptionState{
			PlanName: null.StringFrom("Pro"),
			IsActive: true,
		},
	}
	profileRepo.On("GetByUserID", context.Background(), userID).Return(stored, nil).Once()

	got, err := uc.Upsert(context.Background(), userID, &entities.UpsertProfileInput{
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Currency:      "USD",
		DateOfBirth:   &dob,
		MonthlyIncome: &income,
		RiskTolerance: &risk,
	})
	assert.NoError(t, err)
	assert.True(t, got.Subscription.IsActive)
	assert.Equal(t, "Pro", got.Subscription.PlanName.String)
}

func TestProfileUsecase_Upsert_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	uc := usecases.NewProfileUsecase(new(MockProfileRepository), userRepo)

	userID := uuid.New()
	userRepo.On("GetByID", context.Background(), userID).Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.Upsert(context.Background(), userID, &entities.UpsertProfileInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
	})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestProfileUsecase_Patch(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	uc := usecases.NewProfileUsecase(profileRepo, new(MockUserRepository))

	missing := uuid.New()
	profileRepo.On("GetByUserID", context.Background(), missing).Return(nil, domainerrors.ErrNotFound).Once()
	_, err := uc.Patch(context.Background(), missing, &entities.PatchProfileInput{})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	userID := uuid.New()
	profile := &entities.UserProfile{
		ID:            uuid.New(),
		UserID:        userID,
		FirstName:     "Ada",
		LastName:      "Lovelace",
		Currency:      "USD",
		MonthlyIncome: null.Int64From(400000),
		Subscription: entities.SubscriptionState{
			PlanName: null.StringFrom("Pro"),
			IsActive: true,
		},
	}
	profileRepo.On("GetByUserID", context.Background(), userID).Return(profile, nil).Once()
	profileRepo.On("Update", context.Background(), profile).Return(nil).Once()

	goal := int64(1000000)
	phone := "+15551234567"
	got, err := uc.Patch(context.Background(), userID, &entities.PatchProfileInput{
		Phone:       &phone,
		SavingsGoal: &goal,
	})
	assert.NoError(t, err)
	assert.Equal(t, "+15551234567", got.Phone)
	assert.Equal(t, int64(1000000), got.SavingsGoal.Int64)
	// Untouched fields keep their values.
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, int64(400000), got.MonthlyIncome.Int64)
	assert.True(t, got.Subscription.IsActive)
}

func TestProfileUsecase_Patch_UpdateError(t *testing.T) {
	profileRepo := new(MockProfileRepository)
	uc := usecases.NewProfileUsecase(profileRepo, new(MockUserRepository))

	userID := uuid.New()
	profileRepo.On("GetByUserID", context.Background(), userID).Return(&entities.UserProfile{UserID: userID}, nil).Once()
	profileRepo.On("Update", context.Background(), mock.AnythingOfType("*entities.UserProfile")).Return(errors.New("db down")).Once()

	name := "Ada"
	_, err := uc.Patch(context.Background(), userID, &entities.PatchProfileInput{FirstName: &name})
	assert.EqualError(t, err, "db down")
}
