package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/domain/repositories"
)

// ProfileUsecase handles user financial profiles
type ProfileUsecase struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) *ProfileUsecase {
	return &ProfileUsecase{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

// Get gets the caller's profile
func (u *ProfileUsecase) Get(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Profile not found")
		}
		return nil, err
	}
	return profile, nil
}

// Upsert creates or replaces the caller's profile. Subscription state
// is never touched here; billing flows own those fields.
func (u *ProfileUsecase) Upsert(ctx context.Context, userID uuid.UUID, input *entities.UpsertProfileInput) (*entities.UserProfile, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	profile := &entities.UserProfile{
		UserID:    userID,
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Phone:     input.Phone,
		Currency:  input.Currency,
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = null.TimeFrom(*input.DateOfBirth)
	}
	if input.MonthlyIncome != nil {
		profile.MonthlyIncome = null.Int64From(*input.MonthlyIncome)
	}
	if input.SavingsGoal != nil {
		profile.SavingsGoal = null.Int64From(*input.SavingsGoal)
	}
	if input.RiskTolerance != nil {
		profile.RiskTolerance = null.StringFrom(*input.RiskTolerance)
	}

	if err := u.profileRepo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	// Re-read so the response carries untouched subscription state
	return u.profileRepo.GetByUserID(ctx, userID)
}

// Patch applies only the supplied fields to the caller's profile
func (u *ProfileUsecase) Patch(ctx context.Context, userID uuid.UUID, input *entities.PatchProfileInput) (*entities.UserProfile, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Profile not found")
		}
		return nil, err
	}

	if input.FirstName != nil {
		profile.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		profile.LastName = *input.LastName
	}
	if input.Phone != nil {
		profile.Phone = *input.Phone
	}
	if input.DateOfBirth != nil {
		profile.DateOfBirth = null.TimeFrom(*input.DateOfBirth)
	}
	if input.Currency != nil {
		profile.Currency = *input.Currency
	}
	if input.MonthlyIncome != nil {
		profile.MonthlyIncome = null.Int64From(*input.MonthlyIncome)
	}
	if input.SavingsGoal != nil {
		profile.SavingsGoal = null.Int64From(*input.SavingsGoal)
	}
	if input.RiskTolerance != nil {
		profile.RiskTolerance = null.StringFrom(*input.RiskTolerance)
	}

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
