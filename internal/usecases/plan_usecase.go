package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/domain/repositories"
)

// PlanUsecase handles subscription plan catalog management
type PlanUsecase struct {
	planRepo repositories.PlanRepository
}

// NewPlanUsecase creates a new plan usecase
func NewPlanUsecase(planRepo repositories.PlanRepository) *PlanUsecase {
	return &PlanUsecase{planRepo: planRepo}
}

// ListActive lists the plans shown to end users
func (u *PlanUsecase) ListActive(ctx context.Context) ([]*entities.Plan, error) {
	return u.planRepo.GetActive(ctx)
}

// ListAll lists every plan, active or not
func (u *PlanUsecase) ListAll(ctx context.Context) ([]*entities.Plan, error) {
	return u.planRepo.GetAll(ctx)
}

// GetByID gets a plan by ID
func (u *PlanUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error) {
	plan, err := u.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Subscription plan not found")
		}
		return nil, err
	}
	return plan, nil
}

// Create creates a plan. Plan names are unique across the catalog.
func (u *PlanUsecase) Create(ctx context.Context, input *entities.CreatePlanInput) (*entities.Plan, error) {
	_, err := u.planRepo.GetByName(ctx, input.PlanName)
	if err == nil {
		return nil, domainerrors.Conflict("Subscription with this plan name already exists")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	isActive := true
	if input.IsActive != nil {
		isActive = *input.IsActive
	}
	features := input.Features
	if features == nil {
		features = []string{}
	}

	plan := &entities.Plan{
		PlanName:         input.PlanName,
		Description:      input.Description,
		Price:            input.Price,
		Currency:         input.Currency,
		Interval:         input.Interval,
		StripePriceID:    input.StripePriceID,
		SimulationsLimit: input.SimulationsLimit,
		Features:         features,
		IsActive:         isActive,
	}
	if err := u.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Update applies the supplied fields to an existing plan
func (u *PlanUsecase) Update(ctx context.Context, id uuid.UUID, input *entities.UpdatePlanInput) (*entities.Plan, error) {
	plan, err := u.planRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Subscription plan not found")
		}
		return nil, err
	}

	if input.PlanName != nil && *input.PlanName != plan.PlanName {
		existing, err := u.planRepo.GetByName(ctx, *input.PlanName)
		if err == nil && existing.ID != plan.ID {
			return nil, domainerrors.Conflict("Subscription with this plan name already exists")
		}
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		plan.PlanName = *input.PlanName
	}
	if input.Description != nil {
		plan.Description = *input.Description
	}
	if input.Price != nil {
		plan.Price = *input.Price
	}
	if input.Currency != nil {
		plan.Currency = *input.Currency
	}
	if input.Interval != nil {
		plan.Interval = *input.Interval
	}
	if input.StripePriceID != nil {
		plan.StripePriceID = *input.StripePriceID
	}
	if input.SimulationsLimit != nil {
		plan.SimulationsLimit = *input.SimulationsLimit
	}
	if input.Features != nil {
		plan.Features = *input.Features
	}
	if input.IsActive != nil {
		plan.IsActive = *input.IsActive
	}

	if err := u.planRepo.Update(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// Delete removes a plan from the catalog
func (u *PlanUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	if err := u.planRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("Subscription plan not found")
		}
		return err
	}
	return nil
}
