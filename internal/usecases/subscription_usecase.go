package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/domain/gateways"
	"finsim.backend/internal/domain/repositories"
	"finsim.backend/pkg/logger"
)

// SubscriptionUsecase drives the subscription lifecycle against the
// payment gateway and keeps the mirrored state on the user profile.
type SubscriptionUsecase struct {
	planRepo    repositories.PlanRepository
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
	gateway     gateways.PaymentGateway
	now         func() time.Time
}

// NewSubscriptionUsecase creates a new subscription usecase
func NewSubscriptionUsecase(
	planRepo repositories.PlanRepository,
	profileRepo repositories.ProfileRepository,
	userRepo repositories.UserRepository,
	gateway gateways.PaymentGateway,
) *SubscriptionUsecase {
	return &SubscriptionUsecase{
		planRepo:    planRepo,
		profileRepo: profileRepo,
		userRepo:    userRepo,
		gateway:     gateway,
		now:         time.Now,
	}
}

// Purchase creates a recurring gateway subscription for an active plan
// and mirrors its period bounds onto the profile
func (u *SubscriptionUsecase) Purchase(ctx context.Context, userID uuid.UUID, input *entities.PurchaseSubscriptionInput) (*entities.SubscriptionState, error) {
	planID, err := uuid.Parse(input.PlanID)
	if err != nil {
		return nil, domainerrors.BadRequest("Invalid plan ID")
	}

	plan, err := u.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Selected plan is not available")
		}
		return nil, err
	}
	if !plan.IsActive {
		return nil, domainerrors.ErrPlanNotActive
	}
	if plan.StripePriceID == "" {
		return nil, domainerrors.BadRequest("This plan does not have an associated Stripe price ID")
	}

	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User profile not found")
		}
		return nil, err
	}

	customerID := profile.Subscription.StripeCustomerID.String
	if !profile.Subscription.StripeCustomerID.Valid || customerID == "" {
		customer, err := u.gateway.CreateCustomer(ctx, user.Email, user.FullName)
		if err != nil {
			return nil, domainerrors.BadGateway("Failed to create billing customer", err)
		}
		customerID = customer.ID
	}

	if err := u.gateway.AttachPaymentMethod(ctx, customerID, input.PaymentMethodID); err != nil {
		return nil, domainerrors.BadGateway("Failed to attach payment method", err)
	}

	subscription, err := u.gateway.CreateSubscription(ctx, customerID, plan.StripePriceID)
	if err != nil {
		return nil, domainerrors.BadGateway("Failed to create subscription", err)
	}

	profile.Subscription = entities.SubscriptionState{
		PlanID:               null.StringFrom(plan.ID.String()),
		PlanName:             null.StringFrom(plan.PlanName),
		StartedAt:            null.TimeFrom(subscription.CurrentPeriodStart),
		ExpiresAt:            null.TimeFrom(subscription.CurrentPeriodEnd),
		StripeCustomerID:     null.StringFrom(customerID),
		StripeSubscriptionID: null.StringFrom(subscription.ID),
		StripePriceID:        null.StringFrom(plan.StripePriceID),
		IsActive:             true,
	}
	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}

	return &profile.Subscription, nil
}

// Extend pushes the subscription out by extraDays for free. The
// gateway trial_end moves relative to the stored expiry; the local
// expiry never moves into the past.
func (u *SubscriptionUsecase) Extend(ctx context.Context, userID uuid.UUID, extraDays int) (*entities.SubscriptionState, error) {
	if extraDays <= 0 {
		return nil, domainerrors.BadRequest("extraDays must be a positive number")
	}

	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User profile not found")
		}
		return nil, err
	}
	if !profile.Subscription.IsActive {
		return nil, domainerrors.ErrNoActiveSubscription
	}

	extra := time.Duration(extraDays) * 24 * time.Hour
	now := u.now()

	if profile.Subscription.StripeSubscriptionID.Valid {
		anchor := now
		if profile.Subscription.ExpiresAt.Valid {
			anchor = profile.Subscription.ExpiresAt.Time
		}
		if err := u.gateway.ExtendSubscription(ctx, profile.Subscription.StripeSubscriptionID.String, anchor.Add(extra)); err != nil {
			return nil, domainerrors.BadGateway("Failed to extend subscription with payment gateway", err)
		}
	}

	currentExpiry := now
	if profile.Subscription.ExpiresAt.Valid && profile.Subscription.ExpiresAt.Time.After(now) {
		currentExpiry = profile.Subscription.ExpiresAt.Time
	}
	profile.Subscription.ExpiresAt = null.TimeFrom(currentExpiry.Add(extra))

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return &profile.Subscription, nil
}

// Downgrade cancels any gateway subscription best-effort and clears
// every subscription field, returning the user to the free tier
func (u *SubscriptionUsecase) Downgrade(ctx context.Context, userID uuid.UUID) (*entities.SubscriptionState, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User profile not found")
		}
		return nil, err
	}

	if profile.Subscription.StripeSubscriptionID.Valid {
		if err := u.gateway.CancelSubscription(ctx, profile.Subscription.StripeSubscriptionID.String); err != nil {
			logger.Warn(ctx, "failed to cancel gateway subscription during downgrade",
				zap.String("subscription_id", profile.Subscription.StripeSubscriptionID.String),
				zap.Error(err))
		}
	}

	profile.Subscription.Clear()
	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return &profile.Subscription, nil
}

// Cancel ends an active subscription immediately. Plan fields are
// retained so the UI can still show what was cancelled.
func (u *SubscriptionUsecase) Cancel(ctx context.Context, userID uuid.UUID) (*entities.SubscriptionState, error) {
	profile, err := u.profileRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User profile not found")
		}
		return nil, err
	}
	if !profile.Subscription.IsActive {
		return nil, domainerrors.ErrNoActiveSubscription
	}

	if profile.Subscription.StripeSubscriptionID.Valid {
		if err := u.gateway.CancelSubscription(ctx, profile.Subscription.StripeSubscriptionID.String); err != nil {
			logger.Warn(ctx, "failed to cancel gateway subscription",
				zap.String("subscription_id", profile.Subscription.StripeSubscriptionID.String),
				zap.Error(err))
		}
	}

	profile.Subscription.ExpiresAt = null.TimeFrom(u.now())
	profile.Subscription.IsActive = false
	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return nil, err
	}
	return &profile.Subscription, nil
}

// HandleWebhookEvent reconciles profile state from a verified gateway
// event. Events that match no profile are dropped silently; the
// gateway retries deliveries and local signups may lag.
func (u *SubscriptionUsecase) HandleWebhookEvent(ctx context.Context, event *gateways.WebhookEvent) error {
	switch event.Type {
	case gateways.EventInvoicePaymentSucceeded, gateways.EventSubscriptionUpdated:
	default:
		return nil
	}
	if event.SubscriptionID == "" {
		return nil
	}

	profile, err := u.profileRepo.GetByStripeSubscriptionID(ctx, event.SubscriptionID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			logger.Info(ctx, "webhook event matched no profile",
				zap.String("event_id", event.ID),
				zap.String("subscription_id", event.SubscriptionID))
			return nil
		}
		return err
	}

	if !event.PeriodStart.IsZero() {
		profile.Subscription.StartedAt = null.TimeFrom(event.PeriodStart)
	}
	if !event.PeriodEnd.IsZero() {
		profile.Subscription.ExpiresAt = null.TimeFrom(event.PeriodEnd)
	}

	switch event.Type {
	case gateways.EventInvoicePaymentSucceeded:
		profile.Subscription.IsActive = true
	case gateways.EventSubscriptionUpdated:
		profile.Subscription.IsActive = event.Status == "active" && !event.CancelAtPeriodEnd
	}

	if err := u.profileRepo.Update(ctx, profile); err != nil {
		return err
	}

	logger.Info(ctx, "subscription reconciled from webhook",
		zap.String("event_id", event.ID),
		zap.String("event_type", event.Type),
		zap.String("subscription_id", event.SubscriptionID),
		zap.Bool("is_active", profile.Subscription.IsActive))
	return nil
}
