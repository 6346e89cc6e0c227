package repositories

import (
	"context"
	"errors"
	"time"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/infrastructure/models"
	"finsim.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProfileRepository implements user profile data operations
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Upsert atomically creates or replaces the profile keyed by user_id.
// Subscription fields are left alone on conflict so a concurrent
// webhook reconcile cannot be clobbered by a profile save.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *entities.UserProfile) error {
	if profile.ID == uuid.Nil {
		profile.ID = utils.GenerateUUIDv7()
	}
	m := r.toModel(profile)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"first_name", "last_name", "phone", "date_of_birth",
			"currency", "monthly_income", "savings_goal", "risk_tolerance",
			"updated_at",
		}),
	}).Create(m).Error
}

// GetByUserID gets a profile by owning user
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error) {
	var m models.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByStripeSubscriptionID locates the profile a gateway webhook refers to
func (r *ProfileRepository) GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*entities.UserProfile, error) {
	var m models.UserProfile
	if err := r.db.WithContext(ctx).Where("stripe_subscription_id = ?", subscriptionID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update rewrites the full profile row, subscription state included
func (r *ProfileRepository) Update(ctx context.Context, profile *entities.UserProfile) error {
	m := r.toModel(profile)
	m.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).Model(&models.UserProfile{}).Where("user_id = ?", profile.UserID).
		Select("*").Omit("id", "user_id", "created_at").Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByUserID removes a user's profile, tolerating absence
func (r *ProfileRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.UserProfile{}, "user_id = ?", userID).Error
}

func (r *ProfileRepository) toModel(p *entities.UserProfile) *models.UserProfile {
	return &models.UserProfile{
		ID:                   p.ID,
		UserID:               p.UserID,
		FirstName:            p.FirstName,
		LastName:             p.LastName,
		Phone:                p.Phone,
		DateOfBirth:          timePtr(p.DateOfBirth),
		Currency:             p.Currency,
		MonthlyIncome:        int64Ptr(p.MonthlyIncome),
		SavingsGoal:          int64Ptr(p.SavingsGoal),
		RiskTolerance:        strPtr(p.RiskTolerance),
		PlanID:               strPtr(p.Subscription.PlanID),
		PlanName:             strPtr(p.Subscription.PlanName),
		StartedAt:            timePtr(p.Subscription.StartedAt),
		ExpiresAt:            timePtr(p.Subscription.ExpiresAt),
		StripeCustomerID:     strPtr(p.Subscription.StripeCustomerID),
		StripeSubscriptionID: strPtr(p.Subscription.StripeSubscriptionID),
		StripePriceID:        strPtr(p.Subscription.StripePriceID),
		SubIsActive:          p.Subscription.IsActive,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

// toEntity converts GORM model to Domain Entity
func (r *ProfileRepository) toEntity(m *models.UserProfile) *entities.UserProfile {
	return &entities.UserProfile{
		ID:            m.ID,
		UserID:        m.UserID,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		Phone:         m.Phone,
		DateOfBirth:   null.TimeFromPtr(m.DateOfBirth),
		Currency:      m.Currency,
		MonthlyIncome: null.Int64FromPtr(m.MonthlyIncome),
		SavingsGoal:   null.Int64FromPtr(m.SavingsGoal),
		RiskTolerance: null.StringFromPtr(m.RiskTolerance),
		Subscription: entities.SubscriptionState{
			PlanID:               null.StringFromPtr(m.PlanID),
			PlanName:             null.StringFromPtr(m.PlanName),
			StartedAt:            null.TimeFromPtr(m.StartedAt),
			ExpiresAt:            null.TimeFromPtr(m.ExpiresAt),
			StripeCustomerID:     null.StringFromPtr(m.StripeCustomerID),
			StripeSubscriptionID: null.StringFromPtr(m.StripeSubscriptionID),
			StripePriceID:        null.StringFromPtr(m.StripePriceID),
			IsActive:             m.SubIsActive,
		},
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func strPtr(v null.String) *string {
	return v.Ptr()
}

func int64Ptr(v null.Int64) *int64 {
	return v.Ptr()
}

func timePtr(v null.Time) *time.Time {
	return v.Ptr()
}
