package models

import (
	"time"

	"github.com/google/uuid"
)

type UserProfile struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	FirstName     string    `gorm:"type:varchar(100)"`
	LastName      string    `gorm:"type:varchar(100)"`
	Phone         string    `gorm:"type:varchar(32)"`
	DateOfBirth   *time.Time
	Currency      string `gorm:"type:varchar(3)"`
	MonthlyIncome *int64
	SavingsGoal   *int64
	RiskTolerance *string `gorm:"type:varchar(10)"`

	// Subscription state, reconciled against the payment gateway
	PlanID               *string `gorm:"type:varchar(64)"`
	PlanName             *string `gorm:"type:varchar(100)"`
	StartedAt            *time.Time
	ExpiresAt            *time.Time
	StripeCustomerID     *string `gorm:"type:varchar(255)"`
	StripeSubscriptionID *string `gorm:"type:varchar(255);index"`
	StripePriceID        *string `gorm:"type:varchar(255)"`
	SubIsActive          bool    `gorm:"column:sub_is_active;not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
