package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// SubscriptionState holds the billing state carried on a profile.
// It mirrors what the payment gateway last told us; webhook
// reconciliation may rewrite it at any time.
type SubscriptionState struct {
	PlanID               null.String `json:"planId,omitempty"`
	PlanName             null.String `json:"planName,omitempty"`
	StartedAt            null.Time   `json:"startedAt,omitempty"`
	ExpiresAt            null.Time   `json:"expiresAt,omitempty"`
	StripeCustomerID     null.String `json:"-"`
	StripeSubscriptionID null.String `json:"-"`
	StripePriceID        null.String `json:"-"`
	IsActive             bool        `json:"isActive"`
}

// Clear resets every subscription field, including the customer ID
func (s *SubscriptionState) Clear() {
	*s = SubscriptionState{}
}

// UserProfile represents a user's financial profile
type UserProfile struct {
	ID            uuid.UUID   `json:"id"`
	UserID        uuid.UUID   `json:"userId"`
	FirstName     string      `json:"firstName"`
	LastName      string      `json:"lastName"`
	Phone         string      `json:"phone"`
	DateOfBirth   null.Time   `json:"dateOfBirth,omitempty"`
	Currency      string      `json:"currency"`
	MonthlyIncome null.Int64  `json:"monthlyIncome,omitempty"` // minor units
	SavingsGoal   null.Int64  `json:"savingsGoal,omitempty"`   // minor units
	RiskTolerance null.String `json:"riskTolerance,omitempty"`

	Subscription SubscriptionState `json:"subscription"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpsertProfileInput represents input for creating or replacing a profile
type UpsertProfileInput struct {
	FirstName     string     `json:"firstName" binding:"required,min=1,max=100"`
	LastName      string     `json:"lastName" binding:"required,min=1,max=100"`
	Phone         string     `json:"phone" binding:"omitempty,max=32"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	Currency      string     `json:"currency" binding:"omitempty,len=3"`
	MonthlyIncome *int64     `json:"monthlyIncome,omitempty" binding:"omitempty,min=0"`
	SavingsGoal   *int64     `json:"savingsGoal,omitempty" binding:"omitempty,min=0"`
	RiskTolerance *string    `json:"riskTolerance,omitempty" binding:"omitempty,oneof=low medium high"`
}

// PatchProfileInput represents input for partially updating a profile.
// Only fields present in the request body are applied.
type PatchProfileInput struct {
	FirstName     *string    `json:"firstName,omitempty" binding:"omitempty,min=1,max=100"`
	LastName      *string    `json:"lastName,omitempty" binding:"omitempty,min=1,max=100"`
	Phone         *string    `json:"phone,omitempty" binding:"omitempty,max=32"`
	DateOfBirth   *time.Time `json:"dateOfBirth,omitempty"`
	Currency      *string    `json:"currency,omitempty" binding:"omitempty,len=3"`
	MonthlyIncome *int64     `json:"monthlyIncome,omitempty" binding:"omitempty,min=0"`
	SavingsGoal   *int64     `json:"savingsGoal,omitempty" binding:"omitempty,min=0"`
	RiskTolerance *string    `json:"riskTolerance,omitempty" binding:"omitempty,oneof=low medium high"`
}
