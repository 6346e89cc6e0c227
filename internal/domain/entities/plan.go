package entities

import (
	"time"

	"github.com/google/uuid"
)

// Plan represents a purchasable subscription plan
type Plan struct {
	ID               uuid.UUID  `json:"id"`
	PlanName         string     `json:"planName"`
	Description      string     `json:"description"`
	Price            int64      `json:"price"` // minor units
	Currency         string     `json:"currency"`
	Interval         string     `json:"interval"` // month or year
	StripePriceID    string     `json:"stripePriceId"`
	SimulationsLimit int        `json:"simulationsLimit"`
	Features         []string   `json:"features"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	DeletedAt        *time.Time `json:"-"`
}

// CreatePlanInput represents input for creating a plan
type CreatePlanInput struct {
	PlanName         string   `json:"planName" binding:"required,min=2,max=100"`
	Description      string   `json:"description"`
	Price            int64    `json:"price" binding:"required,min=0"`
	Currency         string   `json:"currency" binding:"required,len=3"`
	Interval         string   `json:"interval" binding:"required,oneof=month year"`
	StripePriceID    string   `json:"stripePriceId"`
	SimulationsLimit int      `json:"simulationsLimit" binding:"min=0"`
	Features         []string `json:"features"`
	IsActive         *bool    `json:"isActive"`
}

// UpdatePlanInput represents input for updating a plan
type UpdatePlanInput struct {
	PlanName         *string   `json:"planName,omitempty" binding:"omitempty,min=2,max=100"`
	Description      *string   `json:"description,omitempty"`
	Price            *int64    `json:"price,omitempty" binding:"omitempty,min=0"`
	Currency         *string   `json:"currency,omitempty" binding:"omitempty,len=3"`
	Interval         *string   `json:"interval,omitempty" binding:"omitempty,oneof=month year"`
	StripePriceID    *string   `json:"stripePriceId,omitempty"`
	SimulationsLimit *int      `json:"simulationsLimit,omitempty" binding:"omitempty,min=0"`
	Features         *[]string `json:"features,omitempty"`
	IsActive         *bool     `json:"isActive,omitempty"`
}
