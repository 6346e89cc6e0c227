package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Plan struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlanName         string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	Description      string    `gorm:"type:text"`
	Price            int64     `gorm:"not null"`
	Currency         string    `gorm:"type:varchar(3);not null"`
	Interval         string    `gorm:"type:varchar(10);not null"`
	StripePriceID    string    `gorm:"type:varchar(255)"`
	SimulationsLimit int       `gorm:"not null;default:0"`
	Features         string    `gorm:"type:text"` // JSON-encoded []string
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (Plan) TableName() string {
	return "subscription_plans"
}
