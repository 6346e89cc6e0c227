package models

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	TicketNumber string    `gorm:"type:varchar(32);uniqueIndex;not null"`
	UserID       *string   `gorm:"type:varchar(64);index"`
	Email        string    `gorm:"type:varchar(255);not null;index"`
	Subject      string    `gorm:"type:varchar(200);not null"`
	Message      string    `gorm:"type:text;not null"`
	Status       string    `gorm:"type:varchar(20);not null;default:'new';index"`
	Reply        *string   `gorm:"type:text"`
	RepliedBy    *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
