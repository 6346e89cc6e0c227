package models

import (
	"time"

	"github.com/google/uuid"
)

type OTPChallenge struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_otp_email_kind"`
	Kind  string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_otp_email_kind"`
	Code  string    `gorm:"type:varchar(12);not null"`

	// Pending registration payload
	PasswordHash string `gorm:"type:varchar(255)"`
	FullName     string `gorm:"type:varchar(100)"`

	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (OTPChallenge) TableName() string {
	return "otp_challenges"
}
