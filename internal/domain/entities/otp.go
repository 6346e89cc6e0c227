package entities

import (
	"time"

	"github.com/google/uuid"
)

// ChallengeKind distinguishes what an OTP challenge unlocks
type ChallengeKind string

const (
	ChallengeRegistration       ChallengeKind = "registration"
	ChallengePasswordReset      ChallengeKind = "password_reset"
	ChallengeAdminPasswordReset ChallengeKind = "admin_password_reset"
	ChallengeAccountDeletion    ChallengeKind = "account_deletion"
)

// OTPChallenge represents a pending email verification challenge.
// Registration challenges also carry the pending account material so
// no account row exists until the code is confirmed.
type OTPChallenge struct {
	ID        uuid.UUID     `json:"id"`
	Email     string        `json:"email"`
	Kind      ChallengeKind `json:"kind"`
	Code      string        `json:"-"`
	ExpiresAt time.Time     `json:"expiresAt"`
	CreatedAt time.Time     `json:"createdAt"`

	// Pending registration payload, empty for other kinds
	PasswordHash string `json:"-"`
	FullName     string `json:"-"`
}

// IsExpired reports whether the challenge is past its expiry
func (c *OTPChallenge) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
