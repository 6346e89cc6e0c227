package entities

import (
	"time"

	"github.com/google/uuid"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser UserRole = "user"
)

// User represents a verified account
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"`
	Role         UserRole   `json:"role"`
	IsVerified   bool       `json:"isVerified"`
	IsBlocked    bool       `json:"isBlocked"`
	GoogleLinked bool       `json:"googleLinked"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// RegisterInput represents input for starting a registration
type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Password string `json:"password" binding:"required,min=8"`
}

// VerifyOTPInput represents input for completing a registration
type VerifyOTPInput struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,len=6"`
}

// ResendOTPInput represents input for re-sending a verification code
type ResendOTPInput struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"` // If true, store tokens in Redis and return SessionID
}

// GoogleLoginInput represents input for Google sign-in
type GoogleLoginInput struct {
	Code string `json:"code" binding:"required"`
}

// RefreshInput represents input for refreshing an access token
type RefreshInput struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// ForgotPasswordInput represents input for requesting a password reset
type ForgotPasswordInput struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordInput represents input for completing a password reset
type ResetPasswordInput struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,len=6"`
	NewPassword string `json:"newPassword" binding:"required,min=8"`
}

// ChangePasswordInput represents input for changing a password while logged in
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
}

// ConfirmDeletionInput represents input for confirming account deletion
type ConfirmDeletionInput struct {
	OTP string `json:"otp" binding:"required,len=6"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user,omitempty"`
}
