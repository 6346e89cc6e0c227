package entities

import (
	"time"

	"github.com/google/uuid"
)

// AdminRole represents admin roles
type AdminRole string

const (
	AdminRoleAdmin      AdminRole = "admin"
	AdminRoleSuperAdmin AdminRole = "superadmin"
)

// Valid reports whether the role is a known admin role
func (r AdminRole) Valid() bool {
	return r == AdminRoleAdmin || r == AdminRoleSuperAdmin
}

// Admin represents a back-office operator account
type Admin struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key"`
	Email        string     `json:"email"`
	FullName     string     `json:"fullName"`
	PasswordHash string     `json:"-"`
	Role         AdminRole  `json:"role"`
	IsBlocked    bool       `json:"isBlocked"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// CreateAdminInput represents input for creating an admin (superadmin only)
type CreateAdminInput struct {
	Email    string    `json:"email" binding:"required,email"`
	FullName string    `json:"fullName" binding:"required,min=2,max=100"`
	Password string    `json:"password" binding:"required,min=8"`
	Role     AdminRole `json:"role" binding:"required,oneof=admin superadmin"`
}

// UpdateAdminInput represents input for updating an admin (superadmin only)
type UpdateAdminInput struct {
	FullName  *string    `json:"fullName,omitempty" binding:"omitempty,min=2,max=100"`
	Role      *AdminRole `json:"role,omitempty" binding:"omitempty,oneof=admin superadmin"`
	IsBlocked *bool      `json:"isBlocked,omitempty"`
}

// AdminLoginInput represents input for admin login
type AdminLoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AdminAuthResponse represents admin authentication response
type AdminAuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	Admin        *Admin `json:"admin,omitempty"`
}

// AdminUserDetail represents a user with their profile attached, as
// shown in the admin console
type AdminUserDetail struct {
	*User
	Profile *UserProfile `json:"profile"`
}
