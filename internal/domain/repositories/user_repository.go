package repositories

import (
	"context"

	"finsim.backend/internal/domain/entities"
	"finsim.backend/pkg/utils"
	"github.com/google/uuid"
)

// UserRepository defines user account data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
	SetBlocked(ctx context.Context, id uuid.UUID, blocked bool) error
	// Delete removes the account row for good; account deletion is
	// OTP-confirmed and not reversible.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, search string, pagination utils.PaginationParams) ([]*entities.User, int64, error)
}

// OTPChallengeRepository defines verification challenge operations
type OTPChallengeRepository interface {
	// Replace drops any existing challenge for (email, kind) and
	// stores the new one, keeping at most one pending per pair.
	Replace(ctx context.Context, challenge *entities.OTPChallenge) error
	GetByEmailAndKind(ctx context.Context, email string, kind entities.ChallengeKind) (*entities.OTPChallenge, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteExpired(ctx context.Context) (int64, error)
}
