package repositories

import (
	"context"

	"finsim.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// ProfileRepository defines user profile data operations
type ProfileRepository interface {
	// Upsert atomically creates or replaces the profile keyed by user
	Upsert(ctx context.Context, profile *entities.UserProfile) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserProfile, error)
	GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*entities.UserProfile, error)
	Update(ctx context.Context, profile *entities.UserProfile) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
}
