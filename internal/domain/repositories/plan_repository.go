package repositories

import (
	"context"

	"finsim.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// PlanRepository defines subscription plan data operations
type PlanRepository interface {
	Create(ctx context.Context, plan *entities.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Plan, error)
	GetByName(ctx context.Context, planName string) (*entities.Plan, error)
	GetAll(ctx context.Context) ([]*entities.Plan, error)
	GetActive(ctx context.Context) ([]*entities.Plan, error)
	Update(ctx context.Context, plan *entities.Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
}
