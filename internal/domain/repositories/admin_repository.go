package repositories

import (
	"context"

	"finsim.backend/internal/domain/entities"
	"github.com/google/uuid"
)

// AdminRepository defines admin account data operations
type AdminRepository interface {
	Create(ctx context.Context, admin *entities.Admin) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Admin, error)
	GetByEmail(ctx context.Context, email string) (*entities.Admin, error)
	Update(ctx context.Context, admin *entities.Admin) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*entities.Admin, error)
	CountByRole(ctx context.Context, role entities.AdminRole) (int64, error)
}
