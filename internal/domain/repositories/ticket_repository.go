package repositories

import (
	"context"

	"finsim.backend/internal/domain/entities"
	"finsim.backend/pkg/utils"
	"github.com/google/uuid"
)

// TicketRepository defines support ticket data operations
type TicketRepository interface {
	Create(ctx context.Context, ticket *entities.Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Ticket, error)
	Update(ctx context.Context, ticket *entities.Ticket) error
	List(ctx context.Context, status *entities.TicketStatus, pagination utils.PaginationParams) ([]*entities.Ticket, int64, error)
}
