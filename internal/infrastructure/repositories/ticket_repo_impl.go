package repositories

import (
	"context"
	"errors"
	"time"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/infrastructure/models"
	"finsim.backend/pkg/utils"
	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
)

// TicketRepository implements support ticket data operations
type TicketRepository struct {
	db *gorm.DB
}

// NewTicketRepository creates a new ticket repository
func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create creates a new ticket
func (r *TicketRepository) Create(ctx context.Context, ticket *entities.Ticket) error {
	if ticket.ID == uuid.Nil {
		ticket.ID = utils.GenerateUUIDv7()
	}
	m := &models.Ticket{
		ID:           ticket.ID,
		TicketNumber: ticket.TicketNumber,
		UserID:       ticket.UserID.Ptr(),
		Email:        ticket.Email,
		Subject:      ticket.Subject,
		Message:      ticket.Message,
		Status:       string(ticket.Status),
		Reply:        ticket.Reply.Ptr(),
		RepliedBy:    ticket.RepliedBy.Ptr(),
		CreatedAt:    ticket.CreatedAt,
		UpdatedAt:    ticket.UpdatedAt,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	return nil
}

// GetByID gets a ticket by ID
func (r *TicketRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Ticket, error) {
	var m models.Ticket
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update updates ticket status and reply fields
func (r *TicketRepository) Update(ctx context.Context, ticket *entities.Ticket) error {
	updates := map[string]interface{}{
		"status":     string(ticket.Status),
		"updated_at": time.Now(),
	}
	if ticket.Reply.Valid {
		updates["reply"] = ticket.Reply.String
	}
	if ticket.RepliedBy.Valid {
		updates["replied_by"] = ticket.RepliedBy.String
	}

	result := r.db.WithContext(ctx).Model(&models.Ticket{}).Where("id = ?", ticket.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List returns tickets newest first, optionally filtered by status
func (r *TicketRepository) List(ctx context.Context, status *entities.TicketStatus, pagination utils.PaginationParams) ([]*entities.Ticket, int64, error) {
	var ms []models.Ticket
	var totalCount int64

	query := r.db.WithContext(ctx).Model(&models.Ticket{})
	if status != nil {
		query = query.Where("status = ?", string(*status))
	}

	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	tickets := make([]*entities.Ticket, 0, len(ms))
	for _, m := range ms {
		model := m
		tickets = append(tickets, r.toEntity(&model))
	}
	return tickets, totalCount, nil
}

// toEntity converts GORM model to Domain Entity
func (r *TicketRepository) toEntity(m *models.Ticket) *entities.Ticket {
	return &entities.Ticket{
		ID:           m.ID,
		TicketNumber: m.TicketNumber,
		UserID:       null.StringFromPtr(m.UserID),
		Email:        m.Email,
		Subject:      m.Subject,
		Message:      m.Message,
		Status:       entities.TicketStatus(m.Status),
		Reply:        null.StringFromPtr(m.Reply),
		RepliedBy:    null.StringFromPtr(m.RepliedBy),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
