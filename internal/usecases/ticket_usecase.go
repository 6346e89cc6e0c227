package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/domain/gateways"
	"finsim.backend/internal/domain/repositories"
	"finsim.backend/internal/infrastructure/email"
	"finsim.backend/pkg/logger"
	"finsim.backend/pkg/utils"
)

// TicketUsecase handles support tickets
type TicketUsecase struct {
	ticketRepo repositories.TicketRepository
	userRepo   repositories.UserRepository
	mailer     gateways.Mailer
	now        func() time.Time
}

// NewTicketUsecase creates a new ticket usecase
func NewTicketUsecase(
	ticketRepo repositories.TicketRepository,
	userRepo repositories.UserRepository,
	mailer gateways.Mailer,
) *TicketUsecase {
	return &TicketUsecase{
		ticketRepo: ticketRepo,
		userRepo:   userRepo,
		mailer:     mailer,
		now:        time.Now,
	}
}

// Create opens a ticket for a user and sends a confirmation email
func (u *TicketUsecase) Create(ctx context.Context, userID uuid.UUID, input *entities.CreateTicketInput) (*entities.Ticket, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	ticket := &entities.Ticket{
		TicketNumber: entities.NewTicketNumber(entities.TicketPrefixUser, u.now()),
		UserID:       null.StringFrom(user.ID.String()),
		Email:        user.Email,
		Subject:      input.Subject,
		Message:      input.Message,
		Status:       entities.TicketStatusNew,
	}
	if err := u.ticketRepo.Create(ctx, ticket); err != nil {
		return nil, err
	}

	go func() {
		subject, body := email.TicketConfirmationEmail(ticket.TicketNumber, ticket.Subject)
		if err := u.mailer.Send(context.Background(), ticket.Email, subject, body); err != nil {
			logger.Error(context.Background(), "failed to send ticket confirmation email",
				zap.String("ticket_number", ticket.TicketNumber),
				zap.Error(err))
		}
	}()

	return ticket, nil
}

// List lists tickets for the admin console, newest first
func (u *TicketUsecase) List(ctx context.Context, status *entities.TicketStatus, pagination utils.PaginationParams) ([]*entities.Ticket, int64, error) {
	return u.ticketRepo.List(ctx, status, pagination)
}

// Get gets one ticket. An admin reading a fresh ticket moves it from
// new to open.
func (u *TicketUsecase) Get(ctx context.Context, id uuid.UUID) (*entities.Ticket, error) {
	ticket, err := u.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Ticket not found")
		}
		return nil, err
	}

	if ticket.Status == entities.TicketStatusNew {
		ticket.Status = entities.TicketStatusOpen
		if err := u.ticketRepo.Update(ctx, ticket); err != nil {
			return nil, err
		}
	}
	return ticket, nil
}

// Reply stores an admin reply and notifies the requester
func (u *TicketUsecase) Reply(ctx context.Context, id uuid.UUID, adminID uuid.UUID, input *entities.ReplyTicketInput) (*entities.Ticket, error) {
	ticket, err := u.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Ticket not found")
		}
		return nil, err
	}

	ticket.Reply = null.StringFrom(input.Reply)
	ticket.RepliedBy = null.StringFrom(adminID.String())
	ticket.Status = entities.TicketStatusReplied
	if err := u.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}

	go func() {
		subject, body := email.TicketReplyEmail(ticket.TicketNumber, input.Reply)
		if err := u.mailer.Send(context.Background(), ticket.Email, subject, body); err != nil {
			logger.Error(context.Background(), "failed to send ticket reply email",
				zap.String("ticket_number", ticket.TicketNumber),
				zap.Error(err))
		}
	}()

	return ticket, nil
}

// Close closes a ticket
func (u *TicketUsecase) Close(ctx context.Context, id uuid.UUID) (*entities.Ticket, error) {
	ticket, err := u.ticketRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("Ticket not found")
		}
		return nil, err
	}

	ticket.Status = entities.TicketStatusClosed
	if err := u.ticketRepo.Update(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}
