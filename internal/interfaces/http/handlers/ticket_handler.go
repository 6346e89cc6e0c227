package handlers

import (
	"net/http"
	"strconv"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/interfaces/http/middleware"
	"finsim.backend/internal/interfaces/http/response"
	"finsim.backend/internal/usecases"
	"finsim.backend/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TicketHandler handles support ticket endpoints
type TicketHandler struct {
	ticketUsecase *usecases.TicketUsecase
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(ticketUsecase *usecases.TicketUsecase) *TicketHandler {
	return &TicketHandler{ticketUsecase: ticketUsecase}
}

// Create opens a support ticket for the caller
// POST /api/v1/tickets
func (h *TicketHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User identity not found"))
		return
	}

	var input entities.CreateTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	ticket, err := h.ticketUsecase.Create(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Ticket created", ticket)
}

// List returns tickets for the admin console, newest first
// GET /api/v1/admin/tickets?status=&page=&limit=
func (h *TicketHandler) List(c *gin.Context) {
	var status *entities.TicketStatus
	if raw := c.Query("status"); raw != "" {
		s := entities.TicketStatus(raw)
		if !s.Valid() {
			response.Error(c, domainerrors.BadRequest("Invalid ticket status"))
			return
		}
		status = &s
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	pagination := utils.GetPaginationParams(page, limit)

	tickets, total, err := h.ticketUsecase.List(c.Request.Context(), status, pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Tickets fetched", gin.H{
		"tickets":    tickets,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// Get returns one ticket; reading a new ticket marks it open
// GET /api/v1/admin/tickets/:id
func (h *TicketHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid ticket ID"))
		return
	}

	ticket, err := h.ticketUsecase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket fetched", ticket)
}

// Reply records an admin reply and emails the requester
// PUT /api/v1/admin/tickets/:id/reply
func (h *TicketHandler) Reply(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Admin identity not found"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid ticket ID"))
		return
	}

	var input entities.ReplyTicketInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	ticket, err := h.ticketUsecase.Reply(c.Request.Context(), id, adminID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Reply sent", ticket)
}

// Close marks a ticket closed
// PUT /api/v1/admin/tickets/:id/close
func (h *TicketHandler) Close(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid ticket ID"))
		return
	}

	ticket, err := h.ticketUsecase.Close(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Ticket closed", ticket)
}
