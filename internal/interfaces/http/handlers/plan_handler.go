package handlers

import (
	"net/http"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/interfaces/http/response"
	"finsim.backend/internal/usecases"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PlanHandler handles subscription plan catalog endpoints
type PlanHandler struct {
	planUsecase *usecases.PlanUsecase
}

// NewPlanHandler creates a new plan handler
func NewPlanHandler(planUsecase *usecases.PlanUsecase) *PlanHandler {
	return &PlanHandler{planUsecase: planUsecase}
}

// ListActive returns the public catalog of active plans
// GET /api/v1/subscription-plans
func (h *PlanHandler) ListActive(c *gin.Context) {
	plans, err := h.planUsecase.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Plans fetched", plans)
}

// ListAll returns every plan including inactive ones
// GET /api/v1/subscription-plans/all
func (h *PlanHandler) ListAll(c *gin.Context) {
	plans, err := h.planUsecase.ListAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Plans fetched", plans)
}

// Get returns a single plan
// GET /api/v1/subscription-plans/:id
func (h *PlanHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid plan ID"))
		return
	}

	plan, err := h.planUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Plan fetched", plan)
}

// Create adds a plan to the catalog
// POST /api/v1/subscription-plans
func (h *PlanHandler) Create(c *gin.Context) {
	var input entities.CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	plan, err := h.planUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Plan created", plan)
}

// Update modifies a plan
// PUT /api/v1/subscription-plans/:id
func (h *PlanHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid plan ID"))
		return
	}

	var input entities.UpdatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	plan, err := h.planUsecase.Update(c.Request.Context(), id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Plan updated", plan)
}

// Delete removes a plan from the catalog
// DELETE /api/v1/subscription-plans/:id
func (h *PlanHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid plan ID"))
		return
	}

	if err := h.planUsecase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Plan deleted", nil)
}
