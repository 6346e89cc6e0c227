package handlers

import (
	"net/http"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/interfaces/http/middleware"
	"finsim.backend/internal/interfaces/http/response"
	"finsim.backend/internal/usecases"
	"github.com/gin-gonic/gin"
)

// ProfileHandler handles user profile endpoints
type ProfileHandler struct {
	profileUsecase *usecases.ProfileUsecase
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase *usecases.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

// Get returns the caller's profile
// GET /api/v1/users/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User identity not found"))
		return
	}

	profile, err := h.profileUsecase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile fetched", profile)
}

// Upsert creates or replaces the caller's profile
// POST /api/v1/users/profile
func (h *ProfileHandler) Upsert(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User identity not found"))
		return
	}

	var input entities.UpsertProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUsecase.Upsert(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile saved", profile)
}

// Patch applies a partial update to the caller's profile
// PATCH /api/v1/users/profile
func (h *ProfileHandler) Patch(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User identity not found"))
		return
	}

	var input entities.PatchProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	profile, err := h.profileUsecase.Patch(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", profile)
}
