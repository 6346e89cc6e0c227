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

// AdminHandler handles admin console endpoints
type AdminHandler struct {
	adminUsecase        *usecases.AdminUsecase
	subscriptionUsecase *usecases.SubscriptionUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase, subscriptionUsecase *usecases.SubscriptionUsecase) *AdminHandler {
	return &AdminHandler{
		adminUsecase:        adminUsecase,
		subscriptionUsecase: subscriptionUsecase,
	}
}

// Login handles admin login
// POST /api/v1/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var input entities.AdminLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.adminUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", auth)
}

// Refresh mints a new admin access token
// POST /api/v1/admin/refresh-token
func (h *AdminHandler) Refresh(c *gin.Context) {
	var input entities.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	auth, err := h.adminUsecase.Refresh(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Token refreshed", auth)
}

// ForgotPassword starts an admin password reset
// POST /api/v1/admin/forgot-password
func (h *AdminHandler) ForgotPassword(c *gin.Context) {
	var input entities.ForgotPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.ForgotPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset code sent", nil)
}

// ResendOTP re-sends the reset code, falling back to a fresh
// forgot-password flow when no reset is pending
// POST /api/v1/admin/resend-otp
func (h *AdminHandler) ResendOTP(c *gin.Context) {
	var input entities.ResendOTPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.ResendOTP(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset code re-sent", nil)
}

// ResetPassword completes an admin password reset
// POST /api/v1/admin/reset-password
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password reset successfully", nil)
}

// ChangePassword changes the caller's admin password
// POST /api/v1/admin/change-password
func (h *AdminHandler) ChangePassword(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Admin identity not found"))
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.adminUsecase.ChangePassword(c.Request.Context(), adminID, &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// GetProfile returns the caller's admin record
// GET /api/v1/admin/profile
func (h *AdminHandler) GetProfile(c *gin.Context) {
	adminID, ok := middleware.GetAdminID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Admin identity not found"))
		return
	}

	admin, err := h.adminUsecase.GetProfile(c.Request.Context(), adminID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Profile fetched", admin)
}

// ListUsers returns users with their profiles attached
// GET /api/v1/admin/users?search=&page=&limit=
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	pagination := utils.GetPaginationParams(page, limit)

	users, total, err := h.adminUsecase.ListUsers(c.Request.Context(), c.Query("search"), pagination)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Users fetched", gin.H{
		"users":      users,
		"pagination": utils.CalculateMeta(total, pagination.Page, pagination.Limit),
	})
}

// GetUser returns one user with profile
// GET /api/v1/admin/users/:id
func (h *AdminHandler) GetUser(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	user, err := h.adminUsecase.GetUser(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "User fetched", user)
}

// BlockUser blocks a user account
// PUT /api/v1/admin/users/:id/block
func (h *AdminHandler) BlockUser(c *gin.Context) {
	h.setUserBlocked(c, true, "User blocked")
}

// UnblockUser unblocks a user account
// PUT /api/v1/admin/users/:id/unblock
func (h *AdminHandler) UnblockUser(c *gin.Context) {
	h.setUserBlocked(c, false, "User unblocked")
}

func (h *AdminHandler) setUserBlocked(c *gin.Context, blocked bool, message string) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	if err := h.adminUsecase.SetUserBlocked(c.Request.Context(), userID, blocked); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, message, nil)
}

// ExtendUserSubscription extends a target user's subscription
// POST /api/v1/admin/users/:id/subscription/extend
func (h *AdminHandler) ExtendUserSubscription(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	var input entities.ExtendSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	state, err := h.subscriptionUsecase.Extend(c.Request.Context(), userID, input.ExtraDays)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subscription extended", state)
}

// DowngradeUserSubscription clears a target user's subscription
// POST /api/v1/admin/users/:id/subscription/downgrade
func (h *AdminHandler) DowngradeUserSubscription(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	state, err := h.subscriptionUsecase.Downgrade(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subscription downgraded", state)
}

// CancelUserSubscription cancels a target user's active subscription
// POST /api/v1/admin/users/:id/subscription/cancel
func (h *AdminHandler) CancelUserSubscription(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid user ID"))
		return
	}

	state, err := h.subscriptionUsecase.Cancel(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subscription cancelled", state)
}

// CreateAdmin creates a new admin account (superadmin only)
// POST /api/v1/admin/admins
func (h *AdminHandler) CreateAdmin(c *gin.Context) {
	var input entities.CreateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	admin, err := h.adminUsecase.CreateAdmin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, "Admin created", admin)
}

// ListAdmins lists all admin accounts (superadmin only)
// GET /api/v1/admin/admins
func (h *AdminHandler) ListAdmins(c *gin.Context) {
	admins, err := h.adminUsecase.ListAdmins(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Admins fetched", admins)
}

// UpdateAdmin updates an admin account (superadmin only)
// PUT /api/v1/admin/admins/:id
func (h *AdminHandler) UpdateAdmin(c *gin.Context) {
	adminID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid admin ID"))
		return
	}

	var input entities.UpdateAdminInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	admin, err := h.adminUsecase.UpdateAdmin(c.Request.Context(), adminID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Admin updated", admin)
}

// DeleteAdmin removes an admin account (superadmin only)
// DELETE /api/v1/admin/admins/:id
func (h *AdminHandler) DeleteAdmin(c *gin.Context) {
	callerID, ok := middleware.GetAdminID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Admin identity not found"))
		return
	}

	adminID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid admin ID"))
		return
	}

	if err := h.adminUsecase.DeleteAdmin(c.Request.Context(), callerID, adminID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Admin deleted", nil)
}
