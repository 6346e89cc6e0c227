package handlers

import (
	"net/http"

	"finsim.backend/internal/domain/entities"
	domainerrors "finsim.backend/internal/domain/errors"
	"finsim.backend/internal/domain/gateways"
	"finsim.backend/internal/interfaces/http/middleware"
	"finsim.backend/internal/interfaces/http/response"
	"finsim.backend/internal/usecases"
	"finsim.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubscriptionHandler handles subscription lifecycle endpoints
type SubscriptionHandler struct {
	subscriptionUsecase *usecases.SubscriptionUsecase
	gateway             gateways.PaymentGateway
}

// NewSubscriptionHandler creates a new subscription handler
func NewSubscriptionHandler(subscriptionUsecase *usecases.SubscriptionUsecase, gateway gateways.PaymentGateway) *SubscriptionHandler {
	return &SubscriptionHandler{
		subscriptionUsecase: subscriptionUsecase,
		gateway:             gateway,
	}
}

// Purchase starts a paid subscription for the caller
// POST /api/v1/subscriptions/purchase
func (h *SubscriptionHandler) Purchase(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User identity not found"))
		return
	}

	var input entities.PurchaseSubscriptionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	state, err := h.subscriptionUsecase.Purchase(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subscription activated", state)
}

// Extend pushes the caller's expiry out by extraDays
// POST /api/v1/subscriptions/extend
func (h *SubscriptionHandler) Extend(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User identity not found"))
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

// Downgrade clears the caller's subscription back to the free tier
// POST /api/v1/subscriptions/downgrade
func (h *SubscriptionHandler) Downgrade(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User identity not found"))
		return
	}

	state, err := h.subscriptionUsecase.Downgrade(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subscription downgraded", state)
}

// Cancel ends the caller's active subscription immediately
// POST /api/v1/subscriptions/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User identity not found"))
		return
	}

	state, err := h.subscriptionUsecase.Cancel(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Subscription cancelled", state)
}

// HandleStripeWebhook reconciles billing state from gateway events
// POST /api/v1/webhooks/stripe
//
// The signature is verified over the raw body, so the payload is read
// directly instead of going through binding.
func (h *SubscriptionHandler) HandleStripeWebhook(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Failed to read request body"))
		return
	}

	event, err := h.gateway.ConstructEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		logger.Warn(c.Request.Context(), "webhook signature verification failed", zap.Error(err))
		response.Error(c, domainerrors.BadRequest("Invalid webhook signature"))
		return
	}

	if err := h.subscriptionUsecase.HandleWebhookEvent(c.Request.Context(), event); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, "Event processed", gin.H{"received": true})
}
