package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"finsim.backend/pkg/logger"
	"finsim.backend/pkg/redis"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// WebhookEventRetention is how long processed event IDs are remembered
	WebhookEventRetention = 24 * time.Hour

	webhookEventKeyPrefix = "webhook:event:"
)

var (
	redisSetNX = redis.SetNX
	redisDel   = redis.Del
)

// WebhookIdempotency drops duplicate webhook deliveries. Providers retry
// deliveries aggressively, so the event ID from the payload is claimed with
// SetNX before the handler runs; a second delivery of the same event is
// acknowledged with 200 without reprocessing.
//
// The body is restored after peeking so the handler can still verify the
// signature over the raw bytes. Redis failures let the event through; the
// reconciliation logic is idempotent, duplicate processing is safe.
func WebhookIdempotency() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body == nil {
			c.Next()
			return
		}

		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": "Failed to read request body",
			})
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var envelope struct {
			ID string `json:"id"`
		}
		if err := json.Unmarshal(bodyBytes, &envelope); err != nil || envelope.ID == "" {
			// Unparseable or unidentified payloads go to the handler,
			// which rejects them on signature verification.
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := fmt.Sprintf("%s%s", webhookEventKeyPrefix, envelope.ID)

		claimed, err := redisSetNX(ctx, key, "received", WebhookEventRetention)
		if err != nil {
			logger.Warn(ctx, "webhook idempotency check unavailable",
				zap.String("event_id", envelope.ID), zap.Error(err))
			c.Next()
			return
		}
		if !claimed {
			logger.Info(ctx, "duplicate webhook delivery dropped",
				zap.String("event_id", envelope.ID))
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": "Event already processed",
			})
			c.Abort()
			return
		}

		c.Next()

		// Release the claim on failure so the provider's retry can land.
		if c.Writer.Status() >= http.StatusBadRequest {
			_ = redisDel(ctx, key)
		}
	}
}
