package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"finsim.backend/internal/domain/gateways"
)

// Webhook signature verification failures
var (
	ErrInvalidSignature = fmt.Errorf("webhook signature verification failed")
	ErrStaleTimestamp   = fmt.Errorf("webhook timestamp outside tolerance")
)

// ConstructEvent verifies the Stripe-Signature header against the raw
// payload and decodes the event. The header carries a unix timestamp
// and one or more hex HMAC-SHA256 signatures over "t.payload".
func (c *StripeClient) ConstructEvent(payload []byte, signatureHeader string) (*gateways.WebhookEvent, error) {
	timestamp, signatures, err := parseSignatureHeader(signatureHeader)
	if err != nil {
		return nil, err
	}

	// Timestamp binding prevents replay of captured deliveries
	age := c.now().Sub(time.Unix(timestamp, 0))
	if age > c.tolerance || age < -c.tolerance {
		return nil, ErrStaleTimestamp
	}

	signedPayload := fmt.Sprintf("%d.%s", timestamp, payload)
	mac := hmac.New(sha256.New, []byte(c.webhookSecret))
	mac.Write([]byte(signedPayload))
	expected := mac.Sum(nil)

	verified := false
	for _, sig := range signatures {
		decoded, err := hex.DecodeString(sig)
		if err != nil {
			continue
		}
		if hmac.Equal(expected, decoded) {
			verified = true
			break
		}
	}
	if !verified {
		return nil, ErrInvalidSignature
	}

	return decodeEvent(payload)
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]"
func parseSignatureHeader(header string) (int64, []string, error) {
	var timestamp int64
	var signatures []string

	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err := strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, ErrInvalidSignature
			}
			timestamp = ts
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}

	if timestamp == 0 || len(signatures) == 0 {
		return 0, nil, ErrInvalidSignature
	}
	return timestamp, signatures, nil
}

func decodeEvent(payload []byte) (*gateways.WebhookEvent, error) {
	var raw struct {
		ID   string `json:"id"`
		Type string `json:"type"`
		Data struct {
			Object struct {
				ID                 string `json:"id"`
				Subscription       string `json:"subscription"`
				Status             string `json:"status"`
				CurrentPeriodStart int64  `json:"current_period_start"`
				CurrentPeriodEnd   int64  `json:"current_period_end"`
				PeriodStart        int64  `json:"period_start"`
				PeriodEnd          int64  `json:"period_end"`
				CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
			} `json:"object"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("webhook payload decode failed: %w", err)
	}

	obj := raw.Data.Object

	// Invoice events reference the subscription by id; subscription
	// events are the subscription object itself.
	subscriptionID := obj.Subscription
	if subscriptionID == "" {
		subscriptionID = obj.ID
	}

	periodStart := obj.CurrentPeriodStart
	if periodStart == 0 {
		periodStart = obj.PeriodStart
	}
	periodEnd := obj.CurrentPeriodEnd
	if periodEnd == 0 {
		periodEnd = obj.PeriodEnd
	}

	event := &gateways.WebhookEvent{
		ID:                raw.ID,
		Type:              raw.Type,
		SubscriptionID:    subscriptionID,
		Status:            obj.Status,
		CancelAtPeriodEnd: obj.CancelAtPeriodEnd,
	}
	if periodStart > 0 {
		event.PeriodStart = time.Unix(periodStart, 0).UTC()
	}
	if periodEnd > 0 {
		event.PeriodEnd = time.Unix(periodEnd, 0).UTC()
	}
	return event, nil
}
