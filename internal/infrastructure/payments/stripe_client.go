package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"finsim.backend/internal/config"
	"finsim.backend/internal/domain/gateways"
)

// StripeClient talks to the Stripe REST API directly. Requests are
// form-encoded with Bearer auth, responses are JSON.
type StripeClient struct {
	secretKey     string
	webhookSecret string
	baseURL       string
	httpClient    *http.Client
	tolerance     time.Duration
	now           func() time.Time
}

var _ gateways.PaymentGateway = (*StripeClient)(nil)

// webhookTolerance bounds how old a signed webhook timestamp may be.
const webhookTolerance = 5 * time.Minute

func NewStripeClient(cfg config.StripeConfig) *StripeClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.stripe.com"
	}
	return &StripeClient{
		secretKey:     cfg.SecretKey,
		webhookSecret: cfg.WebhookSecret,
		baseURL:       strings.TrimRight(baseURL, "/"),
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		tolerance:     webhookTolerance,
		now:           time.Now,
	}
}

// apiError is Stripe's error envelope
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("stripe: %s", e.Message)
}

type customerResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type subscriptionResponse struct {
	ID                 string `json:"id"`
	Customer           string `json:"customer"`
	Status             string `json:"status"`
	CurrentPeriodStart int64  `json:"current_period_start"`
	CurrentPeriodEnd   int64  `json:"current_period_end"`
	CancelAtPeriodEnd  bool   `json:"cancel_at_period_end"`
}

func (c *StripeClient) do(ctx context.Context, method, path string, form url.Values, out interface{}) error {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("stripe response read failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var envelope struct {
			Error apiError `json:"error"`
		}
		if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
			return &envelope.Error
		}
		return fmt.Errorf("stripe: unexpected status %s", resp.Status)
	}

	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("stripe response decode failed: %w", err)
		}
	}
	return nil
}

func (c *StripeClient) CreateCustomer(ctx context.Context, email, name string) (*gateways.Customer, error) {
	form := url.Values{}
	form.Set("email", email)
	if name != "" {
		form.Set("name", name)
	}

	var resp customerResponse
	if err := c.do(ctx, http.MethodPost, "/v1/customers", form, &resp); err != nil {
		return nil, err
	}
	return &gateways.Customer{ID: resp.ID, Email: resp.Email}, nil
}

// AttachPaymentMethod attaches the payment method and makes it the
// customer's default for invoices. Re-attaching an already attached
// method is not an error.
func (c *StripeClient) AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error {
	form := url.Values{}
	form.Set("customer", customerID)

	err := c.do(ctx, http.MethodPost, "/v1/payment_methods/"+paymentMethodID+"/attach", form, nil)
	if err != nil {
		var stripeErr *apiError
		if !errors.As(err, &stripeErr) || !strings.Contains(stripeErr.Message, "already attached") {
			return err
		}
	}

	form = url.Values{}
	form.Set("invoice_settings[default_payment_method]", paymentMethodID)
	return c.do(ctx, http.MethodPost, "/v1/customers/"+customerID, form, nil)
}

func (c *StripeClient) CreateSubscription(ctx context.Context, customerID, priceID string) (*gateways.Subscription, error) {
	form := url.Values{}
	form.Set("customer", customerID)
	form.Set("items[0][price]", priceID)
	form.Set("expand[]", "latest_invoice.payment_intent")

	var resp subscriptionResponse
	if err := c.do(ctx, http.MethodPost, "/v1/subscriptions", form, &resp); err != nil {
		return nil, err
	}
	return subscriptionFromResponse(&resp), nil
}

// ExtendSubscription pushes the next invoice out by setting trial_end,
// which Stripe treats as a free extension when proration is off.
func (c *StripeClient) ExtendSubscription(ctx context.Context, subscriptionID string, until time.Time) error {
	form := url.Values{}
	form.Set("trial_end", strconv.FormatInt(until.Unix(), 10))
	form.Set("proration_behavior", "none")
	return c.do(ctx, http.MethodPost, "/v1/subscriptions/"+subscriptionID, form, nil)
}

func (c *StripeClient) CancelSubscription(ctx context.Context, subscriptionID string) error {
	form := url.Values{}
	form.Set("invoice_now", "false")
	form.Set("prorate", "false")
	return c.do(ctx, http.MethodDelete, "/v1/subscriptions/"+subscriptionID, form, nil)
}

func subscriptionFromResponse(resp *subscriptionResponse) *gateways.Subscription {
	return &gateways.Subscription{
		ID:                 resp.ID,
		CustomerID:         resp.Customer,
		Status:             resp.Status,
		CurrentPeriodStart: time.Unix(resp.CurrentPeriodStart, 0).UTC(),
		CurrentPeriodEnd:   time.Unix(resp.CurrentPeriodEnd, 0).UTC(),
		CancelAtPeriodEnd:  resp.CancelAtPeriodEnd,
	}
}
