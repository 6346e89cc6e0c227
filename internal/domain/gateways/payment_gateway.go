package gateways

import (
	"context"
	"time"
)

// Customer is a billing customer in the payment gateway
type Customer struct {
	ID    string
	Email string
}

// Subscription is the gateway's view of a recurring subscription
type Subscription struct {
	ID                 string
	CustomerID         string
	Status             string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
	CancelAtPeriodEnd  bool
}

// Active reports whether the gateway considers the subscription billable
func (s *Subscription) Active() bool {
	return s.Status == "active" && !s.CancelAtPeriodEnd
}

// WebhookEvent is a verified, decoded gateway webhook delivery
type WebhookEvent struct {
	ID                string
	Type              string
	SubscriptionID    string
	Status            string
	PeriodStart       time.Time
	PeriodEnd         time.Time
	CancelAtPeriodEnd bool
}

// Webhook event types the reconciler reacts to
const (
	EventInvoicePaymentSucceeded = "invoice.payment_succeeded"
	EventSubscriptionUpdated     = "customer.subscription.updated"
)

// PaymentGateway abstracts the billing provider. All methods hit the
// remote API; callers decide which failures are fatal.
type PaymentGateway interface {
	CreateCustomer(ctx context.Context, email, name string) (*Customer, error)
	AttachPaymentMethod(ctx context.Context, customerID, paymentMethodID string) error
	CreateSubscription(ctx context.Context, customerID, priceID string) (*Subscription, error)
	// ExtendSubscription pushes the current period end without prorating
	ExtendSubscription(ctx context.Context, subscriptionID string, until time.Time) error
	CancelSubscription(ctx context.Context, subscriptionID string) error
	// ConstructEvent verifies the webhook signature and decodes the payload
	ConstructEvent(payload []byte, signatureHeader string) (*WebhookEvent, error)
}
