package payments

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"finsim.backend/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *StripeClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewStripeClient(config.StripeConfig{
		SecretKey:     "sk_test_123",
		WebhookSecret: "whsec_test",
		BaseURL:       server.URL,
	})
}

func TestStripeClient_CreateCustomer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/customers", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_123", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "jane@example.com", r.PostForm.Get("email"))
		assert.Equal(t, "Jane Doe", r.PostForm.Get("name"))

		w.Write([]byte(`{"id":"cus_123","email":"jane@example.com"}`))
	})

	customer, err := client.CreateCustomer(context.Background(), "jane@example.com", "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "cus_123", customer.ID)
	assert.Equal(t, "jane@example.com", customer.Email)
}

func TestStripeClient_CreateCustomer_APIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error":{"message":"Your card was declined.","type":"card_error"}}`))
	})

	_, err := client.CreateCustomer(context.Background(), "jane@example.com", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "card was declined")
}

func TestStripeClient_AttachPaymentMethod(t *testing.T) {
	var paths []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		require.NoError(t, r.ParseForm())

		switch r.URL.Path {
		case "/v1/payment_methods/pm_123/attach":
			assert.Equal(t, "cus_123", r.PostForm.Get("customer"))
			w.Write([]byte(`{"id":"pm_123"}`))
		case "/v1/customers/cus_123":
			assert.Equal(t, "pm_123", r.PostForm.Get("invoice_settings[default_payment_method]"))
			w.Write([]byte(`{"id":"cus_123"}`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	err := client.AttachPaymentMethod(context.Background(), "cus_123", "pm_123")
	require.NoError(t, err)
	assert.Equal(t, []string{"/v1/payment_methods/pm_123/attach", "/v1/customers/cus_123"}, paths)
}

func TestStripeClient_AttachPaymentMethod_AlreadyAttached(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/payment_methods/pm_123/attach" {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":{"message":"The payment method you provided has already attached to a customer."}}`))
			return
		}
		w.Write([]byte(`{"id":"cus_123"}`))
	})

	err := client.AttachPaymentMethod(context.Background(), "cus_123", "pm_123")
	assert.NoError(t, err)
}

func TestStripeClient_CreateSubscription(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/subscriptions", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "cus_123", r.PostForm.Get("customer"))
		assert.Equal(t, "price_abc", r.PostForm.Get("items[0][price]"))

		w.Write([]byte(`{
			"id": "sub_123",
			"customer": "cus_123",
			"status": "active",
			"current_period_start": 1700000000,
			"current_period_end": 1702592000,
			"cancel_at_period_end": false
		}`))
	})

	sub, err := client.CreateSubscription(context.Background(), "cus_123", "price_abc")
	require.NoError(t, err)
	assert.Equal(t, "sub_123", sub.ID)
	assert.Equal(t, "active", sub.Status)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), sub.CurrentPeriodStart)
	assert.Equal(t, time.Unix(1702592000, 0).UTC(), sub.CurrentPeriodEnd)
	assert.True(t, sub.Active())
}

func TestStripeClient_ExtendSubscription(t *testing.T) {
	until := time.Unix(1705000000, 0).UTC()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/subscriptions/sub_123", r.URL.Path)
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "1705000000", r.PostForm.Get("trial_end"))
		assert.Equal(t, "none", r.PostForm.Get("proration_behavior"))
		w.Write([]byte(`{"id":"sub_123"}`))
	})

	err := client.ExtendSubscription(context.Background(), "sub_123", until)
	assert.NoError(t, err)
}

func TestStripeClient_CancelSubscription(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/v1/subscriptions/sub_123", r.URL.Path)

		// ParseForm ignores DELETE bodies, decode by hand
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		form, err := url.ParseQuery(string(body))
		require.NoError(t, err)
		assert.Equal(t, "false", form.Get("prorate"))
		assert.Equal(t, "false", form.Get("invoice_now"))

		w.Write([]byte(`{"id":"sub_123","status":"canceled"}`))
	})

	err := client.CancelSubscription(context.Background(), "sub_123")
	assert.NoError(t, err)
}
