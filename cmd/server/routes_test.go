package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"finsim.backend/internal/interfaces/http/handlers"
	"github.com/gin-gonic/gin"
)

func passthrough(c *gin.Context) { c.Next() }

func TestRegisterAPIV1Routes_RegistersKeyRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	registerAPIV1Routes(r, routeDeps{
		authHandler:         &handlers.AuthHandler{},
		adminHandler:        &handlers.AdminHandler{},
		planHandler:         &handlers.PlanHandler{},
		subscriptionHandler: &handlers.SubscriptionHandler{},
		profileHandler:      &handlers.ProfileHandler{},
		ticketHandler:       &handlers.TicketHandler{},
		userAuth:            passthrough,
		adminAuth:           passthrough,
		superAdminOnly:      passthrough,
	})

	routes := r.Routes()
	if len(routes) < 35 {
		t.Fatalf("expected many routes registered, got %d", len(routes))
	}

	expects := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/auth/register"},
		{"POST", "/api/v1/auth/verify"},
		{"POST", "/api/v1/auth/google"},
		{"GET", "/api/v1/auth/me"},
		{"GET", "/api/v1/subscription-plans"},
		{"GET", "/api/v1/subscription-plans/all"},
		{"POST", "/api/v1/subscriptions/purchase"},
		{"POST", "/api/v1/webhooks/stripe"},
		{"GET", "/api/v1/users/profile"},
		{"PATCH", "/api/v1/users/profile"},
		{"POST", "/api/v1/tickets"},
		{"POST", "/api/v1/admin/login"},
		{"PUT", "/api/v1/admin/users/:id/block"},
		{"POST", "/api/v1/admin/users/:id/subscription/extend"},
		{"PUT", "/api/v1/admin/tickets/:id/reply"},
		{"DELETE", "/api/v1/admin/admins/:id"},
	}

	for _, exp := range expects {
		found := false
		for _, route := range routes {
			if route.Method == exp.method && route.Path == exp.path {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("route %s %s not registered", exp.method, exp.path)
		}
	}
}

func TestRegisterHealthRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerHealthRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestRegisterMetricsRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerMetricsRoute(r)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestApplyCORSMiddleware_PreflightShortCircuits(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	applyCORSMiddleware(r)
	r.POST("/anything", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodOptions, "/anything", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Fatal("expected CORS headers on preflight response")
	}
}
