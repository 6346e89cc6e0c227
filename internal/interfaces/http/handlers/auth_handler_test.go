package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func fakeUserID() uuid.UUID {
	return uuid.MustParse("22222222-2222-2222-2222-222222222222")
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{}
	r := gin.New()
	r.POST("/auth/register", h.Register)

	w := postJSON(r, "/auth/register", `{`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/auth/register", `{"email":"not-an-email","fullName":"Jo","password":"longenough1"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/auth/register", `{"email":"a@b.com","fullName":"Jo Doe","password":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_VerifyOTP_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{}
	r := gin.New()
	r.POST("/auth/verify", h.VerifyOTP)

	w := postJSON(r, "/auth/verify", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = postJSON(r, "/auth/verify", `{"email":"a@b.com","otp":"12345"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{}
	r := gin.New()
	r.POST("/auth/login", h.Login)

	w := postJSON(r, "/auth/login", `{"email":"a@b.com"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), `"success":false`)
}

func TestAuthHandler_Refresh_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{}
	r := gin.New()
	r.POST("/auth/refresh", h.Refresh)

	w := postJSON(r, "/auth/refresh", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_ResetPassword_Validation(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{}
	r := gin.New()
	r.POST("/auth/reset-password", h.ResetPassword)

	w := postJSON(r, "/auth/reset-password", `{"email":"a@b.com","otp":"123456","newPassword":"short"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_AuthedEndpoints_RequireIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &AuthHandler{}
	r := gin.New()
	r.POST("/auth/change-password", h.ChangePassword)
	r.POST("/auth/request-account-deletion", h.RequestAccountDeletion)
	r.POST("/auth/confirm-account-deletion", h.ConfirmAccountDeletion)
	r.GET("/auth/me", h.Me)

	w := postJSON(r, "/auth/change-password", `{"currentPassword":"a","newPassword":"longenough1","confirmPassword":"longenough1"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/request-account-deletion", `{}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(r, "/auth/confirm-account-deletion", `{"otp":"123456"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
