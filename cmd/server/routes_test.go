package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"liberty-staking.backend/internal/interfaces/http/handlers"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		authHandler:       handlers.NewAuthHandler(nil),
		userHandler:       handlers.NewUserHandler(nil),
		investmentHandler: handlers.NewInvestmentHandler(nil),
		referralHandler:   handlers.NewReferralHandler(nil),
		stakingHandler:    handlers.NewStakingHandler(nil),
		adminHandler:      handlers.NewAdminHandler(nil),
		authMiddleware:    func(c *gin.Context) { c.Next() },
	})
	return r
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, "ok", body["status"])
	require.Equal(t, "liberty-staking-backend", body["service"])
}

func TestCORSPreflight(t *testing.T) {
	r := newTestRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/v1/auth/nonce", nil))

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouteTable(t *testing.T) {
	r := newTestRouter()

	registered := make(map[string]bool)
	for _, route := range r.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"POST /api/v1/auth/nonce",
		"POST /api/v1/auth/verify",
		"POST /api/v1/auth/signup",
		"GET /api/v1/users/profile",
		"GET /api/v1/users/dashboard-stats",
		"POST /api/v1/investments/create",
		"GET /api/v1/investments",
		"GET /api/v1/referrals/stats",
		"GET /api/v1/referrals/earnings",
		"GET /api/v1/referrals/team",
		"POST /api/v1/referrals/claim",
		"POST /api/v1/referrals/claim/confirm",
		"GET /api/v1/staking/epoch",
		"GET /api/v1/staking/apr",
		"GET /api/v1/staking/stats",
		"GET /api/v1/admin/dashboard",
		"GET /api/v1/admin/matured-orders",
		"GET /api/v1/admin/users",
		"GET /api/v1/admin/treasury",
		"GET /health",
		"GET /metrics",
	}
	for _, route := range expected {
		require.True(t, registered[route], "missing route %s", route)
	}
}
