package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/interfaces/http/middleware"
	"liberty-staking.backend/internal/interfaces/http/response"
	"liberty-staking.backend/internal/usecases"
)

// UserHandler handles profile and dashboard endpoints
type UserHandler struct {
	userUsecase *usecases.UserUsecase
}

// NewUserHandler creates a new user handler
func NewUserHandler(userUsecase *usecases.UserUsecase) *UserHandler {
	return &UserHandler{userUsecase: userUsecase}
}

// Profile returns the authenticated user's profile with referral link
// GET /api/v1/users/profile
func (h *UserHandler) Profile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	profile, err := h.userUsecase.Profile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"user":         profile.User,
		"referralLink": profile.ReferralLink,
	})
}

// DashboardStats returns the per-user rollup for the dashboard page
// GET /api/v1/users/dashboard-stats
func (h *UserHandler) DashboardStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	stats, err := h.userUsecase.DashboardStats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"stats": stats,
	})
}
