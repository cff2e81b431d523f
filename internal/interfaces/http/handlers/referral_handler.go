package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/interfaces/http/middleware"
	"liberty-staking.backend/internal/interfaces/http/response"
	"liberty-staking.backend/internal/usecases"
	"liberty-staking.backend/pkg/utils"
)

// ReferralHandler handles referral earnings, team, and claim endpoints
type ReferralHandler struct {
	referralUsecase *usecases.ReferralUsecase
}

// NewReferralHandler creates a new referral handler
func NewReferralHandler(referralUsecase *usecases.ReferralUsecase) *ReferralHandler {
	return &ReferralHandler{referralUsecase: referralUsecase}
}

// Stats returns earnings aggregates, the team rollup, and claim eligibility
// GET /api/v1/referrals/stats
func (h *ReferralHandler) Stats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	stats, err := h.referralUsecase.Stats(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"stats": stats,
	})
}

// Earnings lists earning rows with an optional claimed filter
// GET /api/v1/referrals/earnings?claimed=&page=&limit=
func (h *ReferralHandler) Earnings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	params := paginationFromQuery(c)
	earnings, total, err := h.referralUsecase.ListEarnings(
		c.Request.Context(), userID, c.Query("claimed"), params.CalculateOffset(), params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"earnings":   earnings,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Team lists direct referees with their investment rollups
// GET /api/v1/referrals/team?page=&limit=
func (h *ReferralHandler) Team(c *gin.Context) {
	wallet, ok := middleware.GetWalletAddress(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	params := paginationFromQuery(c)
	members, total, err := h.referralUsecase.Team(
		c.Request.Context(), wallet, params.CalculateOffset(), params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"team":       members,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Claim authorizes a referral payout. The minimum threshold is enforced
// here, never by the client.
// POST /api/v1/referrals/claim
func (h *ReferralHandler) Claim(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	auth, err := h.referralUsecase.AuthorizeClaim(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"amount":   auth.Amount,
		"minClaim": auth.MinClaim,
	})
}

// ConfirmClaim stamps unclaimed earnings after the payout tx confirms
// POST /api/v1/referrals/claim/confirm
func (h *ReferralHandler) ConfirmClaim(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input struct {
		TxHash string `json:"txHash" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("txHash is required"))
		return
	}

	updated, err := h.referralUsecase.ConfirmClaim(c.Request.Context(), userID, input.TxHash)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"claimedCount": updated,
	})
}
