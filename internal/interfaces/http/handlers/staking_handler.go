package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"liberty-staking.backend/internal/interfaces/http/response"
	"liberty-staking.backend/internal/usecases"
)

// StakingHandler exposes public read views over the staking contract
type StakingHandler struct {
	stakingUsecase *usecases.StakingUsecase
}

// NewStakingHandler creates a new staking handler
func NewStakingHandler(stakingUsecase *usecases.StakingUsecase) *StakingHandler {
	return &StakingHandler{stakingUsecase: stakingUsecase}
}

// Epoch returns the active epoch with remaining order capacity
// GET /api/v1/staking/epoch
func (h *StakingHandler) Epoch(c *gin.Context) {
	epoch, err := h.stakingUsecase.CurrentEpoch(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"epoch": epoch,
	})
}

// APR returns the current contract APR
// GET /api/v1/staking/apr
func (h *StakingHandler) APR(c *gin.Context) {
	apr, err := h.stakingUsecase.CurrentAPR(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"apr": apr,
	})
}

// Stats returns platform totals read from the contract
// GET /api/v1/staking/stats
func (h *StakingHandler) Stats(c *gin.Context) {
	stats, err := h.stakingUsecase.PlatformStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"stats": stats,
	})
}
