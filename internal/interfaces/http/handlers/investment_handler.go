package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/interfaces/http/middleware"
	"liberty-staking.backend/internal/interfaces/http/response"
	"liberty-staking.backend/internal/usecases"
	"liberty-staking.backend/pkg/utils"
)

// InvestmentHandler handles the investment ledger endpoints
type InvestmentHandler struct {
	investmentUsecase *usecases.InvestmentUsecase
}

// NewInvestmentHandler creates a new investment handler
func NewInvestmentHandler(investmentUsecase *usecases.InvestmentUsecase) *InvestmentHandler {
	return &InvestmentHandler{investmentUsecase: investmentUsecase}
}

// Create records a stake confirmed on-chain. Replaying the same tx hash
// returns the stored record with 200 instead of 201.
// POST /api/v1/investments/create
func (h *InvestmentHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	var input entities.RecordStakeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	view, created, err := h.investmentUsecase.RecordStake(c.Request.Context(), userID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.Success(c, status, gin.H{
		"investment": view,
		"created":    created,
	})
}

// List returns the user's investments with derived fields
// GET /api/v1/investments?status=&page=&limit=
func (h *InvestmentHandler) List(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("User not authenticated"))
		return
	}

	params := paginationFromQuery(c)
	views, total, err := h.investmentUsecase.ListInvestments(
		c.Request.Context(), userID, c.Query("status"), params.CalculateOffset(), params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"investments": views,
		"pagination":  utils.CalculateMeta(total, params.Page, params.Limit),
	})
}
