package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"liberty-staking.backend/internal/interfaces/http/response"
	"liberty-staking.backend/internal/usecases"
	"liberty-staking.backend/pkg/utils"
)

// AdminHandler handles the admin aggregate endpoints
type AdminHandler struct {
	adminUsecase *usecases.AdminUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminUsecase *usecases.AdminUsecase) *AdminHandler {
	return &AdminHandler{adminUsecase: adminUsecase}
}

// Dashboard returns platform-wide aggregates
// GET /api/v1/admin/dashboard
func (h *AdminHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.adminUsecase.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"dashboard": dashboard,
	})
}

// MaturedOrders lists investments past maturity that are not fully paid
// GET /api/v1/admin/matured-orders?page=&limit=
func (h *AdminHandler) MaturedOrders(c *gin.Context) {
	params := paginationFromQuery(c)
	orders, total, err := h.adminUsecase.MaturedOrders(
		c.Request.Context(), params.CalculateOffset(), params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"orders":     orders,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Users lists users with an optional search term
// GET /api/v1/admin/users?search=&page=&limit=
func (h *AdminHandler) Users(c *gin.Context) {
	params := paginationFromQuery(c)
	users, total, err := h.adminUsecase.Users(
		c.Request.Context(), c.Query("search"), params.CalculateOffset(), params.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"users":      users,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// Treasury returns the contract admin wallets and their accrued fees
// GET /api/v1/admin/treasury
func (h *AdminHandler) Treasury(c *gin.Context) {
	treasury, err := h.adminUsecase.Treasury(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"treasury": treasury,
	})
}
