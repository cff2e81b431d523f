package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"liberty-staking.backend/internal/domain/entities"
	domainerrors "liberty-staking.backend/internal/domain/errors"
	"liberty-staking.backend/internal/interfaces/http/response"
	"liberty-staking.backend/internal/usecases"
)

// AuthHandler handles wallet authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Nonce issues a signing challenge for a wallet
// POST /api/v1/auth/nonce
func (h *AuthHandler) Nonce(c *gin.Context) {
	var input entities.NonceInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.Unprocessable("VALIDATION_ERROR", "walletAddress is required"))
		return
	}

	message, err := h.authUsecase.IssueNonce(c.Request.Context(), input.WalletAddress)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": message,
	})
}

// Verify checks a signed challenge and returns a session token
// POST /api/v1/auth/verify
func (h *AuthHandler) Verify(c *gin.Context) {
	var input entities.VerifyInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.authUsecase.Verify(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.IsNewUser {
		response.Success(c, http.StatusOK, gin.H{
			"isNewUser": true,
		})
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token":            result.Token,
		"user":             result.User,
		"isNewUser":        false,
		"profileCompleted": result.ProfileCompleted,
	})
}

// Signup registers a profile for a verified wallet
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var input entities.SignupInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.authUsecase.Signup(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"token":            result.Token,
		"user":             result.User,
		"profileCompleted": result.ProfileCompleted,
	})
}
