package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"liberty-staking.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for user ID
	UserIDKey = "userId"
	// WalletAddressKey is the context key for the wallet address
	WalletAddressKey = "walletAddress"
	// IsAdminKey is the context key for the admin flag
	IsAdminKey = "isAdmin"
)

// AuthMiddleware validates the bearer token and stores the session
// identity in the request context
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := jwtService.Validate(tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				abortUnauthorized(c, "Token has expired")
				return
			}
			abortUnauthorized(c, "Invalid token")
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(WalletAddressKey, claims.WalletAddress)
		c.Set(IsAdminKey, claims.IsAdmin)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetUserID gets the user ID from context
func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	return userID.(uuid.UUID), true
}

// GetWalletAddress gets the authenticated wallet address from context
func GetWalletAddress(c *gin.Context) (string, bool) {
	wallet, exists := c.Get(WalletAddressKey)
	if !exists {
		return "", false
	}
	return wallet.(string), true
}

// IsAdmin reports whether the session carries the admin flag
func IsAdmin(c *gin.Context) bool {
	isAdmin, exists := c.Get(IsAdminKey)
	return exists && isAdmin.(bool)
}

// RequireAdmin rejects sessions without the admin flag
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin access required",
				},
			})
			return
		}
		c.Next()
	}
}
