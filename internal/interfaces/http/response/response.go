package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "liberty-staking.backend/internal/domain/errors"
)

// Success sends a success envelope. The data map is merged into the
// envelope next to the success flag.
func Success(c *gin.Context, status int, data gin.H) {
	body := gin.H{"success": true}
	for k, v := range data {
		body[k] = v
	}
	c.JSON(status, body)
}

// Error sends an error envelope. Non-AppError values are treated as
// internal errors so their text never leaks to clients.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    appErr.Code,
			"message": appErr.Message,
		},
	})
}
