package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"liberty-staking.backend/pkg/utils"
)

// defaultPageSize caps list endpoints that omit a limit
const defaultPageSize = 20

func paginationFromQuery(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if err != nil || limit <= 0 || limit > 100 {
		limit = defaultPageSize
	}
	return utils.GetPaginationParams(page, limit)
}
