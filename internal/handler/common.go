package handler

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
)

// amountToCents converts a decimal currency amount to integer cents.
// Rounding, not truncation: 19.99 has no exact float representation and
// truncating 19.99*100 would yield 1998.
func amountToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func parsePagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
