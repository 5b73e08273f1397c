package helpers

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kerem/classora/internal/app/models/dto"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DefaultPage  = 1 // Pages are 1-based
)

// ClampPageLimit normalizes pagination inputs. Non-positive values are clamped
// up to the minimum rather than rejected; the limit is capped at MaxLimit.
func ClampPageLimit(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// CalculateOffset converts a 1-based page number into a SQL offset.
func CalculateOffset(page, limit int) uint64 {
	page, limit = ClampPageLimit(page, limit)
	return uint64((page - 1) * limit)
}

// NewPaginationInfo creates the standard pagination envelope. The total page
// count is derived from the independent total, not from the page slice, so it
// stays exact as results are windowed.
func NewPaginationInfo(total int64, page, limit int) dto.PaginationInfo {
	page, limit = ClampPageLimit(page, limit)

	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	return dto.PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// ParsePaginationParams extracts pagination parameters from the request.
// Invalid or missing values fall back to the defaults.
func ParsePaginationParams(c *gin.Context) (page, limit int) {
	pageStr := c.DefaultQuery("page", "1")
	page, err := strconv.Atoi(pageStr)
	if err != nil {
		page = DefaultPage
	}

	limitStr := c.DefaultQuery("limit", "10")
	limit, err = strconv.Atoi(limitStr)
	if err != nil {
		limit = DefaultLimit
	}

	return ClampPageLimit(page, limit)
}
