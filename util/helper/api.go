package helper_util

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// GetPaginationParams reads page (default 1) and limit (default 10, capped
// at 50) from the query string.
func GetPaginationParams(c *gin.Context) (page int, limit int, err error) {
	page, err = strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 0, 0, fmt.Errorf("page must be a positive integer")
	}
	limit, err = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(DefaultLimit)))
	if err != nil || limit < 1 {
		return 0, 0, fmt.Errorf("limit must be a positive integer")
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit, nil
}

// Offset converts a page number into a row offset.
func Offset(page, limit int) int {
	return (page - 1) * limit
}

// GetIDParam parses a positive integer path parameter.
func GetIDParam(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return id, nil
}
