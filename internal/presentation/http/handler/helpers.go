package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetUserID extracts the authenticated user ID from the Gin context
func GetUserID(c *gin.Context) *int64 {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(int64)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserRole extracts the authenticated user's role from the Gin context
func GetUserRole(c *gin.Context) string {
	role, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	return role.(string)
}

// ParseIDParam parses a numeric path parameter
func ParseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
