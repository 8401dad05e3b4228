package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"trivianight/services"

	"github.com/gin-gonic/gin"
)

// currentUserID pulls the authenticated user set by the auth middleware.
func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return 0, false
	}
	return userID.(uint), true
}

// idParam parses a numeric path parameter.
func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// pageQuery reads the ?page= parameter, defaulting to 1.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// respondServiceError maps service outcomes onto HTTP statuses. Every
// rejection is a normal response; nothing here panics or aborts the server.
func respondServiceError(c *gin.Context, err error) {
	var validation *services.ValidationError
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, services.ErrNotPermitted):
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only modify your own content"})
	case errors.Is(err, services.ErrRoundAlreadyInGame):
		c.JSON(http.StatusConflict, gin.H{"error": "This round is already in the game"})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": validation.Fields})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
