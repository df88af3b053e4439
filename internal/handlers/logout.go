package handlers

import (
	"net/http"
	"strings"

	"todo-list/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type LogoutHandler struct {
	db               *gorm.DB
	blacklistService services.BlacklistService
}

func NewLogoutHandler(db *gorm.DB, blacklistService services.BlacklistService) *LogoutHandler {
	return &LogoutHandler{db: db, blacklistService: blacklistService}
}

// Logout revokes the presented bearer token by recording it in the
// blacklist. Revoking an already-revoked token succeeds without a second
// insert.
func (h *LogoutHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := ""
	if parts := strings.Split(authHeader, " "); len(parts) == 2 && parts[0] == "Bearer" {
		token = parts[1]
	}

	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "missing_token",
			"message": "Bearer token is required",
		})
		return
	}

	if err := h.blacklistService.BlacklistToken(h.db, token); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "logout_failed",
			"message": "Failed to revoke token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}
