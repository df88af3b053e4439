package handlers

import (
	"github.com/gin-gonic/gin"

	"todo-list/backend/internal/middleware"
)

// NoIdentity is the sentinel returned when no caller identity can be
// resolved from the request context. It never collides with a real id.
const NoIdentity = -1

// CurrentUserID reads the numeric account id the identity middleware
// stored on the request context.
func CurrentUserID(c *gin.Context) int {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		return NoIdentity
	}

	userID, ok := value.(int)
	if !ok {
		return NoIdentity
	}

	return userID
}
