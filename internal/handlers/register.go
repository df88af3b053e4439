package handlers

import (
	"errors"
	"net/http"

	"todo-list/backend/internal/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type RegisterHandler struct {
	db              *gorm.DB
	registerService services.RegisterService
	logger          *zap.Logger
}

func NewRegisterHandler(db *gorm.DB, registerService services.RegisterService, logger *zap.Logger) *RegisterHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegisterHandler{db: db, registerService: registerService, logger: logger}
}

// Registration creates an account through the hashing path. Unexpected
// failures surface as a generic 500; the diagnostic detail goes to the
// server log only.
func (h *RegisterHandler) Registration(c *gin.Context) {
	var req services.RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	user, err := h.registerService.RegisterUser(h.db, req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Registration failed",
				"details": "An account with this email already exists",
			})
		case errors.Is(err, services.ErrDuplicateUsername):
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Registration failed",
				"details": "This username is already taken",
			})
		default:
			h.logger.Error("registration failed",
				zap.String("username", req.Username),
				zap.String("email", req.Email),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Registration failed",
				"details": "An unexpected error occurred. Please try again later.",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, user)
}
