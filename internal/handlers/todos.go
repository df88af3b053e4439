package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"todo-list/backend/internal/models"
	"todo-list/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TodoHandler struct {
	db          *gorm.DB
	todoService services.TodoService
}

func NewTodoHandler(db *gorm.DB, todoService services.TodoService) *TodoHandler {
	return &TodoHandler{db: db, todoService: todoService}
}

type todoInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

func (h *TodoHandler) GetTodos(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == NoIdentity {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	todos, err := h.todoService.GetTodos(h.db, userID)
	if err != nil {
		handleTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, todos)
}

func (h *TodoHandler) GetTodoByID(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	todo, err := h.todoService.GetTodoByID(h.db, id)
	if err != nil {
		handleTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, todo)
}

func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID := CurrentUserID(c)
	if userID == NoIdentity {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input todoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo := models.Todo{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
		UserID:      &userID,
	}
	if err := h.todoService.CreateTodo(h.db, &todo); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}

	c.JSON(http.StatusCreated, todo)
}

func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	var input todoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated := models.Todo{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}
	if err := h.todoService.UpdateTodo(h.db, id, CurrentUserID(c), updated); err != nil {
		handleTodoError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid todo id"})
		return
	}

	if err := h.todoService.DeleteTodo(h.db, id, CurrentUserID(c)); err != nil {
		handleTodoError(c, err)
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func handleTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "todo not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "todo belongs to another user"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process todo request"})
	}
}
