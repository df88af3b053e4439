package services

import (
	"errors"
	"fmt"

	"todo-list/backend/internal/models"

	"gorm.io/gorm"
)

// ErrForbidden is returned when the caller is authenticated but does not
// own the record being mutated.
var ErrForbidden = errors.New("caller does not own this record")

type TodoService interface {
	GetTodos(db *gorm.DB, userID int) ([]models.Todo, error)
	GetTodoByID(db *gorm.DB, id int) (models.Todo, error)
	CreateTodo(db *gorm.DB, todo *models.Todo) error
	UpdateTodo(db *gorm.DB, id, callerID int, updated models.Todo) error
	DeleteTodo(db *gorm.DB, id, callerID int) error
}

type TodoServiceImpl struct{}

func NewTodoService() *TodoServiceImpl {
	return &TodoServiceImpl{}
}

// GetTodos returns the todos owned by the given user. Listing is scoped to
// the caller even though ownership is only enforced on mutation.
func (s *TodoServiceImpl) GetTodos(db *gorm.DB, userID int) ([]models.Todo, error) {
	var todos []models.Todo
	if err := db.Where("user_id = ?", userID).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *TodoServiceImpl) GetTodoByID(db *gorm.DB, id int) (models.Todo, error) {
	var todo models.Todo
	if err := db.First(&todo, id).Error; err != nil {
		return models.Todo{}, err
	}
	return todo, nil
}

func (s *TodoServiceImpl) CreateTodo(db *gorm.DB, todo *models.Todo) error {
	return db.Create(todo).Error
}

// UpdateTodo overwrites title, description and status. The id, owner and
// creation timestamp are never touched by a replace.
func (s *TodoServiceImpl) UpdateTodo(db *gorm.DB, id, callerID int, updated models.Todo) error {
	var existing models.Todo
	if err := db.First(&existing, id).Error; err != nil {
		return err
	}

	if !existing.OwnedBy(callerID) {
		return ErrForbidden
	}

	existing.Title = updated.Title
	existing.Description = updated.Description
	existing.Status = updated.Status

	if err := db.Save(&existing).Error; err != nil {
		return s.resolveConflict(db, id, err)
	}
	return nil
}

func (s *TodoServiceImpl) DeleteTodo(db *gorm.DB, id, callerID int) error {
	var todo models.Todo
	if err := db.First(&todo, id).Error; err != nil {
		return err
	}

	if !todo.OwnedBy(callerID) {
		return ErrForbidden
	}

	return db.Delete(&todo).Error
}

// resolveConflict re-checks existence after a failed commit: a record that
// disappeared underneath us is a not-found, anything else escalates.
func (s *TodoServiceImpl) resolveConflict(db *gorm.DB, id int, commitErr error) error {
	var count int64
	if err := db.Model(&models.Todo{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return fmt.Errorf("failed to persist todo %d: %w", id, commitErr)
}
