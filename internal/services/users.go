package services

import (
	"fmt"

	"todo-list/backend/internal/models"

	"gorm.io/gorm"
)

// UserUpdateRequest is a full-field replacement. The payload id must match
// the path id; the handler rejects mismatches before calling the service.
// A non-empty password re-derives the stored hash through the same path
// registration uses.
type UserUpdateRequest struct {
	ID       int    `json:"id"`
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password"`
}

type UserService interface {
	GetUsers(db *gorm.DB) ([]models.User, error)
	GetUserByID(db *gorm.DB, id int) (models.User, error)
	UpdateUser(db *gorm.DB, id int, req UserUpdateRequest) error
	DeleteUser(db *gorm.DB, id int) error
}

type UserServiceImpl struct {
	bcryptCost int
}

func NewUserService(bcryptCost int) *UserServiceImpl {
	return &UserServiceImpl{bcryptCost: bcryptCost}
}

func (s *UserServiceImpl) GetUsers(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	if err := db.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *UserServiceImpl) GetUserByID(db *gorm.DB, id int) (models.User, error) {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateUser(db *gorm.DB, id int, req UserUpdateRequest) error {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return err
	}

	user.Username = req.Username
	user.Email = req.Email

	if req.Password != "" {
		salt, err := GeneratePasswordSalt()
		if err != nil {
			return err
		}
		hash, err := HashPassword(req.Password, salt, s.bcryptCost)
		if err != nil {
			return err
		}
		user.PasswordSalt = salt
		user.PasswordHash = hash
	}

	if err := db.Save(&user).Error; err != nil {
		var count int64
		if countErr := db.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; countErr != nil {
			return countErr
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return fmt.Errorf("failed to persist user %d: %w", id, err)
	}
	return nil
}

func (s *UserServiceImpl) DeleteUser(db *gorm.DB, id int) error {
	var user models.User
	if err := db.First(&user, id).Error; err != nil {
		return err
	}
	return db.Delete(&user).Error
}
