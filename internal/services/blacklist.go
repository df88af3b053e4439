package services

import (
	"errors"

	"todo-list/backend/internal/models"

	"gorm.io/gorm"
)

type BlacklistService interface {
	BlacklistToken(db *gorm.DB, token string) error
	IsBlacklisted(db *gorm.DB, token string) (bool, error)
}

type BlacklistServiceImpl struct{}

func NewBlacklistService() *BlacklistServiceImpl {
	return &BlacklistServiceImpl{}
}

// BlacklistToken records a revoked token. Inserting an already-blacklisted
// token is a no-op, so logout stays idempotent.
func (s *BlacklistServiceImpl) BlacklistToken(db *gorm.DB, token string) error {
	var existing models.BlacklistedToken
	err := db.Where("token = ?", token).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return db.Create(&models.BlacklistedToken{Token: token}).Error
}

func (s *BlacklistServiceImpl) IsBlacklisted(db *gorm.DB, token string) (bool, error) {
	var count int64
	if err := db.Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
