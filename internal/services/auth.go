package services

import (
	"crypto/rand"
	"fmt"
	"time"

	"todo-list/backend/internal/config"
	"todo-list/backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const saltLength = 16

type AuthService interface {
	LoginUser(db *gorm.DB, email, password string) (*models.User, error)
	GenerateToken(user *models.User) (string, error)
}

type AuthServiceImpl struct {
	secret     []byte
	tokenTTL   time.Duration
	bcryptCost int
}

func NewAuthService(cfg config.AuthConfig) *AuthServiceImpl {
	return &AuthServiceImpl{
		secret:     []byte(cfg.JWTSecret),
		tokenTTL:   cfg.TokenTTL,
		bcryptCost: cfg.BCryptCost,
	}
}

// GeneratePasswordSalt returns a fresh random per-account salt.
func GeneratePasswordSalt() ([]byte, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives the stored hash from the stored salt and the
// plaintext password. The plaintext is discarded by the caller.
func HashPassword(password string, salt []byte, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(append(salt, []byte(password)...), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword re-derives with the stored salt and compares against the
// stored hash.
func VerifyPassword(hash string, salt []byte, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), append(salt, []byte(password)...))
	return err == nil
}

func (s *AuthServiceImpl) LoginUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	if !VerifyPassword(user.PasswordHash, user.PasswordSalt, password) {
		return nil, gorm.ErrInvalidData
	}
	return &user, nil
}

// GenerateToken issues an HS256 session token carrying the username and
// the numeric account id, valid for the configured window.
func (s *AuthServiceImpl) GenerateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"username": user.Username,
		"user_id":  user.ID,
		"exp":      time.Now().Add(s.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}
