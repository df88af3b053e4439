package middleware

import (
	"net/http"
	"strings"

	"todo-list/backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// UserIDKey is the context key the identity middleware sets for the
// numeric account id extracted from the session token.
const UserIDKey = "user_id"

type AuthzConfig struct {
	Secret    []byte
	DB        *gorm.DB
	Blacklist services.BlacklistService
}

// AuthzMiddleware resolves the caller's identity from the bearer token.
// A token that fails signature or expiry checks, or that has been
// blacklisted by a logout, aborts the request with 401.
func AuthzMiddleware(config AuthzConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "missing_token",
				"message": "Authorization header is required",
			})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token_format",
				"message": "Authorization header must use Bearer token",
			})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return config.Secret, nil
		})

		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_token",
				"message": "Token validation failed",
			})
			return
		}

		if config.Blacklist != nil && config.DB != nil {
			blacklisted, err := config.Blacklist.IsBlacklisted(config.DB, tokenStr)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error":   "blacklist_check_failed",
					"message": "Failed to verify token revocation",
				})
				return
			}
			if blacklisted {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"error":   "revoked_token",
					"message": "Token has been revoked",
				})
				return
			}
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":   "invalid_claims",
				"message": "Token claims are invalid",
			})
			return
		}

		// JSON numbers decode as float64; the id claim is numeric by issue.
		if userID, ok := claims[UserIDKey].(float64); ok {
			c.Set(UserIDKey, int(userID))
		}
		if username, ok := claims["username"].(string); ok {
			c.Set("username", username)
		}

		c.Next()
	}
}
