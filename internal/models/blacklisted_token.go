package models

import (
	"time"
)

// BlacklistedToken records a session token revoked by logout. Rows are
// inserted at most once per token and never removed.
type BlacklistedToken struct {
	ID            int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Token         string    `json:"token" gorm:"uniqueIndex:idx_blacklisted_tokens_token,length:255;not null"`
	BlacklistedAt time.Time `json:"blacklisted_at" gorm:"autoCreateTime"`
}
