package models

import (
	"time"
)

type Todo struct {
	ID          int       `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Created     time.Time `json:"created" gorm:"autoCreateTime"`
	UserID      *int      `json:"user_id" gorm:"index"`
}

// OwnedBy reports whether the todo belongs to the given user id.
// A todo with no recorded owner belongs to nobody.
func (t *Todo) OwnedBy(userID int) bool {
	return t.UserID != nil && *t.UserID == userID
}
