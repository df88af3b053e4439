package models

// User is an account record. The credential fields are stored but never
// serialized: the account read endpoints are public, so the hash and salt
// must not leave the process.
type User struct {
	ID           int    `json:"id" gorm:"primaryKey;autoIncrement"`
	Username     string `json:"username" gorm:"uniqueIndex;not null"`
	Email        string `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string `json:"-" gorm:"not null"`
	PasswordSalt []byte `json:"-"`
}
