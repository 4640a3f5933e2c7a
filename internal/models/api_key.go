package models

import "time"

// APIKey stores only the bcrypt hash of an issued key. The plaintext key is
// shown once at issue time and never persisted.
type APIKey struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	Name       string     `json:"name" gorm:"not null"`
	KeyHash    string     `json:"-" gorm:"not null"`
	Active     bool       `json:"active" gorm:"default:true"`
	LastUsedAt *time.Time `json:"last_used_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"-"`
}
