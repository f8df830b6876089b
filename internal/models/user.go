package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"`
	Role         string    `gorm:"size:20;default:'user';not null" json:"role"` // user, admin
	CreatedAt    time.Time `json:"created_at"`
	// Accounts are immutable after creation; user management lives in an
	// external admin tool.
}
