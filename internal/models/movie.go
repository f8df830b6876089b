package models

import (
	"time"
)

type Movie struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null;index" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	AddedBy     uint      `gorm:"column:added_by;not null;index" json:"added_by"`
	CreatedAt   time.Time `json:"created_at"`
}
