package models

import (
	"time"
)

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comments_user_movie" json:"user_id"`
	MovieID   uint      `gorm:"not null;index;uniqueIndex:idx_comments_user_movie" json:"movie_id"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `json:"created_at"`

	// Rendered at read time, not stored
	BodyHTML string `gorm:"-" json:"body_html,omitempty"`
}

// One comment per user per movie; resubmitting replaces the body and
// refreshes the timestamp. Same index-backed upsert as votes.
