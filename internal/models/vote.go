package models

import (
	"time"
)

const (
	VoteUp   = "up"
	VoteDown = "down"
)

type Vote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_user_movie" json:"user_id"`
	MovieID   uint      `gorm:"not null;index;uniqueIndex:idx_votes_user_movie" json:"movie_id"`
	VoteType  string    `gorm:"size:8;not null" json:"vote_type"` // up or down
	CreatedAt time.Time `json:"created_at"`
}

// The composite unique index on (user_id, movie_id) is what makes the
// one-vote-per-user-per-movie upsert safe under concurrent submissions;
// writes go through INSERT .. ON CONFLICT against it.
