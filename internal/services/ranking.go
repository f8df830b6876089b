package services

import (
	"strings"
	"time"

	"reelrank/internal/db"
	"reelrank/internal/models"

	"gorm.io/gorm"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	// MaxLimit caps a single page; without it a caller could pull the
	// whole catalogue through the aggregate in one request.
	MaxLimit = 100
)

// RankedMovie is one row of the ranked listing: the movie plus its
// tallied vote counts.
type RankedMovie struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AddedBy     uint      `json:"added_by"`
	CreatedAt   time.Time `json:"created_at"`
	Upvotes     int       `json:"upvotes"`
	Downvotes   int       `json:"downvotes"`
	NetVotes    int       `json:"netVotes"`
}

// NormalizePage clamps page and limit to sane values.
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// RankMovies returns one page of movies ordered by net vote score
// (upvotes minus downvotes), newest first on ties, plus the total number
// of movies matching the search filter regardless of pagination.
// The search filter is a case-insensitive title substring match.
func RankMovies(search string, page, limit int) ([]RankedMovie, int64, error) {
	page, limit = NormalizePage(page, limit)
	offset := (page - 1) * limit

	// LOWER/LIKE instead of ILIKE so the query runs on both the
	// production Postgres and the sqlite test databases.
	filtered := func() *gorm.DB {
		q := db.DB.Model(&models.Movie{})
		if search != "" {
			q = q.Where("LOWER(movies.title) LIKE ?", "%"+strings.ToLower(search)+"%")
		}
		return q
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	rows := make([]RankedMovie, 0, limit)
	err := filtered().
		Select(`movies.id, movies.title, movies.description, movies.added_by, movies.created_at,
			COALESCE(SUM(CASE WHEN votes.vote_type = 'up' THEN 1 ELSE 0 END), 0) AS upvotes,
			COALESCE(SUM(CASE WHEN votes.vote_type = 'down' THEN 1 ELSE 0 END), 0) AS downvotes,
			COALESCE(SUM(CASE WHEN votes.vote_type = 'up' THEN 1 WHEN votes.vote_type = 'down' THEN -1 ELSE 0 END), 0) AS net_votes`).
		Joins("LEFT JOIN votes ON votes.movie_id = movies.id").
		Group("movies.id").
		Order("net_votes DESC, movies.created_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}
