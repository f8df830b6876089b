package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"reelrank/internal/db"
	"reelrank/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	db.DB = gdb
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
}

func TestNormalizePage(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{1, 10, 1, 10},
		{0, 0, 1, 10},
		{-3, -1, 1, 10},
		{2, 50, 2, 50},
		{1, 10000, 1, MaxLimit},
	}
	for _, tc := range cases {
		page, limit := NormalizePage(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Errorf("NormalizePage(%d, %d) = (%d, %d), want (%d, %d)",
				tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestRankMoviesTotalIgnoresPagination(t *testing.T) {
	setupDB(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		movie := models.Movie{
			Title:       fmt.Sprintf("Movie %02d", i),
			Description: "filler",
			AddedBy:     1,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if err := db.DB.Create(&movie).Error; err != nil {
			t.Fatalf("seed movie: %v", err)
		}
	}

	movies, total, err := RankMovies("", 2, 5)
	if err != nil {
		t.Fatalf("RankMovies: %v", err)
	}
	if total != 12 {
		t.Errorf("expected total=12, got %d", total)
	}
	if len(movies) != 5 {
		t.Errorf("expected 5 movies on page 2, got %d", len(movies))
	}
}

func TestRankMoviesSearchScopesTotal(t *testing.T) {
	setupDB(t)
	titles := []string{"The Matrix", "The Matrix Reloaded", "Inception"}
	for i, title := range titles {
		movie := models.Movie{
			Title:       title,
			Description: "filler",
			AddedBy:     1,
			CreatedAt:   time.Date(2026, 1, 1, i, 0, 0, 0, time.UTC),
		}
		if err := db.DB.Create(&movie).Error; err != nil {
			t.Fatalf("seed movie: %v", err)
		}
	}

	movies, total, err := RankMovies("matrix", 1, 10)
	if err != nil {
		t.Fatalf("RankMovies: %v", err)
	}
	if total != 2 || len(movies) != 2 {
		t.Fatalf("expected 2 matrix movies, got total=%d len=%d", total, len(movies))
	}
	for _, m := range movies {
		if !strings.Contains(strings.ToLower(m.Title), "matrix") {
			t.Errorf("unexpected match %q", m.Title)
		}
	}
}

func TestRankMoviesNetScore(t *testing.T) {
	setupDB(t)
	movie := models.Movie{Title: "Split", Description: "mixed votes", AddedBy: 1, CreatedAt: time.Now()}
	if err := db.DB.Create(&movie).Error; err != nil {
		t.Fatalf("seed movie: %v", err)
	}
	votes := []models.Vote{
		{UserID: 1, MovieID: movie.ID, VoteType: models.VoteUp},
		{UserID: 2, MovieID: movie.ID, VoteType: models.VoteDown},
		{UserID: 3, MovieID: movie.ID, VoteType: models.VoteDown},
	}
	for i := range votes {
		if err := db.DB.Create(&votes[i]).Error; err != nil {
			t.Fatalf("seed vote: %v", err)
		}
	}

	movies, _, err := RankMovies("", 1, 10)
	if err != nil {
		t.Fatalf("RankMovies: %v", err)
	}
	if len(movies) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(movies))
	}
	got := movies[0]
	if got.Upvotes != 1 || got.Downvotes != 2 || got.NetVotes != -1 {
		t.Errorf("expected 1 up, 2 down, net -1; got %d/%d/%d", got.Upvotes, got.Downvotes, got.NetVotes)
	}
}
