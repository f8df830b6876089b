package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"reelrank/internal/db"
	"reelrank/internal/middleware"
	"reelrank/internal/models"
	"reelrank/internal/router"
	"reelrank/internal/utils"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTest opens a fresh in-memory database and wires the engine the
// same way cmd/server does.
func setupTest(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
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
	utils.GetCache().Purge()
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})

	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("auth_token", store))
	r.Use(middleware.LoadIdentity())
	router.RegisterRoutes(r)
	return r
}

// do performs a JSON request with the trusted identity headers set.
func do(t *testing.T, r *gin.Engine, method, path string, body interface{}, userID, role string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set("x-user-id", userID)
	}
	if role != "" {
		req.Header.Set("x-user-role", role)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, into interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), into); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

func seedMovie(t *testing.T, title, description string, owner uint, createdAt time.Time) models.Movie {
	t.Helper()
	movie := models.Movie{
		Title:       title,
		Description: description,
		AddedBy:     owner,
		CreatedAt:   createdAt,
	}
	if err := db.DB.Create(&movie).Error; err != nil {
		t.Fatalf("seed movie %q: %v", title, err)
	}
	return movie
}

func seedVote(t *testing.T, userID, movieID uint, voteType string) {
	t.Helper()
	vote := models.Vote{UserID: userID, MovieID: movieID, VoteType: voteType}
	if err := db.DB.Create(&vote).Error; err != nil {
		t.Fatalf("seed vote: %v", err)
	}
}

func seedComment(t *testing.T, userID, movieID uint, body string, createdAt time.Time) models.Comment {
	t.Helper()
	comment := models.Comment{
		UserID:    userID,
		MovieID:   movieID,
		Body:      body,
		CreatedAt: createdAt,
	}
	if err := db.DB.Create(&comment).Error; err != nil {
		t.Fatalf("seed comment: %v", err)
	}
	return comment
}

func countRows(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	if err := db.DB.Model(model).Where(query, args...).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return count
}
