package handlers

import (
	"errors"
	"net/http"
	"time"

	"reelrank/internal/apperr"
	"reelrank/internal/db"
	"reelrank/internal/middleware"
	"reelrank/internal/models"
	"reelrank/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommentHandler struct{}

func NewCommentHandler() *CommentHandler {
	return &CommentHandler{}
}

type commentInput struct {
	MovieID uint   `json:"movie_id"`
	Comment string `json:"comment"`
}

// List handles GET /comments?movie_id=: all comments for a movie, newest
// first, with sanitized HTML alongside the raw body.
func (h *CommentHandler) List(c *gin.Context) {
	movieID := utils.StringToInt(c.Query("movie_id"))
	if movieID < 1 {
		fail(c, apperr.New(apperr.Validation, "provide movie id"))
		return
	}

	var comments []models.Comment
	if err := db.DB.Where("movie_id = ?", movieID).Order("created_at DESC").Find(&comments).Error; err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "list comments", err))
		return
	}

	for i := range comments {
		comments[i].BodyHTML = utils.RenderMarkdown(comments[i].Body)
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

// Upsert handles POST /comments. One comment per user per movie; a
// repeat submission replaces the body and refreshes the timestamp.
func (h *CommentHandler) Upsert(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var in commentInput
	if err := c.ShouldBindJSON(&in); err != nil || in.MovieID == 0 || in.Comment == "" {
		fail(c, apperr.New(apperr.Validation, "movie_id and comment are required"))
		return
	}

	var movie models.Movie
	if err := db.DB.First(&movie, in.MovieID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.New(apperr.NotFound, "movie not found"))
			return
		}
		fail(c, apperr.Wrap(apperr.Internal, "fetch movie", err))
		return
	}

	// Existence probe decides the response wording only; the write
	// itself is a single atomic upsert.
	var prior models.Comment
	existed := db.DB.Where("user_id = ? AND movie_id = ?", ident.UserID, movie.ID).First(&prior).Error == nil

	comment := models.Comment{
		UserID:    ident.UserID,
		MovieID:   movie.ID,
		Body:      in.Comment,
		CreatedAt: time.Now(),
	}
	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"body":       comment.Body,
			"created_at": comment.CreatedAt,
		}),
	}).Create(&comment).Error
	if err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "save comment", err))
		return
	}

	var stored models.Comment
	if err := db.DB.Where("user_id = ? AND movie_id = ?", ident.UserID, movie.ID).First(&stored).Error; err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "fetch comment", err))
		return
	}
	stored.BodyHTML = utils.RenderMarkdown(stored.Body)

	message := "Comment created"
	if existed {
		message = "Comment updated"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "comment": stored})
}

// Delete handles DELETE /comments/:id. Author or admin only.
func (h *CommentHandler) Delete(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		fail(c, apperr.New(apperr.Authentication, "unauthorized"))
		return
	}

	id := utils.StringToInt(c.Param("id"))
	if id < 1 {
		fail(c, apperr.New(apperr.Validation, "invalid comment id"))
		return
	}

	var comment models.Comment
	if err := db.DB.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.New(apperr.NotFound, "comment not found"))
			return
		}
		fail(c, apperr.Wrap(apperr.Internal, "fetch comment", err))
		return
	}

	if comment.UserID != ident.UserID && !ident.IsAdmin() {
		fail(c, apperr.New(apperr.Authorization, "you cannot delete this comment"))
		return
	}

	if err := db.DB.Delete(&models.Comment{}, comment.ID).Error; err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "delete comment", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}
