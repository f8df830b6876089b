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

type VoteHandler struct{}

func NewVoteHandler() *VoteHandler {
	return &VoteHandler{}
}

type voteInput struct {
	VoteType string `json:"vote_type"`
}

// Upsert handles POST /movies/:id. One vote per user per movie; a repeat
// submission overwrites the type and refreshes the timestamp.
func (h *VoteHandler) Upsert(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	id := utils.StringToInt(c.Param("id"))
	if id < 1 {
		fail(c, apperr.New(apperr.Validation, "invalid movie id"))
		return
	}

	var movie models.Movie
	if err := db.DB.First(&movie, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			fail(c, apperr.New(apperr.NotFound, "movie not found"))
			return
		}
		fail(c, apperr.Wrap(apperr.Internal, "fetch movie", err))
		return
	}

	var in voteInput
	if err := c.ShouldBindJSON(&in); err != nil || in.VoteType == "" {
		fail(c, apperr.New(apperr.Validation, "vote_type is required"))
		return
	}
	if in.VoteType != models.VoteUp && in.VoteType != models.VoteDown {
		fail(c, apperr.New(apperr.Validation, `vote_type must be "up" or "down"`))
		return
	}

	// Atomic upsert against the (user_id, movie_id) unique index, so
	// concurrent submissions from one user cannot accumulate rows.
	vote := models.Vote{
		UserID:    ident.UserID,
		MovieID:   movie.ID,
		VoteType:  in.VoteType,
		CreatedAt: time.Now(),
	}
	err := db.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "movie_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"vote_type":  vote.VoteType,
			"created_at": vote.CreatedAt,
		}),
	}).Create(&vote).Error
	if err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "record vote", err))
		return
	}

	// Re-read: on the conflict path the insert does not report the
	// surviving row's id.
	var stored models.Vote
	if err := db.DB.Where("user_id = ? AND movie_id = ?", ident.UserID, movie.ID).First(&stored).Error; err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "fetch vote", err))
		return
	}

	utils.GetCache().DeletePrefix(rankingCachePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "vote recorded", "vote": stored})
}
