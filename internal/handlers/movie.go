package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"reelrank/internal/apperr"
	"reelrank/internal/db"
	"reelrank/internal/middleware"
	"reelrank/internal/models"
	"reelrank/internal/services"
	"reelrank/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// rankingCachePrefix keys the cached ranked pages; any movie or vote
// mutation invalidates the whole prefix.
const rankingCachePrefix = "movies:ranked:"

type MovieHandler struct{}

func NewMovieHandler() *MovieHandler {
	return &MovieHandler{}
}

type movieInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// List handles GET /movies: ranked by net vote score, paginated, with an
// optional case-insensitive title search.
func (h *MovieHandler) List(c *gin.Context) {
	search := c.Query("search")
	page, limit := services.NormalizePage(
		utils.QueryInt(c.Query("page"), services.DefaultPage),
		utils.QueryInt(c.Query("limit"), services.DefaultLimit),
	)

	// Only unfiltered pages are cached; search keys are unbounded.
	cacheKey := fmt.Sprintf("%sp%d:l%d", rankingCachePrefix, page, limit)
	if search == "" {
		if cached := utils.GetCache().Get(cacheKey); cached != nil {
			if data, ok := cached.(gin.H); ok {
				c.JSON(http.StatusOK, data)
				return
			}
		}
	}

	movies, total, err := services.RankMovies(search, page, limit)
	if err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "list movies", err))
		return
	}

	data := gin.H{
		"page":   page,
		"limit":  limit,
		"total":  total,
		"movies": movies,
	}
	if search == "" {
		utils.GetCache().Set(cacheKey, data, 1*time.Minute)
	}
	c.JSON(http.StatusOK, data)
}

// Create handles POST /movies. The caller identity becomes the owner.
func (h *MovieHandler) Create(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var in movieInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Title == "" || in.Description == "" {
		fail(c, apperr.New(apperr.Validation, "title, description are required"))
		return
	}

	movie := models.Movie{
		Title:       in.Title,
		Description: in.Description,
		AddedBy:     ident.UserID,
	}
	if err := db.DB.Create(&movie).Error; err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "create movie", err))
		return
	}

	utils.GetCache().DeletePrefix(rankingCachePrefix)
	c.JSON(http.StatusCreated, gin.H{"movie": movie})
}

// Detail handles GET /movies/:id.
func (h *MovieHandler) Detail(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{"movie": movie})
}

// Update handles PUT /movies/:id. Partial update: only supplied fields
// change. Owner or admin only.
func (h *MovieHandler) Update(c *gin.Context) {
	id := utils.StringToInt(c.Param("id"))
	if id < 1 {
		fail(c, apperr.New(apperr.Validation, "invalid movie id"))
		return
	}

	var in movieInput
	if err := c.ShouldBindJSON(&in); err != nil || (in.Title == "" && in.Description == "") {
		fail(c, apperr.New(apperr.Validation, "title or description is required"))
		return
	}

	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		fail(c, apperr.New(apperr.Authentication, "unauthorized"))
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

	if movie.AddedBy != ident.UserID && !ident.IsAdmin() {
		fail(c, apperr.New(apperr.Authorization, "you cannot edit this movie"))
		return
	}

	updates := map[string]interface{}{}
	if in.Title != "" {
		updates["title"] = in.Title
	}
	if in.Description != "" {
		updates["description"] = in.Description
	}
	if err := db.DB.Model(&movie).Updates(updates).Error; err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "update movie", err))
		return
	}

	utils.GetCache().DeletePrefix(rankingCachePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "Movie updated", "movie": movie})
}

// Delete handles DELETE /movies/:id. Votes and comments cascade inside
// one transaction so no orphaned references survive. Owner or admin only.
func (h *MovieHandler) Delete(c *gin.Context) {
	ident, ok := middleware.CurrentIdentity(c)
	if !ok {
		fail(c, apperr.New(apperr.Authentication, "unauthorized"))
		return
	}

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

	if movie.AddedBy != ident.UserID && !ident.IsAdmin() {
		fail(c, apperr.New(apperr.Authorization, "you cannot delete this movie"))
		return
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", movie.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("movie_id = ?", movie.ID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Movie{}, movie.ID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Lost a race with another delete; benign.
			return apperr.New(apperr.NotFound, "movie not found")
		}
		return nil
	})
	if err != nil {
		failOrInternal(c, "delete movie", err)
		return
	}

	utils.GetCache().DeletePrefix(rankingCachePrefix)
	c.JSON(http.StatusOK, gin.H{"message": "movie and related data deleted"})
}

// MyMovies handles GET /mymovies: every movie owned by the caller.
func (h *MovieHandler) MyMovies(c *gin.Context) {
	ident, _ := middleware.CurrentIdentity(c)

	var movies []models.Movie
	if err := db.DB.Where("added_by = ?", ident.UserID).Order("created_at DESC").Find(&movies).Error; err != nil {
		fail(c, apperr.Wrap(apperr.Internal, "list my movies", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"movies": movies})
}
