package router

import (
	"reelrank/internal/handlers"
	"reelrank/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	// Handlers
	movieHandler := handlers.NewMovieHandler()
	voteHandler := handlers.NewVoteHandler()
	commentHandler := handlers.NewCommentHandler()
	authHandler := handlers.NewAuthHandler()

	// Public routes
	r.GET("/movies", movieHandler.List)        // ranked, paginated listing
	r.GET("/movies/:id", movieHandler.Detail)  // single movie
	r.GET("/comments", commentHandler.List)    // comments for a movie
	r.GET("/auth/check", authHandler.Check)    // echo trusted identity
	r.POST("/auth/logout", authHandler.Logout) // clear session cookie

	// These validate the body before the identity check, so the 401
	// happens inside the handler rather than in middleware.
	r.PUT("/movies/:id", movieHandler.Update)
	r.DELETE("/movies/:id", movieHandler.Delete)
	r.DELETE("/comments/:id", commentHandler.Delete)

	// Protected routes
	authorized := r.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/movies", movieHandler.Create)     // add movie
		authorized.POST("/movies/:id", voteHandler.Upsert)  // vote up/down
		authorized.GET("/mymovies", movieHandler.MyMovies)  // own movies
		authorized.POST("/comments", commentHandler.Upsert) // post/replace comment
	}
}
