package handlers

import (
	"errors"

	"reelrank/internal/apperr"

	"github.com/gin-gonic/gin"
)

// fail writes an error as a JSON body with the status its kind maps to.
// Every handler funnels errors through here so the boundary mapping
// lives in one place.
func fail(c *gin.Context, err error) {
	c.JSON(apperr.Status(err), gin.H{"error": err.Error()})
}

// failOrInternal passes taxonomy errors through and wraps anything else
// as internal. Used where a transaction can surface either.
func failOrInternal(c *gin.Context, msg string, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		fail(c, err)
		return
	}
	fail(c, apperr.Wrap(apperr.Internal, msg, err))
}
