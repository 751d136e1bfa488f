package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"mockchat/services"
)

// abortWithError maps the service error taxonomy onto HTTP statuses. The
// detail string is safe to show; internal errors are logged and masked.
func abortWithError(c *gin.Context, err error) {
	var (
		validation *services.ValidationError
		notFound   *services.NotFoundError
		forbidden  *services.ForbiddenError
	)
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"detail": validation.Detail})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFound.Detail})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, gin.H{"detail": forbidden.Detail})
	default:
		log.Println("internal error:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
