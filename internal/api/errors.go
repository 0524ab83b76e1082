package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/taffe/snackindex/internal/db"
)

// respondError writes the HTTP mapping for a data-layer failure: a missing
// resource maps to 404, anything else to 500. Only server errors are logged;
// not-found is an expected outcome on lookup paths.
func respondError(c *gin.Context, logger *zap.Logger, err error) {
	var notFound *db.NotFoundError
	if errors.As(err, &notFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"message":    notFound.Error(),
			"statusCode": http.StatusNotFound,
		})
		return
	}

	logger.Error("Request failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{
		"message":    err.Error(),
		"statusCode": http.StatusInternalServerError,
	})
}

// respondBadRequest writes a 400 for unparseable request input
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"message":    message,
		"statusCode": http.StatusBadRequest,
	})
}
