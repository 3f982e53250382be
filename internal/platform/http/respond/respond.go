// Package respond writes JSON error bodies and maps domain errors to HTTP status codes.
package respond

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"estate_backend/internal/shared/apperr"
)

// internalMessage is all a client sees of an unexpected failure.
const internalMessage = "internal server error"

// Status returns the HTTP status for err.
func Status(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation),
		errors.Is(err, apperr.ErrDuplicateEmail),
		errors.Is(err, apperr.ErrAlreadyPresent),
		errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUserNotFound),
		errors.Is(err, apperr.ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrInvalidToken),
		errors.Is(err, apperr.ErrExpiredToken):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error aborts with {"error": msg}. Server errors are logged and replaced with a generic message.
func Error(c *gin.Context, err error) {
	status := Status(err)
	msg := err.Error()
	if status == http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "error", err)
		msg = internalMessage
	}
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

// BadRequest aborts with 400 and msg.
func BadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
