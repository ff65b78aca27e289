package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/westbrown1/ripple/internal/apperrors"
)

// respondWithError maps a service error onto the HTTP status contract:
// missing records 404, duplicate keys 409, validation, unsupported filter
// and dangling reference problems 400, invariant violations and anything
// unrecognized 500.
func respondWithError(c *gin.Context, logger *slog.Logger, action string, err error) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Duplicate resource", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrUnsupportedFilter),
		errors.Is(err, apperrors.ErrReferenceNotFound):
		logger.Warn("Invalid request", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrInvariantViolation):
		logger.Error("Version invariant violated", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	default:
		logger.Error("Unexpected error", slog.String("action", action), slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action})
	}
}
