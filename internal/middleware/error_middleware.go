package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ritik/festreg/internal/app/models/dto"
	"github.com/ritik/festreg/internal/pkg/apperrors"
	"github.com/ritik/festreg/internal/pkg/logger"
)

// HandleAPIError maps a service error to the JSON failure body and status
// code. Unrecognized errors are logged and reported as a plain 500.
func HandleAPIError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrRegistrationNotFound):
		c.JSON(404, dto.ErrorResponse{Error: "Registration not found"})
	case errors.Is(err, apperrors.ErrTeamNotFound):
		c.JSON(404, dto.ErrorResponse{Error: "Team not found"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(404, dto.ErrorResponse{Error: "Resource not found"})
	case errors.Is(err, apperrors.ErrRollNoExists):
		c.JSON(409, dto.ErrorResponse{Error: "Roll number already registered"})
	case errors.Is(err, apperrors.ErrMembersNotFound):
		c.JSON(400, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrEmptyMembership):
		c.JSON(400, dto.ErrorResponse{Error: "Team must have at least one member"})
	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(400, dto.ErrorResponse{Error: err.Error()})
	default:
		logger.Error().
			Err(err).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled API error")
		c.JSON(500, dto.ErrorResponse{Error: "Internal server error"})
	}
}
