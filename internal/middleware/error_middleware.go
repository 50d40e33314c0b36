package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ekurt/studentdir/internal/app/models/dto"
	"github.com/ekurt/studentdir/internal/pkg/apperrors"
	"github.com/ekurt/studentdir/internal/pkg/logger"
)

// RespondWithError maps an internal error to its HTTP response. Expected
// outcomes (not found, validation) surface their own message; anything else is
// logged with full detail and answered with a generic body so internal causes
// never leak to the caller.
func RespondWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStudentNotFound):
		c.JSON(http.StatusNotFound, dto.NewErrorResponse("student not found"))

	case errors.Is(err, apperrors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(err.Error()))

	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		c.JSON(http.StatusInternalServerError, dto.NewErrorResponse("internal server error"))
	}
}
