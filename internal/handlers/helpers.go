package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/reservaestudios/studio-booking-api/internal/httperr"
)

// writeError maps business errors to their HTTP status and hides everything
// else behind a 500.
func writeError(c *gin.Context, err error) {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		httperr.Write(c, httperr.StatusFor(be.Code), be.Code, be.Message)
		return
	}

	log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("unexpected error")
	httperr.Internal(c, "internal_error", "")
}

// businessCode extracts the business code from an error, or "" when it is not
// a business failure.
func businessCode(err error) string {
	var be httperr.BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}
