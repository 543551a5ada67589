package server

import (
	"net/http"

	"forgebox/pkg/log"
	"forgebox/pkg/models"

	"github.com/labstack/echo/v4"
)

// viewerFormats returns the source extensions the viewer format can be
// produced from, used by the UI to gray out unsupported files.
func (s *Server) viewerFormats(ctx echo.Context) error {
	internal, err := s.tokens.Internal()
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve internal token")
		return ctx.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	}

	formats, err := s.derivative.ViewerFormats(ctx.Request().Context(), internal.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("Formats fetch failed")
		return upstreamError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, formats)
}
