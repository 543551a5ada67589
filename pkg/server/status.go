package server

import (
	"fmt"
	"net/http"

	"forgebox/pkg/forge"
	"forgebox/pkg/log"
	"forgebox/pkg/models"

	"github.com/labstack/echo/v4"
)

// isReadyToShow reports whether the translation behind a URN has
// finished. Only the success sentinel flips readyToShow; every other
// manifest state, failures included, is reported as not ready so the
// client keeps polling.
func (s *Server) isReadyToShow(ctx echo.Context) error {
	var req models.StatusRequest
	if err := ctx.Bind(&req); err != nil || req.URN == "" {
		return ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "urn parameter is required"})
	}

	internal, err := s.tokens.Internal()
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve internal token")
		return ctx.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	}

	manifest, err := s.derivative.Manifest(ctx.Request().Context(), internal.AccessToken, req.URN)
	if err != nil {
		log.Error().Err(err).Str("urn", req.URN).Msg("Manifest fetch failed")
		return upstreamError(ctx, err)
	}

	if manifest.Status == forge.StatusSuccess {
		return ctx.JSON(http.StatusOK, models.StatusResponse{
			ReadyToShow: true,
			Status:      "Translation completed.",
			URN:         req.URN,
		})
	}

	return ctx.JSON(http.StatusOK, models.StatusResponse{
		ReadyToShow: false,
		Status:      fmt.Sprintf("Translation %s: %s.", manifest.Status, manifest.Progress),
		URN:         req.URN,
	})
}
