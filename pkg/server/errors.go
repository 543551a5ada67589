package server

import (
	"errors"
	"net/http"

	"forgebox/pkg/models"
	"forgebox/pkg/upstream"

	"github.com/labstack/echo/v4"
)

// boxUserError is the fixed user-facing message for a failed Box
// identity lookup.
const boxUserError = "Cannot get Box user information, please try again."

// upstreamError reports a failed external call as HTTP 500 with the
// upstream body passed through verbatim.
func upstreamError(ctx echo.Context, err error) error {
	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		return ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: upstreamErr.Body})
	}
	return ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: err.Error()})
}
