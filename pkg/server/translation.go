package server

import (
	"net/http"

	"forgebox/pkg/log"
	"forgebox/pkg/models"
	"forgebox/pkg/naming"

	"github.com/labstack/echo/v4"
)

// objectListLimit bounds the existing-object scan to the first page.
const objectListLimit = 100

// sendToTranslation moves a Box file into the user's OSS bucket and
// kicks off an SVF translation, or short-circuits when the object is
// already there.
//
//nolint:funlen // the orchestration is one linear request chain
func (s *Server) sendToTranslation(ctx echo.Context) error {
	var req models.TranslationRequest
	if err := ctx.Bind(&req); err != nil || req.BoxFile == "" {
		return ctx.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "boxfile parameter is required"})
	}

	sess := s.currentSession(ctx)
	if !sess.BoxAuthorized() {
		return ctx.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Box account is not connected."})
	}

	internal, err := s.tokens.Internal()
	if err != nil {
		log.Error().Err(err).Msg("Failed to resolve internal token")
		return ctx.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	}

	reqCtx := ctx.Request().Context()
	boxToken := sess.BoxToken.AccessToken

	user, err := s.box.CurrentUser(reqCtx, boxToken)
	if err != nil {
		log.Error().Err(err).Msg("Failed to fetch Box user")
		return ctx.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: boxUserError})
	}

	// One bucket per Box account using this application.
	bucketKey := naming.BucketKey(s.cfg.ForgeClientID, user.Name, user.ID)

	if err := s.oss.EnsureBucket(reqCtx, internal.AccessToken, bucketKey); err != nil {
		log.Error().Err(err).Str("bucket_key", bucketKey).Msg("Bucket creation failed")
		return upstreamError(ctx, err)
	}

	file, err := s.box.FileInfo(reqCtx, boxToken, req.BoxFile)
	if err != nil {
		log.Error().Err(err).Str("boxfile", req.BoxFile).Msg("Failed to fetch Box file metadata")
		return upstreamError(ctx, err)
	}
	objectName := naming.ObjectName(req.BoxFile, file.Name)

	list, err := s.oss.ListObjects(reqCtx, internal.AccessToken, bucketKey, objectListLimit)
	if err != nil {
		log.Error().Err(err).Str("bucket_key", bucketKey).Msg("Object listing failed")
		return upstreamError(ctx, err)
	}

	for _, item := range list.Items {
		if item.ObjectKey == objectName {
			log.Info().Str("object_key", objectName).Msg("File already translated")
			return ctx.JSON(http.StatusOK, models.TranslationResponse{
				ReadyToShow: true,
				Status:      "File already translated.",
				ObjectID:    item.ObjectID,
				URN:         naming.ToURLSafeBase64(item.ObjectID),
			})
		}
	}

	reader, err := s.box.FileReader(reqCtx, boxToken, req.BoxFile)
	if err != nil {
		log.Error().Err(err).Str("boxfile", req.BoxFile).Msg("Failed to open Box read stream")
		return upstreamError(ctx, err)
	}
	defer func() {
		if closeErr := reader.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("Failed to close Box read stream")
		}
	}()

	details, err := s.oss.UploadObject(reqCtx, internal.AccessToken, bucketKey, objectName, naming.ContentTypeFor(file.Name), reader)
	if err != nil {
		log.Error().Err(err).Str("object_key", objectName).Msg("Upload failed")
		return upstreamError(ctx, err)
	}

	urn := naming.ToURLSafeBase64(details.ObjectID)

	if err := s.derivative.Translate(reqCtx, internal.AccessToken, urn); err != nil {
		log.Error().Err(err).Str("urn", urn).Msg("Translation submission failed")
		return upstreamError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, models.TranslationResponse{
		ReadyToShow: false,
		Status:      "Translation in progress, please wait...",
		URN:         urn,
	})
}
