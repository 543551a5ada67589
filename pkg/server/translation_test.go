package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"forgebox/pkg/models"
	"forgebox/pkg/naming"

	"github.com/stretchr/testify/require"
)

func TestSendToTranslationAlreadyTranslated(t *testing.T) {
	env := newTestEnv(t)
	existingID := "urn:adsk.objects:os.object:bucket/abc123.dwg"
	env.existingObjects = []models.ObjectDetails{
		{ObjectKey: "abc123.dwg", ObjectID: existingID},
	}
	sess := env.authorizedSession()

	ctx, rec := env.request(http.MethodPost, "/integration/sendToTranslation", `{"boxfile":"abc123"}`, sess)
	require.NoError(t, env.server.sendToTranslation(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TranslationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.ReadyToShow)
	require.Equal(t, "File already translated.", resp.Status)
	require.Equal(t, existingID, resp.ObjectID)
	require.Equal(t, naming.ToURLSafeBase64(existingID), resp.URN)

	// Short-circuit: no upload, no new job.
	require.Equal(t, 0, env.uploadCalls)
	require.Equal(t, 0, env.translateCalls)
}

func TestSendToTranslationUploadsAndTranslates(t *testing.T) {
	env := newTestEnv(t)
	sess := env.authorizedSession()

	ctx, rec := env.request(http.MethodPost, "/integration/sendToTranslation", `{"boxfile":"abc123"}`, sess)
	require.NoError(t, env.server.sendToTranslation(ctx))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.TranslationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.ReadyToShow)
	require.Equal(t, "Translation in progress, please wait...", resp.Status)
	require.NotEmpty(t, resp.URN)

	decoded, err := naming.FromURLSafeBase64(resp.URN)
	require.NoError(t, err)
	require.Equal(t, "urn:adsk.objects:os.object:bucket/abc123.dwg", decoded)

	// Exactly one upload and one job submission.
	require.Equal(t, 1, env.uploadCalls)
	require.Equal(t, 1, env.translateCalls)

	// Object name is {boxFileID}.{extension}, content type comes from
	// the extension table.
	require.Contains(t, env.lastUploadPath, "/objects/abc123.dwg")
	require.Equal(t, "application/vnd.autodesk.autocad.dwg", env.lastUploadType)
}

func TestSendToTranslationBucketKeyDerivation(t *testing.T) {
	env := newTestEnv(t)
	sess := env.authorizedSession()

	ctx, _ := env.request(http.MethodPost, "/integration/sendToTranslation", `{"boxfile":"abc123"}`, sess)
	require.NoError(t, env.server.sendToTranslation(ctx))

	// clientID + stripped lower-cased user name + user id.
	require.Contains(t, env.lastUploadPath, "/oss/v2/buckets/forgeclientidjohndoe12345/objects/")
}

func TestSendToTranslationIdempotentBucketCreate(t *testing.T) {
	env := newTestEnv(t)
	sess := env.authorizedSession()

	// First request creates the bucket, second hits the 409 path.
	for i := 0; i < 2; i++ {
		ctx, rec := env.request(http.MethodPost, "/integration/sendToTranslation", `{"boxfile":"abc123"}`, sess)
		require.NoError(t, env.server.sendToTranslation(ctx))
		require.Equal(t, http.StatusOK, rec.Code)
	}
	require.Equal(t, 2, env.bucketCreateCalls)
}

func TestSendToTranslationMissingBoxFile(t *testing.T) {
	env := newTestEnv(t)
	sess := env.authorizedSession()

	ctx, rec := env.request(http.MethodPost, "/integration/sendToTranslation", `{}`, sess)
	require.NoError(t, env.server.sendToTranslation(ctx))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSendToTranslationNotAuthorized(t *testing.T) {
	env := newTestEnv(t)
	sess := env.sessions.Create() // no Box token

	ctx, rec := env.request(http.MethodPost, "/integration/sendToTranslation", `{"boxfile":"abc123"}`, sess)
	require.NoError(t, env.server.sendToTranslation(ctx))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSendToTranslationBoxUserFailure(t *testing.T) {
	env := newTestEnv(t)
	env.boxUserFail = true
	sess := env.authorizedSession()

	ctx, rec := env.request(http.MethodPost, "/integration/sendToTranslation", `{"boxfile":"abc123"}`, sess)
	require.NoError(t, env.server.sendToTranslation(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Cannot get Box user information, please try again.", resp.Error)
}

func TestSendToTranslationTranslateFailure(t *testing.T) {
	env := newTestEnv(t)
	env.translateFailBody = `{"diagnostic":"The urn is invalid"}`
	sess := env.authorizedSession()

	ctx, rec := env.request(http.MethodPost, "/integration/sendToTranslation", `{"boxfile":"abc123"}`, sess)
	require.NoError(t, env.server.sendToTranslation(ctx))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, "The urn is invalid")
}
