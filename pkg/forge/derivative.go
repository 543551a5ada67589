package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"forgebox/pkg/log"
	"forgebox/pkg/models"
	"forgebox/pkg/upstream"

	"github.com/hashicorp/go-retryablehttp"
)

// StatusSuccess is the manifest status marking a finished translation.
// Every other status, including failures, reads as "not ready yet".
const StatusSuccess = "success"

// viewerFormat is the derivative type the Forge Viewer consumes.
const viewerFormat = "svf"

// DerivativeClient talks to the Forge Model Derivative service.
type DerivativeClient struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewDerivativeClient creates a Model Derivative client.
func NewDerivativeClient(baseURL string, retryMax int, retryWaitMin, retryWaitMax time.Duration) *DerivativeClient {
	return &DerivativeClient{
		baseURL: baseURL,
		client:  upstream.NewClient(retryMax, retryWaitMin, retryWaitMax),
	}
}

// Translate submits an SVF translation job with 2d and 3d views for the
// object identified by urn. It returns as soon as the job is accepted.
func (c *DerivativeClient) Translate(ctx context.Context, token, urn string) error {
	job := models.TranslateJob{
		Input: models.TranslateInput{URN: urn},
		Output: models.TranslateOutput{
			Formats: []models.TranslateFormat{
				{Type: viewerFormat, Views: []string{"2d", "3d"}},
			},
		},
	}
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/modelderivative/v2/designdata/job", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return upstream.NewError(resp)
	}

	log.Info().Str("urn", urn).Msg("Translation job submitted")
	return nil
}

// Manifest fetches the job-status record for urn.
func (c *DerivativeClient) Manifest(ctx context.Context, token, urn string) (*models.Manifest, error) {
	manifestURL := c.baseURL + "/modelderivative/v2/designdata/" + url.PathEscape(urn) + "/manifest"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, manifestURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstream.NewError(resp)
	}

	var manifest models.Manifest
	if err := json.NewDecoder(resp.Body).Decode(&manifest); err != nil {
		return nil, err
	}
	return &manifest, nil
}

// ViewerFormats returns the source extensions that can be translated
// into the viewer format.
func (c *DerivativeClient) ViewerFormats(ctx context.Context, token string) ([]string, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/modelderivative/v2/designdata/formats", nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstream.NewError(resp)
	}

	var list models.FormatList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return list.Formats[viewerFormat], nil
}
