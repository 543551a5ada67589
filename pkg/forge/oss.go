// Package forge talks to the two Autodesk Forge services the integration
// depends on: OSS for bucket/object storage and Model Derivative for
// translation jobs.
package forge

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"forgebox/pkg/log"
	"forgebox/pkg/models"
	"forgebox/pkg/upstream"

	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-retryablehttp"
)

// TransientPolicy expires bucket contents after 24 hours.
const TransientPolicy = "transient"

const uploadTimeout = 10 * time.Minute

// OSSClient talks to the Forge Object Storage Service.
type OSSClient struct {
	baseURL string
	client  *retryablehttp.Client
	// Uploads are a deliberate single attempt: the source stream cannot
	// be rewound, so the request must not be replayed.
	uploader *http.Client
}

// NewOSSClient creates an OSS client for the given Forge base URL.
func NewOSSClient(baseURL string, retryMax int, retryWaitMin, retryWaitMax time.Duration) *OSSClient {
	return &OSSClient{
		baseURL:  baseURL,
		client:   upstream.NewClient(retryMax, retryWaitMin, retryWaitMax),
		uploader: &http.Client{Timeout: uploadTimeout},
	}
}

// EnsureBucket creates the bucket with the transient retention policy.
// An "already exists" conflict counts as success, making the call
// idempotent.
func (c *OSSClient) EnsureBucket(ctx context.Context, token, bucketKey string) error {
	payload, err := json.Marshal(models.BucketPayload{
		BucketKey: bucketKey,
		PolicyKey: TransientPolicy,
	})
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/oss/v2/buckets", bytes.NewReader(payload))
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

	if resp.StatusCode == http.StatusConflict {
		log.Debug().Str("bucket_key", bucketKey).Msg("Bucket already exists")
		return nil
	}
	if resp.StatusCode != http.StatusOK {
		return upstream.NewError(resp)
	}

	log.Info().Str("bucket_key", bucketKey).Msg("Bucket created")
	return nil
}

// ListObjects returns up to limit objects of the bucket.
func (c *OSSClient) ListObjects(ctx context.Context, token, bucketKey string, limit int) (*models.ObjectList, error) {
	listURL := c.baseURL + "/oss/v2/buckets/" + url.PathEscape(bucketKey) + "/objects?limit=" + strconv.Itoa(limit)
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, listURL, nil)
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

	var list models.ObjectList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UploadObject streams body into the bucket under objectName via a
// signed PUT and returns the stored object's details.
func (c *OSSClient) UploadObject(ctx context.Context, token, bucketKey, objectName, contentType string, body io.Reader) (*models.ObjectDetails, error) {
	uploadURL := c.baseURL + "/oss/v2/buckets/" + url.PathEscape(bucketKey) + "/objects/" + url.PathEscape(objectName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.uploader.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, upstream.NewError(resp)
	}

	var details models.ObjectDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, err
	}

	log.Info().
		Str("bucket_key", bucketKey).
		Str("object_key", details.ObjectKey).
		Str("size", humanize.Bytes(uint64(details.Size))).
		Msg("Object uploaded")
	return &details, nil
}
