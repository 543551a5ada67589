// Package box is a minimal Box 2.0 API client covering what the
// integration needs: user identity, file metadata, file content and
// folder listings. The caller's OAuth token is passed per request.
package box

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"forgebox/pkg/models"
	"forgebox/pkg/upstream"

	"github.com/hashicorp/go-retryablehttp"
)

// CurrentUserID is the Box sentinel for "the user owning this token".
const CurrentUserID = "me"

const folderItemsLimit = 1000

// Client talks to the Box content API.
type Client struct {
	baseURL string
	client  *retryablehttp.Client
}

// NewClient creates a Box client for the given API base URL.
func NewClient(baseURL string, retryMax int, retryWaitMin, retryWaitMax time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		client:  upstream.NewClient(retryMax, retryWaitMin, retryWaitMax),
	}
}

// CurrentUser fetches the identity of the token's owner.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.BoxUser, error) {
	var user models.BoxUser
	if err := c.getJSON(ctx, token, "/users/"+CurrentUserID, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FileInfo fetches file metadata by id.
func (c *Client) FileInfo(ctx context.Context, token, fileID string) (*models.BoxFile, error) {
	var file models.BoxFile
	if err := c.getJSON(ctx, token, "/files/"+url.PathEscape(fileID), &file); err != nil {
		return nil, err
	}
	return &file, nil
}

// FileReader opens a streaming reader for the file content. The caller
// must close the returned reader.
func (c *Client) FileReader(ctx context.Context, token, fileID string) (io.ReadCloser, error) {
	resp, err := c.get(ctx, token, "/files/"+url.PathEscape(fileID)+"/content")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		return nil, upstream.NewError(resp)
	}
	return resp.Body, nil
}

// FolderItems lists the entries of a folder.
func (c *Client) FolderItems(ctx context.Context, token, folderID string) (*models.BoxItemList, error) {
	var items models.BoxItemList
	path := "/folders/" + url.PathEscape(folderID) + "/items?limit=" + strconv.Itoa(folderItemsLimit)
	if err := c.getJSON(ctx, token, path, &items); err != nil {
		return nil, err
	}
	return &items, nil
}

func (c *Client) get(ctx context.Context, token, path string) (*http.Response, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	return c.client.Do(req)
}

func (c *Client) getJSON(ctx context.Context, token, path string, out interface{}) error {
	resp, err := c.get(ctx, token, path)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return upstream.NewError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
