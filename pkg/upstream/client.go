// Package upstream holds the HTTP plumbing shared by the Box and Forge
// clients: a retryable client that only retries transport failures, and
// an error type that carries upstream response bodies verbatim.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
)

// Error is a non-2xx response from an upstream service. The body is kept
// verbatim so handlers can forward it to the caller unmodified.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("upstream returned %d: %s", e.StatusCode, e.Body)
}

// NewError drains the response body into an Error.
func NewError(resp *http.Response) *Error {
	body, _ := io.ReadAll(resp.Body)
	return &Error{StatusCode: resp.StatusCode, Body: string(body)}
}

// NewClient creates a retryable HTTP client for upstream requests.
func NewClient(retryMax int, retryWaitMin, retryWaitMax time.Duration) *retryablehttp.Client {
	client := retryablehttp.NewClient()
	client.RetryMax = retryMax
	client.RetryWaitMin = retryWaitMin
	client.RetryWaitMax = retryWaitMax
	client.Logger = nil // Disable retryablehttp logging
	// Only transport failures are retried. HTTP errors must reach the
	// handler untouched so the upstream body can be forwarded.
	client.CheckRetry = retryPolicy
	return client
}

// retryPolicy retries on connection/timeout errors only, never on HTTP
// status errors.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	// Any response, including 4xx/5xx, is forwarded as-is.
	if resp != nil {
		return false, nil
	}

	if err != nil {
		return true, nil //nolint:nilerr // retryablehttp reports the final error
	}

	return false, nil
}
