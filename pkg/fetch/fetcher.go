package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"

	"github.com/tuonglequoc/crawl-product-data/pkg/utils"
)

// maxErrorBodyBytes bounds how much of a failed response body gets carried in the error.
const maxErrorBodyBytes = 512

// Fetcher issues GET requests against the storefront, using an underlying http.Client.
// There is no retry policy: a non-200 response is a hard error for that call and the
// caller decides whether it ends the item, the category, or the run.
type Fetcher struct {
	client *http.Client
	log    *logrus.Logger
}

// NewFetcher creates a new Fetcher instance
func NewFetcher(client *http.Client, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: client,
		log:    log,
	}
}

// Get fetches rawURL with optional query parameters and returns the response body.
// Success is strictly HTTP 200; any other status yields an error wrapping
// utils.ErrHTTPStatus that carries the status code and an excerpt of the body.
func (f *Fetcher) Get(ctx context.Context, rawURL string, query url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", utils.ErrRequestCreation, err)
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	reqLog := f.log.WithField("url", req.URL.String())
	reqLog.Debug("Fetching")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", req.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", req.URL, err)
	}

	if resp.StatusCode != http.StatusOK {
		excerpt := body
		if len(excerpt) > maxErrorBodyBytes {
			excerpt = excerpt[:maxErrorBodyBytes]
		}
		reqLog.WithField("status_code", resp.StatusCode).Warn("Non-200 response")
		return "", fmt.Errorf("%w: status %d: %s", utils.ErrHTTPStatus, resp.StatusCode, excerpt)
	}

	reqLog.Debug("Successfully fetched")
	return string(body), nil
}
