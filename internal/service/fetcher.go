package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	apperrors "sebbi-server/pkg/errors"
)

// HTTPFetcher implements domain.Fetcher with a fixed-timeout HTTP client.
type HTTPFetcher struct {
	client *http.Client
}

func NewHTTPFetcher(timeout time.Duration) *HTTPFetcher {
	return &HTTPFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the raw bytes at url. A transport error or non-success
// status is reported as a fetch failure.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindFetchFailed, "invalid resource URL", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindFetchFailed, "failed to fetch resource", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.New(apperrors.KindFetchFailed,
			fmt.Sprintf("failed to fetch resource: status %d", resp.StatusCode))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindFetchFailed, "failed to read resource body", err)
	}
	return data, nil
}
