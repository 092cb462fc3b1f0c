// Package http implements the plain blocking HTTP client used to fetch
// snapshot lists and repomd.xml files from the mirror.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cperrin88/rpmsnap/pkg/errors"
	"github.com/cperrin88/rpmsnap/pkg/fsutil"
)

// RepomdPath is the location of the metadata index relative to a snapshot URL.
const RepomdPath = "repodata/repomd.xml"

// DefaultUserAgent is sent when no user agent is configured.
const DefaultUserAgent = "rpmsnap/1.0"

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s: %d", e.URL, errors.ErrUnexpectedStatus, e.StatusCode)
}

// Is lets errors.Is match StatusError against ErrUnexpectedStatus.
func (e *StatusError) Is(target error) bool {
	return target == errors.ErrUnexpectedStatus
}

// HTTPClient handles HTTP operations against the mirror.
type HTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewHTTPClient creates a new HTTP client. A zero timeout means requests
// never time out on their own; cancellation still comes from the context.
func NewHTTPClient(timeout time.Duration, userAgent string) *HTTPClient {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: userAgent,
	}
}

// RepomdURL resolves RepomdPath against snapshotURL using standard reference
// resolution, so a base without a trailing slash loses its last segment.
func RepomdURL(snapshotURL string) (string, error) {
	base, err := url.Parse(snapshotURL)
	if err != nil {
		return "", errors.Wrapf(err, "invalid snapshot URL %q", snapshotURL)
	}
	ref, _ := url.Parse(RepomdPath)
	return base.ResolveReference(ref).String(), nil
}

func (hc *HTTPClient) do(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("User-Agent", hc.userAgent)

	resp, err := hc.client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to fetch %s", rawURL)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// Get fetches rawURL and returns the response body.
func (hc *HTTPClient) Get(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := hc.do(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}
	return data, nil
}

// DownloadFile fetches rawURL and writes the body to filePath atomically.
func (hc *HTTPClient) DownloadFile(ctx context.Context, rawURL string, filePath string) error {
	data, err := hc.Get(ctx, rawURL)
	if err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(filePath, data, fsutil.FileModeDefault); err != nil {
		return errors.Wrapf(err, "could not write %s", filePath)
	}
	return nil
}
