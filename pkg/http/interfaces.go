//go:generate mockgen -destination=mocks/http.go . Client
package http

import "context"

// Client defines the HTTP operations the snapshot pipeline needs.
type Client interface {
	// Get fetches url and returns the body. Non-2xx responses return a *StatusError.
	Get(ctx context.Context, url string) ([]byte, error)

	// DownloadFile fetches url and writes the body verbatim to filePath.
	// Non-2xx responses return a *StatusError and leave filePath untouched.
	DownloadFile(ctx context.Context, url string, filePath string) error
}
