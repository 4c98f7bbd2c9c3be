package httpx

import (
	"net/http"
	"time"
)

// Doer is the minimal HTTP client interface used for outbound lookups.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// UserAgent identifies this tool on outbound requests.
const UserAgent = "bookshelf/1.0"

// NewClient returns the default client for metadata lookups.
func NewClient() *http.Client { return &http.Client{Timeout: 10 * time.Second} }

// SetHeaders applies the standard headers to an outbound request.
func SetHeaders(req *http.Request) {
	if req != nil {
		req.Header.Set("User-Agent", UserAgent)
		req.Header.Set("Accept", "application/json")
	}
}
