package api

import (
	"io"
	"net/http"
	"time"
)

// DefaultTimeout bounds every outbound request; there is no retry, so a
// timed-out call surfaces directly to the caller.
const DefaultTimeout = 15 * time.Second

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// RawResponse carries the status code and body of a completed request so
// callers can apply their own status and decode handling.
type RawResponse struct {
	StatusCode int
	Body       []byte
}

// NewHTTPClient creates a new instance of HTTPClient with default settings.
// TLS verification is left at the transport default; there is no insecure
// fallback.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
}

// Get issues a single GET request to the API with the given headers and
// returns the raw response. Transport failures (including timeouts) are
// returned as errors; non-2xx statuses are not.
func (c *HTTPClient) Get(endpoint string, headers map[string]string) (*RawResponse, error) {
	url := c.BaseURL + endpoint
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	return &RawResponse{
		StatusCode: res.StatusCode,
		Body:       resBody,
	}, nil
}
