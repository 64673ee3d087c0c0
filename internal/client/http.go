package client

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tidwall/gjson"
)

const (
	defaultTimeout   = 30 * time.Second
	DefaultUserAgent = "langsalary/1.0 (+https://github.com/fr4nk3nst1ner/langsalary)"
)

// ErrMalformedResponse is returned when a provider response lacks a field
// the caller depends on.
var ErrMalformedResponse = errors.New("malformed response")

// errorMessagePaths are where hh.ru and SuperJob put a human readable reason
// in an error body.
var errorMessagePaths = []string{"error.message", "description", "errors.0.value", "errors.0.type"}

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	URL        string
	// Message is the provider's explanation, if the body carried one.
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("received non-2xx status code %d from %s: %s", e.StatusCode, e.URL, e.Message)
	}
	return fmt.Sprintf("received non-2xx status code %d from %s", e.StatusCode, e.URL)
}

// errorMessage extracts the first known error field from a JSON body.
func errorMessage(body []byte) string {
	if !gjson.ValidBytes(body) {
		return ""
	}
	for _, result := range gjson.GetManyBytes(body, errorMessagePaths...) {
		if result.Exists() && result.String() != "" {
			return result.String()
		}
	}
	return ""
}

// CreateHTTPClient creates a standard HTTP client. A zero timeout falls back
// to 30 seconds.
func CreateHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
		MaxIdleConnsPerHost: 10,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Transport: transport,
		Timeout:   timeout,
	}
}

// GetJSON issues a GET request to baseURL with the given query and headers
// and decodes the JSON body into out.
func GetJSON(ctx context.Context, httpClient *http.Client, baseURL string, query url.Values, headers http.Header, out any) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse url %q: %w", baseURL, err)
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	for key, values := range headers {
		req.Header[key] = values
	}
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", DefaultUserAgent)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := &StatusError{StatusCode: resp.StatusCode, URL: u.Redacted()}
		if body, err := ReadResponseBody(resp); err == nil {
			statusErr.Message = errorMessage(body)
		}
		return statusErr
	}

	body, err := ReadResponseBody(resp)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return nil
}

// ReadResponseBody reads the response body, handling gzip compression if necessary
func ReadResponseBody(resp *http.Response) ([]byte, error) {
	var reader io.ReadCloser
	var err error

	switch resp.Header.Get("Content-Encoding") {
	case "gzip":
		reader, err = gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer reader.Close()
	default:
		reader = resp.Body
	}

	return io.ReadAll(reader)
}
