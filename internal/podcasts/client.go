package podcasts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

// API defines the podcast server operations used by the list view.
// It is implemented by *Client and can be faked in tests.
type API interface {
	ListPodcasts(ctx context.Context) ([]string, error)
	Analyze(ctx context.Context, filename string) (AnalyzeResponse, error)
	Splice(ctx context.Context, filename string) (SpliceResponse, error)
}

// Ensure Client implements API at compile time.
var _ API = (*Client)(nil)

// ErrStatus is wrapped by errors returned for non-2xx responses.
var ErrStatus = errors.New("unexpected status")

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// Client talks to the podcast ad-removal HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	// DefaultBaseURL is the origin the API listens on out of the box.
	DefaultBaseURL   = "http://127.0.0.1:8000"
	defaultUserAgent = "podcutter/0.1"
	maxErrorBody     = 512
)

// NewClient builds a Client for the given base URL. Bare host:port values are
// treated as http. A nil httpClient uses a client without a global timeout;
// callers bound requests through the context instead.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: defaultUserAgent,
	}, nil
}

// BaseURL returns the normalized origin the client sends requests to.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// ListPodcasts retrieves the filenames the server has available, in server order.
func (c *Client) ListPodcasts(ctx context.Context) ([]string, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []string
	if err := c.do(ctx, http.MethodGet, "/podcasts", nil, &payload); err != nil {
		return nil, err
	}
	if payload == nil {
		payload = []string{}
	}
	return payload, nil
}

// Analyze asks the server to detect advertisement segments in filename.
func (c *Client) Analyze(ctx context.Context, filename string) (AnalyzeResponse, error) {
	if c == nil {
		return AnalyzeResponse{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(filename) == "" {
		return AnalyzeResponse{}, fmt.Errorf("filename required")
	}
	var payload AnalyzeResponse
	if err := c.do(ctx, http.MethodPost, "/analyze", ActionRequest{Filename: filename}, &payload); err != nil {
		return AnalyzeResponse{}, err
	}
	return payload, nil
}

// Splice asks the server to write a copy of filename with detected ads removed.
func (c *Client) Splice(ctx context.Context, filename string) (SpliceResponse, error) {
	if c == nil {
		return SpliceResponse{}, fmt.Errorf("client is nil")
	}
	if strings.TrimSpace(filename) == "" {
		return SpliceResponse{}, fmt.Errorf("filename required")
	}
	var payload SpliceResponse
	if err := c.do(ctx, http.MethodPost, "/splice", ActionRequest{Filename: filename}, &payload); err != nil {
		return SpliceResponse{}, err
	}
	if strings.TrimSpace(payload.OutputFilename) == "" {
		return SpliceResponse{}, fmt.Errorf("api /splice: response missing output_filename")
	}
	return payload, nil
}

// do sends one request. A nil body sends no payload; dest may be nil.
// An empty response body leaves dest untouched.
func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(RequestIDHeader, requestID(ctx))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := strings.TrimSpace(string(snippet))
		if detail != "" {
			return fmt.Errorf("api %s %s returned %d: %s: %w", method, path, resp.StatusCode, detail, ErrStatus)
		}
		return fmt.Errorf("api %s %s returned %d: %w", method, path, resp.StatusCode, ErrStatus)
	}
	if dest == nil {
		return nil
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

type requestIDKey struct{}

// WithRequestID attaches a correlation ID that the next request will send.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the correlation ID stored in ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func requestID(ctx context.Context) string {
	if id := RequestIDFrom(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
