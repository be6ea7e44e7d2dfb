package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"veritas/internal/providers"
)

const providerID = "ocr-http"

// HTTPClient implements Client by calling an external OCR/vision service.
type HTTPClient struct {
	baseURL    string
	apiKey     string
	backoff    providers.BackoffConfig
	httpClient *http.Client
}

// Ensure HTTPClient implements Client
var _ Client = (*HTTPClient)(nil)

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// WithBackoff overrides the retry backoff for transient transport errors.
func WithBackoff(cfg providers.BackoffConfig) HTTPClientOption {
	return func(c *HTTPClient) {
		c.backoff = cfg
	}
}

// NewHTTPClient creates a new HTTP-based OCR client. The client is built once
// at startup, injected where needed, and never mutated afterwards; it is safe
// for concurrent use.
func NewHTTPClient(baseURL, apiKey string, timeout time.Duration, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// recognizeRequest represents the request body for text recognition.
type recognizeRequest struct {
	Image string `json:"image"`
}

// recognizeResponse represents the response from the OCR service.
type recognizeResponse struct {
	Lines []string `json:"lines"`
}

// errorResponse represents an error response from the OCR service.
type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Recognize extracts ordered text lines from a base64-encoded document image.
// Transient transport failures are retried a bounded number of times; any
// other failure surfaces as a categorized provider error.
func (c *HTTPClient) Recognize(ctx context.Context, imageB64 string) ([]string, error) {
	return providers.Retry(ctx, c.backoff, func(ctx context.Context) ([]string, error) {
		return c.recognize(ctx, imageB64)
	})
}

func (c *HTTPClient) recognize(ctx context.Context, imageB64 string) ([]string, error) {
	reqBody, err := json.Marshal(recognizeRequest{Image: imageB64})
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, providerID, "failed to marshal request", err)
	}

	url := fmt.Sprintf("%s/v1/recognize", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, providerID, "failed to create request", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, providers.NewProviderError(providers.ErrorTimeout, providerID, "request timeout", err)
		}
		return nil, providers.NewProviderError(providers.ErrorProviderOutage, providerID, "failed to execute request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, providers.NewProviderError(providers.ErrorInternal, providerID, "failed to read response body", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to parse
	case http.StatusUnauthorized:
		return nil, providers.NewProviderError(providers.ErrorAuthentication, providerID, "authentication failed", nil)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		var errResp errorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return nil, providers.NewProviderError(providers.ErrorBadData, providerID, errResp.Message, nil)
		}
		return nil, providers.NewProviderError(providers.ErrorBadData, providerID, "unreadable image", nil)
	case http.StatusTooManyRequests:
		return nil, providers.NewProviderError(providers.ErrorRateLimited, providerID, "rate limited", nil)
	case http.StatusServiceUnavailable:
		return nil, providers.NewProviderError(providers.ErrorProviderOutage, providerID, "service unavailable", nil)
	default:
		return nil, providers.NewProviderError(providers.ErrorInternal, providerID,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var recResp recognizeResponse
	if err := json.Unmarshal(body, &recResp); err != nil {
		return nil, providers.NewProviderError(providers.ErrorContractMismatch, providerID, "failed to parse response", err)
	}

	return recResp.Lines, nil
}
