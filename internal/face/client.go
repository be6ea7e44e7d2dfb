package face

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"veritas/contracts/verification"
	"veritas/internal/providers"
	"veritas/pkg/platform/circuit"
)

const providerID = "face-http"

// DefaultModels is the fallback order: highest accuracy first.
var DefaultModels = []string{"Facenet512", "VGG-Face"}

// HTTPClient implements Comparer against an external face-similarity service.
//
// Each embedding model gets its own circuit breaker: a model that keeps
// failing is skipped so requests go straight to the fallback instead of
// paying for a doomed attempt. If every breaker is open the models are tried
// anyway, since returning nothing would be strictly worse.
type HTTPClient struct {
	baseURL    string
	models     []string
	breakers   map[string]*circuit.Breaker
	httpClient *http.Client
}

var _ Comparer = (*HTTPClient)(nil)

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// WithModels overrides the ordered model fallback list.
func WithModels(models []string) HTTPClientOption {
	return func(c *HTTPClient) {
		if len(models) > 0 {
			c.models = models
		}
	}
}

// NewHTTPClient creates a face-comparison client. Built once at startup and
// safe for concurrent use.
func NewHTTPClient(baseURL string, timeout time.Duration, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL: baseURL,
		models:  DefaultModels,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}

	c.breakers = make(map[string]*circuit.Breaker, len(c.models))
	for _, model := range c.models {
		c.breakers[model] = circuit.New(model, circuit.WithFailureThreshold(3))
	}
	return c
}

// compareRequest represents the request body for one model attempt.
type compareRequest struct {
	Selfie   string `json:"selfie"`
	Document string `json:"document"`
	Model    string `json:"model"`
}

// compareResponse represents the verdict from the face service.
type compareResponse struct {
	Verified  bool    `json:"verified"`
	Distance  float64 `json:"distance"`
	Threshold float64 `json:"threshold"`
	Error     string  `json:"error,omitempty"`
}

// Compare tries each model in order until one produces a verdict. A model
// that reports a signal-level problem (no detectable face, bad embedding) or
// a transport failure trips its breaker and the next model is tried. When
// every model fails, the last failure is surfaced so the caller can apply its
// own policy.
func (c *HTTPClient) Compare(ctx context.Context, selfieB64, documentB64 string) (verification.FaceMatch, error) {
	tryAll := c.allOpen()

	var lastErr error
	for _, model := range c.models {
		breaker := c.breakers[model]
		if breaker.IsOpen() && !tryAll {
			continue
		}

		match, err := c.compareWithModel(ctx, model, selfieB64, documentB64)
		if err != nil {
			breaker.RecordFailure()
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			continue
		}

		breaker.RecordSuccess()
		return match, nil
	}

	if lastErr == nil {
		lastErr = providers.NewProviderError(providers.ErrorInternal, providerID, "no comparison model available", nil)
	}
	return verification.FaceMatch{}, lastErr
}

func (c *HTTPClient) allOpen() bool {
	for _, b := range c.breakers {
		if !b.IsOpen() {
			return false
		}
	}
	return true
}

func (c *HTTPClient) compareWithModel(ctx context.Context, model, selfieB64, documentB64 string) (verification.FaceMatch, error) {
	reqBody, err := json.Marshal(compareRequest{
		Selfie:   selfieB64,
		Document: documentB64,
		Model:    model,
	})
	if err != nil {
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorInternal, providerID, "failed to marshal request", err)
	}

	url := fmt.Sprintf("%s/v1/compare", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorInternal, providerID, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorTimeout, providerID, "request timeout", err)
		}
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorProviderOutage, providerID, "failed to execute request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorInternal, providerID, "failed to read response body", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		// Success - continue to parse
	case http.StatusUnprocessableEntity:
		var cmpResp compareResponse
		msg := "signal unavailable"
		if json.Unmarshal(body, &cmpResp) == nil && cmpResp.Error != "" {
			msg = cmpResp.Error
		}
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorBadData, providerID, msg, nil)
	case http.StatusServiceUnavailable:
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorProviderOutage, providerID, "service unavailable", nil)
	default:
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorInternal, providerID,
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	var cmpResp compareResponse
	if err := json.Unmarshal(body, &cmpResp); err != nil {
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorContractMismatch, providerID, "failed to parse response", err)
	}
	if cmpResp.Error != "" {
		return verification.FaceMatch{}, providers.NewProviderError(providers.ErrorBadData, providerID, cmpResp.Error, nil)
	}

	return verification.FaceMatch{
		Verified:   cmpResp.Verified,
		Confidence: confidenceFromDistance(cmpResp.Distance, cmpResp.Threshold),
		Model:      model,
		Distance:   cmpResp.Distance,
		Threshold:  cmpResp.Threshold,
	}, nil
}
