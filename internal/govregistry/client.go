package govregistry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"veritas/contracts/verification"
)

// HTTPClient implements Verifier against the registry's HTTP API. Built once
// at startup with a bearer credential; safe for concurrent use.
type HTTPClient struct {
	baseURL    string
	authToken  string
	signingKey []byte
	httpClient *http.Client
}

var _ Verifier = (*HTTPClient)(nil)

// HTTPClientOption configures the HTTPClient.
type HTTPClientOption func(*HTTPClient)

// WithHTTPClient sets a custom HTTP client (for testing).
func WithHTTPClient(client *http.Client) HTTPClientOption {
	return func(c *HTTPClient) {
		c.httpClient = client
	}
}

// NewHTTPClient creates a registry client. signingKey signs the continuation
// tokens issued between the two Aadhaar steps; it is the gateway's key, not
// the registry's.
func NewHTTPClient(baseURL, authToken string, signingKey []byte, timeout time.Duration, opts ...HTTPClientOption) *HTTPClient {
	c := &HTTPClient{
		baseURL:    baseURL,
		authToken:  authToken,
		signingKey: signingKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type generateOTPRequest struct {
	IDNumber string `json:"id_number"`
}

type generateOTPResponse struct {
	SessionID string `json:"client_id"`
	Message   string `json:"message"`
}

type submitOTPRequest struct {
	SessionID string `json:"client_id"`
	OTP       string `json:"otp"`
}

type verifyPANRequest struct {
	IDNumber string `json:"id_number"`
}

type registryRecordResponse struct {
	Verified bool   `json:"verified"`
	Name     string `json:"name"`
	DOB      string `json:"dob"`
	Address  string `json:"address"`
	Message  string `json:"message"`
}

// VerifyAadhaar asks the registry to send an OTP to the Aadhaar-linked
// number. The registry's session id comes back wrapped in a signed
// continuation token inside a pending outcome.
func (c *HTTPClient) VerifyAadhaar(ctx context.Context, aadhaarNumber string) (verification.GovernmentVerification, error) {
	var genResp generateOTPResponse
	if reason := c.post(ctx, "/v1/aadhaar/generate-otp", generateOTPRequest{IDNumber: aadhaarNumber}, &genResp); reason != "" {
		return failed(reason), nil
	}
	if genResp.SessionID == "" {
		return failed("registry returned no session id"), nil
	}

	token, err := issueContinuationToken(c.signingKey, genResp.SessionID)
	if err != nil {
		return verification.GovernmentVerification{}, err
	}

	return verification.GovernmentVerification{
		Status:            verification.GovernmentPending,
		ContinuationToken: token,
	}, nil
}

// SubmitOTP resolves a pending Aadhaar check. An invalid or expired
// continuation token resolves to failed rather than an error; the caller
// simply restarts the check.
func (c *HTTPClient) SubmitOTP(ctx context.Context, continuationToken, otp string) (verification.GovernmentVerification, error) {
	sessionID, err := parseContinuationToken(c.signingKey, continuationToken)
	if err != nil {
		return failed(err.Error()), nil
	}

	var record registryRecordResponse
	if reason := c.post(ctx, "/v1/aadhaar/submit-otp", submitOTPRequest{SessionID: sessionID, OTP: otp}, &record); reason != "" {
		return failed(reason), nil
	}
	return recordOutcome(record), nil
}

// VerifyPAN runs the registry's single-call PAN lookup.
func (c *HTTPClient) VerifyPAN(ctx context.Context, panNumber string) (verification.GovernmentVerification, error) {
	var record registryRecordResponse
	if reason := c.post(ctx, "/v1/pan/verify", verifyPANRequest{IDNumber: panNumber}, &record); reason != "" {
		return failed(reason), nil
	}
	return recordOutcome(record), nil
}

// post executes one registry call. Failures come back as an opaque reason
// string; an empty reason means the response was decoded into out.
func (c *HTTPClient) post(ctx context.Context, path string, in, out any) string {
	reqBody, err := json.Marshal(in)
	if err != nil {
		return fmt.Sprintf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(reqBody))
	if err != nil {
		return fmt.Sprintf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "registry request timed out"
		}
		return fmt.Sprintf("registry unreachable: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Sprintf("failed to read registry response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return errResp.Message
		}
		return fmt.Sprintf("registry returned status %d", resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Sprintf("failed to parse registry response: %v", err)
	}
	return ""
}

func failed(reason string) verification.GovernmentVerification {
	return verification.GovernmentVerification{
		Status: verification.GovernmentFailed,
		Reason: reason,
	}
}

func recordOutcome(record registryRecordResponse) verification.GovernmentVerification {
	if !record.Verified {
		reason := record.Message
		if reason == "" {
			reason = "registry rejected the document"
		}
		return failed(reason)
	}
	return verification.GovernmentVerification{
		Status:  verification.GovernmentVerified,
		Name:    record.Name,
		DOB:     record.DOB,
		Address: record.Address,
	}
}
