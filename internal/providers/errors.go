// Package providers holds the plumbing shared by the external collaborator
// clients (OCR, face similarity, government registry): a normalized failure
// taxonomy and a bounded retry helper.
package providers

import (
	"errors"
	"fmt"
)

// ErrorCategory defines the normalized failure taxonomy for provider errors.
//
// All collaborator clients classify failures with these categories, allowing
// callers to make consistent retry and fallback decisions regardless of the
// underlying provider protocol or API.
type ErrorCategory string

const (
	// ErrorTimeout indicates the provider took too long to respond
	ErrorTimeout ErrorCategory = "timeout"

	// ErrorBadData indicates the provider returned invalid/malformed data
	ErrorBadData ErrorCategory = "bad_data"

	// ErrorAuthentication indicates credential or permission issues
	ErrorAuthentication ErrorCategory = "authentication"

	// ErrorProviderOutage indicates the provider is unavailable
	ErrorProviderOutage ErrorCategory = "provider_outage"

	// ErrorContractMismatch indicates the provider API version changed
	ErrorContractMismatch ErrorCategory = "contract_mismatch"

	// ErrorRejected indicates a well-formed rejection response (never retried)
	ErrorRejected ErrorCategory = "rejected"

	// ErrorRateLimited indicates too many requests
	ErrorRateLimited ErrorCategory = "rate_limited"

	// ErrorInternal indicates an unexpected internal error
	ErrorInternal ErrorCategory = "internal"
)

// ProviderError wraps provider failures with normalized categorization.
type ProviderError struct {
	Category   ErrorCategory
	ProviderID string
	Message    string
	Underlying error
	Retryable  bool // Automatically set based on Category (timeout, outage, rate-limited)
}

// Error implements the error interface
func (e *ProviderError) Error() string {
	if e.Underlying != nil {
		return fmt.Sprintf("provider %s [%s]: %s: %v", e.ProviderID, e.Category, e.Message, e.Underlying)
	}
	return fmt.Sprintf("provider %s [%s]: %s", e.ProviderID, e.Category, e.Message)
}

// Unwrap supports error unwrapping
func (e *ProviderError) Unwrap() error {
	return e.Underlying
}

// NewProviderError creates a new normalized provider error with automatic retry classification.
//
// The Retryable flag is set for transient transport failures only. Well-formed
// rejection responses are never retryable: retrying a rejection cannot change
// the answer and only multiplies load on the provider.
func NewProviderError(category ErrorCategory, providerID, message string, underlying error) *ProviderError {
	retryable := category == ErrorTimeout ||
		category == ErrorProviderOutage ||
		category == ErrorRateLimited

	return &ProviderError{
		Category:   category,
		ProviderID: providerID,
		Message:    message,
		Underlying: underlying,
		Retryable:  retryable,
	}
}

// AsProviderError unwraps err into a *ProviderError if one is in the chain.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsRetryable checks if an error is worth retrying
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return false
}

// GetCategory extracts the error category from an error
func GetCategory(err error) ErrorCategory {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Category
	}
	return ErrorInternal
}
