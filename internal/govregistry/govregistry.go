// Package govregistry is the optional call-out to the authoritative identity
// registry. It normalizes the registry's two-step Aadhaar protocol (generate
// OTP, then submit the code) and its single-call PAN lookup into the shared
// verification outcome states.
//
// Registry failures never surface as typed errors to the pipeline: they are
// folded into a "failed" outcome with an opaque reason string, so a registry
// hiccup degrades one signal instead of the whole request. Only an absent
// credential produces the distinct "not_configured" state, without any
// network I/O.
package govregistry

import (
	"context"

	"veritas/contracts/verification"
)

// Verifier is the registry port consumed by the document pipeline.
type Verifier interface {
	// VerifyAadhaar starts the two-step Aadhaar check. On success the
	// outcome is pending and carries a continuation token for SubmitOTP.
	VerifyAadhaar(ctx context.Context, aadhaarNumber string) (verification.GovernmentVerification, error)

	// SubmitOTP resolves a pending Aadhaar check with the code delivered
	// to the holder's registered number.
	SubmitOTP(ctx context.Context, continuationToken, otp string) (verification.GovernmentVerification, error)

	// VerifyPAN runs the single-call PAN lookup.
	VerifyPAN(ctx context.Context, panNumber string) (verification.GovernmentVerification, error)
}

// Disabled is the Verifier used when no registry credential is configured.
// Every call reports not_configured immediately.
type Disabled struct{}

var _ Verifier = Disabled{}

func (Disabled) VerifyAadhaar(context.Context, string) (verification.GovernmentVerification, error) {
	return verification.GovernmentVerification{Status: verification.GovernmentNotConfigured}, nil
}

func (Disabled) SubmitOTP(context.Context, string, string) (verification.GovernmentVerification, error) {
	return verification.GovernmentVerification{Status: verification.GovernmentNotConfigured}, nil
}

func (Disabled) VerifyPAN(context.Context, string) (verification.GovernmentVerification, error) {
	return verification.GovernmentVerification{Status: verification.GovernmentNotConfigured}, nil
}
