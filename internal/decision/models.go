package decision

import "veritas/contracts/verification"

// EvaluateRequest is one full KYC submission: both document images, the
// selfie, and optionally the name and date of birth captured at onboarding.
type EvaluateRequest struct {
	AadhaarImageB64 string
	PANImageB64     string
	SelfieImageB64  string
	OnboardingName  string
	OnboardingDOB   string
}

// gatheredEvidence holds everything the rules consume, assembled after the
// parallel fetches complete. Field sets are read-only from here on.
type gatheredEvidence struct {
	aadhaar verification.DocumentFields
	pan     verification.DocumentFields
	face    verification.FaceMatch
}
