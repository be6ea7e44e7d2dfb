package document

import "veritas/contracts/verification"

// VerifyRequest asks for extraction and validation of one document image.
type VerifyRequest struct {
	ImageB64         string
	GovernmentVerify bool
}

// VerifyResult is the single-document pipeline output: the extracted field
// set, its syntactic validity, and the registry outcome when one was
// attempted.
type VerifyResult struct {
	Fields      verification.DocumentFields         `json:"fields"`
	FormatValid bool                                `json:"format_valid"`
	Government  verification.GovernmentVerification `json:"government_verification"`
}
