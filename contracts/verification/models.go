// Package verification holds the wire-level field set shared between the
// gateway and its downstream consumers. Keys and allowed values are frozen;
// renaming a JSON key here is a breaking contract change.
package verification

// ContractVersion identifies the schema for verification payloads shared across services.
const ContractVersion = "v0.1.0"

// DocType classifies an identity document.
type DocType string

const (
	DocTypeAadhaar DocType = "aadhaar"
	DocTypePAN     DocType = "pan"
	DocTypeUnknown DocType = "unknown"
)

// Gender is the normalized gender value read off a document.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

// DocumentFields is the extracted field set for one document. Every field is
// optional; a nil pointer means the extractor found no match, which is a
// normal state and not an error.
type DocumentFields struct {
	DocType       DocType  `json:"doc_type"`
	Name          *string  `json:"name"`
	DOB           *string  `json:"dob"`
	Confidence    int      `json:"confidence"`
	AadhaarNumber *string  `json:"aadhaar_number,omitempty"`
	Gender        *Gender  `json:"gender,omitempty"`
	Address       *string  `json:"address,omitempty"`
	Pincode       *string  `json:"pincode,omitempty"`
	PANNumber     *string  `json:"pan_number,omitempty"`
	FatherName    *string  `json:"father_name,omitempty"`
	RawText       []string `json:"raw_text"`
}

// GovernmentStatus enumerates the states of the optional registry check.
type GovernmentStatus string

const (
	GovernmentNotAttempted  GovernmentStatus = "not_attempted"
	GovernmentPending       GovernmentStatus = "pending"
	GovernmentVerified      GovernmentStatus = "verified"
	GovernmentFailed        GovernmentStatus = "failed"
	GovernmentNotConfigured GovernmentStatus = "not_configured"
)

// GovernmentVerification is the normalized outcome of a registry lookup.
// ContinuationToken is only set while Status is "pending"; Reason only while
// Status is "failed".
type GovernmentVerification struct {
	Status            GovernmentStatus `json:"status"`
	ContinuationToken string           `json:"continuation_token,omitempty"`
	Name              string           `json:"name,omitempty"`
	DOB               string           `json:"dob,omitempty"`
	Address           string           `json:"address,omitempty"`
	Reason            string           `json:"reason,omitempty"`
}

// NameCrossCheck compares names extracted from two independent sources.
type NameCrossCheck struct {
	Match         bool    `json:"match"`
	SimilarityPct int     `json:"similarity_pct"`
	AadhaarName   *string `json:"aadhaar_name"`
	PANName       *string `json:"pan_name"`
}

// FaceMatch is the face-similarity verdict consumed by the decision.
type FaceMatch struct {
	Verified   bool    `json:"verified"`
	Confidence int     `json:"confidence"`
	Model      string  `json:"model,omitempty"`
	Distance   float64 `json:"distance,omitempty"`
	Threshold  float64 `json:"threshold,omitempty"`
	Error      string  `json:"error,omitempty"`
}

// DocumentCheck is one document's slot in the decision breakdown.
type DocumentCheck struct {
	Valid  bool           `json:"valid"`
	Fields DocumentFields `json:"fields"`
}

// Checks retains every intermediate result feeding the decision.
type Checks struct {
	Aadhaar        DocumentCheck  `json:"aadhaar"`
	PAN            DocumentCheck  `json:"pan"`
	NameCrossCheck NameCrossCheck `json:"name_cross_check"`
	FaceMatch      FaceMatch      `json:"face_match"`
}

// Summary repeats the four gates in flat form for quick consumers.
type Summary struct {
	AadhaarValid bool `json:"aadhaar_valid"`
	PANValid     bool `json:"pan_valid"`
	NamesMatch   bool `json:"names_match"`
	FaceMatches  bool `json:"face_matches"`
}

// Decision is the terminal verdict with its full audit breakdown. Nothing
// gathered during evaluation is discarded.
type Decision struct {
	VerificationID string  `json:"verification_id"`
	Approved       bool    `json:"approved"`
	Checks         Checks  `json:"checks"`
	Summary        Summary `json:"summary"`
}
