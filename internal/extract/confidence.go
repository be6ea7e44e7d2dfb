package extract

import (
	"strings"

	"veritas/contracts/verification"
)

// Confidence scores reflect indicator density, not verified correctness.
// Nothing here has access to ground truth, so the score is capped below full
// certainty regardless of how many markers were found.
const (
	confidenceBase    = 60
	confidenceSpread  = 35
	confidenceCeiling = 95
	markerIncrement   = 15
)

// EstimateFromFields scores extraction quality from which of the expected
// fields for the document type were populated. Unknown documents score 0.
func EstimateFromFields(fields verification.DocumentFields) int {
	var expected []bool
	switch fields.DocType {
	case verification.DocTypeAadhaar:
		expected = []bool{
			fields.Name != nil,
			fields.AadhaarNumber != nil,
			fields.DOB != nil,
			fields.Gender != nil,
		}
	case verification.DocTypePAN:
		expected = []bool{
			fields.Name != nil,
			fields.PANNumber != nil,
			fields.DOB != nil,
		}
	default:
		return 0
	}

	filled := 0
	for _, present := range expected {
		if present {
			filled++
		}
	}

	score := confidenceBase + filled*confidenceSpread/len(expected)
	if score > confidenceCeiling {
		score = confidenceCeiling
	}
	return score
}

// EstimateFromMarkers scores extraction quality from which structural markers
// appear in the raw text: an issuer keyword and a canonically shaped ID
// number. Both formulations saturate at the same ceiling.
func EstimateFromMarkers(lines []string, docType verification.DocType) int {
	if docType == verification.DocTypeUnknown {
		return 0
	}

	score := confidenceBase
	if hasIssuerKeyword(lines, docType) {
		score += markerIncrement
	}
	if hasCanonicalID(lines, docType) {
		score += markerIncrement
	}
	if score > confidenceCeiling {
		score = confidenceCeiling
	}
	return score
}

func hasCanonicalID(lines []string, docType verification.DocType) bool {
	joined := strings.Join(lines, " ")

	switch docType {
	case verification.DocTypeAadhaar:
		return aadhaarNumberPattern.MatchString(joined)
	case verification.DocTypePAN:
		return panNumberPattern.MatchString(strings.ToUpper(joined))
	}
	return false
}
