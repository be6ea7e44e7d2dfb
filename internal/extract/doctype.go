package extract

import (
	"regexp"
	"strings"

	"veritas/contracts/verification"
)

// Issuer phrases printed on each card type. Keyword hits outrank structural
// pattern hits: a 10-character alphanumeric token can show up incidentally in
// noisy OCR output, but an issuing-authority phrase is strong evidence.
var panKeywords = []string{
	"income tax department",
	"income tax",
	"permanent account number",
	"आयकर विभाग",
	"आयकर",
}

var aadhaarKeywords = []string{
	"aadhaar",
	"aadhar",
	"unique identification authority",
	"uidai",
	"government of india",
	"भारत सरकार",
	"आधार",
	"मेरा आधार",
}

// The word boundaries keep the Aadhaar pattern from latching onto twelve
// digits carved out of the middle of a longer digit run.
var (
	aadhaarNumberPattern = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	panNumberPattern     = regexp.MustCompile(`\b[A-Z]{5}[0-9]{4}[A-Z]\b`)
)

// DetectDocType classifies an OCR line set into a document type.
//
// It scans the concatenated text case-insensitively for issuer keywords first
// (PAN phrases, then Aadhaar phrases), and only if no keyword hits falls back
// to structural patterns: a 12-digit grouped number suggests Aadhaar, a
// 5-letter 4-digit 1-letter code suggests PAN. Text matching neither is
// classified unknown.
func DetectDocType(lines []string) verification.DocType {
	joined := strings.Join(lines, " ")
	lowered := strings.ToLower(joined)

	for _, kw := range panKeywords {
		if strings.Contains(lowered, kw) {
			return verification.DocTypePAN
		}
	}
	for _, kw := range aadhaarKeywords {
		if strings.Contains(lowered, kw) {
			return verification.DocTypeAadhaar
		}
	}

	if aadhaarNumberPattern.MatchString(joined) {
		return verification.DocTypeAadhaar
	}
	if panNumberPattern.MatchString(strings.ToUpper(joined)) {
		return verification.DocTypePAN
	}

	return verification.DocTypeUnknown
}

// hasIssuerKeyword reports whether the concatenated text carries any issuer
// phrase for the given type. Used by the marker-driven confidence estimate.
func hasIssuerKeyword(lines []string, docType verification.DocType) bool {
	lowered := strings.ToLower(strings.Join(lines, " "))

	var keywords []string
	switch docType {
	case verification.DocTypeAadhaar:
		keywords = aadhaarKeywords
	case verification.DocTypePAN:
		keywords = panKeywords
	default:
		return false
	}

	for _, kw := range keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}
