// Package privacy provides utilities for handling personally identifiable
// information (PII) before it reaches logs or the audit trail.
package privacy

import "strings"

// MaskAadhaar hides all but the last four digits of a canonical Aadhaar
// number (e.g., "1234 5678 9012" -> "XXXX XXXX 9012"). Audit events must
// never carry a full Aadhaar number.
//
// Returns "unknown" for empty strings and masks the whole value when it is
// too short to safely reveal a suffix.
func MaskAadhaar(number string) string {
	if number == "" {
		return "unknown"
	}
	digits := strings.ReplaceAll(number, " ", "")
	if len(digits) < 12 {
		return "XXXX XXXX XXXX"
	}
	return "XXXX XXXX " + digits[len(digits)-4:]
}

// MaskPAN hides the middle of a PAN, keeping the first and last character
// (e.g., "ABCDE1234F" -> "AXXXXXXXXF"). Enough to correlate records in
// support tooling without exposing the full number.
func MaskPAN(pan string) string {
	if pan == "" {
		return "unknown"
	}
	if len(pan) < 3 {
		return strings.Repeat("X", len(pan))
	}
	return pan[:1] + strings.Repeat("X", len(pan)-2) + pan[len(pan)-1:]
}
