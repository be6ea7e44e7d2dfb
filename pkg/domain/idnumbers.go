// Package domain provides type-safe identity number primitives to prevent
// mixing up document numbers at compile time.
package domain

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	dErrors "veritas/pkg/domain-errors"
)

// AadhaarNumber is a canonically grouped 12-digit Aadhaar number ("XXXX XXXX XXXX").
type AadhaarNumber string

// PANNumber is a normalized 10-character PAN ("ABCDE1234F").
type PANNumber string

// VerificationID identifies one verification submission end to end.
type VerificationID uuid.UUID

var (
	nonDigit   = regexp.MustCompile(`\D`)
	panPattern = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// ParseAadhaarNumber normalizes an Aadhaar number into canonical grouped form.
// Any non-digit characters (spaces, dashes, OCR artifacts) are stripped first;
// exactly 12 digits must remain.
//
// Usage: call at trust boundaries for external input.
func ParseAadhaarNumber(s string) (AadhaarNumber, error) {
	digits := nonDigit.ReplaceAllString(s, "")
	if len(digits) != 12 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "aadhaar number must contain exactly 12 digits")
	}
	return AadhaarNumber(digits[:4] + " " + digits[4:8] + " " + digits[8:12]), nil
}

// ParsePANNumber normalizes a PAN by stripping whitespace and uppercasing,
// then checks the canonical 5-letter 4-digit 1-letter shape.
func ParsePANNumber(s string) (PANNumber, error) {
	normalized := strings.ToUpper(strings.Join(strings.Fields(s), ""))
	if !panPattern.MatchString(normalized) {
		return "", dErrors.New(dErrors.CodeInvalidInput, "pan must match AAAAA9999A")
	}
	return PANNumber(normalized), nil
}

// ValidAadhaarFormat reports whether the value has a canonical Aadhaar shape.
// Pure syntactic check: no checksum, no registry call. Never fails on garbage
// input; unparseable values are simply not valid.
func ValidAadhaarFormat(s string) bool {
	_, err := ParseAadhaarNumber(s)
	return err == nil
}

// ValidPANFormat reports whether the value has a canonical PAN shape.
func ValidPANFormat(s string) bool {
	_, err := ParsePANNumber(s)
	return err == nil
}

// NewVerificationID generates a fresh verification ID.
func NewVerificationID() VerificationID {
	return VerificationID(uuid.New())
}

// ParseVerificationID validates and parses a verification ID string.
func ParseVerificationID(s string) (VerificationID, error) {
	if s == "" {
		return VerificationID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "verification ID cannot be empty")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return VerificationID(uuid.Nil), dErrors.New(dErrors.CodeInvalidInput, "invalid verification ID format")
	}
	return VerificationID(id), nil
}

// String methods - for logging and debugging.

func (n AadhaarNumber) String() string   { return string(n) }
func (n PANNumber) String() string       { return string(n) }
func (id VerificationID) String() string { return uuid.UUID(id).String() }

// Digits returns the Aadhaar number without grouping separators.
func (n AadhaarNumber) Digits() string {
	return strings.ReplaceAll(string(n), " ", "")
}

func (id VerificationID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
