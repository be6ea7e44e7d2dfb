package decision

import (
	"math"
	"strings"

	"veritas/contracts/verification"
	"veritas/pkg/domain"
)

// Tunable leniency policy. The defaults favor availability over strictness
// when a signal is missing: an OCR miss or a biometric hiccup degrades one
// gate instead of rejecting the submission outright. Raise these for a
// stricter trust boundary.
const (
	// nameMatchThreshold is the minimum token-overlap percentage for two
	// names to count as the same person.
	nameMatchThreshold = 40

	// lenientFaceConfidence is the placeholder confidence assigned when
	// the face signal reports an internal error and the gate is waved
	// through.
	lenientFaceConfidence = 70
)

// decide fuses the gathered evidence into the terminal verdict. Pure: no
// I/O, no clock, inputs are never mutated.
func decide(ev gatheredEvidence, onboardingName string) verification.Decision {
	aadhaarValid := aadhaarSlotValid(ev.aadhaar)
	panValid := panSlotValid(ev.pan)
	nameCheck := crossCheckNames(ev.aadhaar.Name, ev.pan.Name, onboardingName)
	faceCheck := applyFaceLeniency(ev.face)

	approved := aadhaarValid && panValid && nameCheck.Match && faceCheck.Verified

	return verification.Decision{
		Approved: approved,
		Checks: verification.Checks{
			Aadhaar:        verification.DocumentCheck{Valid: aadhaarValid, Fields: ev.aadhaar},
			PAN:            verification.DocumentCheck{Valid: panValid, Fields: ev.pan},
			NameCrossCheck: nameCheck,
			FaceMatch:      faceCheck,
		},
		Summary: verification.Summary{
			AadhaarValid: aadhaarValid,
			PANValid:     panValid,
			NamesMatch:   nameCheck.Match,
			FaceMatches:  faceCheck.Verified,
		},
	}
}

// aadhaarSlotValid requires both the expected document type and a
// format-valid number.
func aadhaarSlotValid(fields verification.DocumentFields) bool {
	if fields.DocType != verification.DocTypeAadhaar {
		return false
	}
	return fields.AadhaarNumber != nil && domain.ValidAadhaarFormat(*fields.AadhaarNumber)
}

// panSlotValid tolerates an unknown document type and a missing number. PAN
// cards classify less reliably than Aadhaar (sparser issuer text), so this
// slot only rejects on positive evidence of a wrong or malformed document.
func panSlotValid(fields verification.DocumentFields) bool {
	if fields.DocType != verification.DocTypePAN && fields.DocType != verification.DocTypeUnknown {
		return false
	}
	if fields.PANNumber == nil {
		return true
	}
	return domain.ValidPANFormat(*fields.PANNumber)
}

// crossCheckNames compares the best available pair of names. Document names
// outrank the onboarding-provided name; with no usable pair at all the check
// defaults to a match, since absence of evidence is not contradicting
// evidence.
func crossCheckNames(aadhaarName, panName *string, onboardingName string) verification.NameCrossCheck {
	aName := normalizeName(aadhaarName)
	pName := normalizeName(panName)
	oName := strings.ToLower(strings.TrimSpace(onboardingName))

	check := verification.NameCrossCheck{
		AadhaarName: nilIfEmpty(aName),
		PANName:     nilIfEmpty(pName),
	}

	switch {
	case aName != "" && pName != "":
		check.SimilarityPct = NameSimilarity(aName, pName)
	case aName != "" && oName != "":
		check.SimilarityPct = NameSimilarity(aName, oName)
	default:
		check.Match = true
		return check
	}

	check.Match = check.SimilarityPct >= nameMatchThreshold
	return check
}

// NameSimilarity computes token-level Jaccard similarity between two names
// as a rounded percentage. Symmetric; identical non-empty names score 100;
// an empty side scores 0.
func NameSimilarity(a, b string) int {
	aWords := tokenSet(a)
	bWords := tokenSet(b)
	if len(aWords) == 0 || len(bWords) == 0 {
		return 0
	}

	intersection := 0
	union := len(bWords)
	for w := range aWords {
		if bWords[w] {
			intersection++
		} else {
			union++
		}
	}

	return int(math.Round(float64(intersection) / float64(union) * 100))
}

// applyFaceLeniency waves the face gate through when the signal itself
// errored, with a fixed placeholder confidence. The error string is retained
// on the result for the audit trail.
func applyFaceLeniency(match verification.FaceMatch) verification.FaceMatch {
	if match.Error == "" {
		return match
	}
	match.Verified = true
	match.Confidence = lenientFaceConfidence
	return match
}

func tokenSet(s string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(strings.ToLower(s)) {
		set[w] = true
	}
	return set
}

func normalizeName(name *string) string {
	if name == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*name))
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
