package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"veritas/contracts/verification"
	"veritas/pkg/domain"
)

// Aadhaar card layouts vary across print generations and languages, so each
// field has its own independent heuristic. A heuristic that finds nothing
// leaves its field nil and never blocks the others.

var (
	dobNumericPattern = regexp.MustCompile(`\b(\d{1,2})[/\-.](\d{1,2})[/\-.](\d{4})\b`)
	dobSpelledPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)?\s+(january|february|march|april|may|june|july|august|september|october|november|december)[,.]?\s+(\d{4})\b`)
	pincodePattern    = regexp.MustCompile(`\b\d{6}\b`)

	// Latin or Devanagari letters plus the separators that show up inside
	// printed names. Any digit disqualifies a line as a name candidate.
	nameLinePattern = regexp.MustCompile(`^[A-Za-z\x{0900}-\x{097F}][A-Za-z\x{0900}-\x{097F}.'\s]*$`)
)

// Boilerplate tokens that disqualify a line from being the holder's name.
var aadhaarNameStopwords = []string{
	"government", "india", "unique", "identification", "authority",
	"aadhaar", "aadhar", "uidai", "enrollment", "enrolment",
	"dob", "date", "birth", "year", "male", "female", "address",
	"issue", "download", "vid", "help", "www",
	"भारत", "सरकार", "आधार", "प्राधिकरण", "जन्म", "पुरुष", "महिला", "पता",
}

var addressIndicators = []string{
	"address", "s/o", "d/o", "w/o", "c/o",
	"son of", "daughter of", "wife of",
	"house", "village", "street", "colony", "nagar", "district",
	"पता", "ग्राम", "मकान",
}

const maxAddressLines = 4

func extractAadhaarFields(lines []string, fields *verification.DocumentFields) {
	joined := strings.Join(lines, " ")

	if m := aadhaarNumberPattern.FindString(joined); m != "" {
		if num, err := domain.ParseAadhaarNumber(m); err == nil {
			fields.AadhaarNumber = ptr(num.String())
		}
	}

	fields.Name = findAadhaarName(lines)
	fields.DOB = findDOB(joined)
	fields.Gender = findGender(joined)
	fields.Address = findAddress(lines)

	if m := pincodePattern.FindString(joined); m != "" {
		fields.Pincode = ptr(m)
	}
}

// findAadhaarName returns the first line that looks like a printed holder
// name: alphabetic only (Latin or Devanagari), inside a plausible length
// band, and free of issuer boilerplate. Line order matters; the holder name
// is printed above the demographic block, so first match wins.
func findAadhaarName(lines []string) *string {
	for _, line := range lines {
		candidate := strings.TrimSpace(line)
		if n := utf8.RuneCountInString(candidate); n < 3 || n > 40 {
			continue
		}
		if !nameLinePattern.MatchString(candidate) {
			continue
		}
		if containsStopword(candidate, aadhaarNameStopwords) {
			continue
		}
		return ptr(candidate)
	}
	return nil
}

// findDOB matches the first date in either numeric or spelled-month form.
// Extraction is syntactic only: an impossible calendar date that fits the
// shape is returned as printed.
func findDOB(text string) *string {
	if m := dobNumericPattern.FindString(text); m != "" {
		return ptr(m)
	}
	if m := dobSpelledPattern.FindString(text); m != "" {
		return ptr(m)
	}
	return nil
}

// findGender maps bilingual gender tokens to the canonical values. English
// tokens are matched as whole words so names containing "male" as a fragment
// do not trigger a hit; Devanagari tokens are unambiguous as substrings.
func findGender(text string) *verification.Gender {
	if strings.Contains(text, "महिला") || strings.Contains(text, "स्त्री") {
		return ptr(verification.GenderFemale)
	}
	if strings.Contains(text, "पुरुष") {
		return ptr(verification.GenderMale)
	}

	for _, word := range strings.Fields(strings.ToLower(text)) {
		switch strings.Trim(word, ".,:/") {
		case "female":
			return ptr(verification.GenderFemale)
		case "male":
			return ptr(verification.GenderMale)
		case "transgender":
			return ptr(verification.GenderOther)
		}
	}
	return nil
}

// findAddress starts capturing at the first line carrying an address
// indicator and accumulates up to four consecutive lines from that point.
func findAddress(lines []string) *string {
	start := -1
	for i, line := range lines {
		lowered := strings.ToLower(line)
		for _, ind := range addressIndicators {
			if strings.Contains(lowered, ind) {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return nil
	}

	end := start + maxAddressLines
	if end > len(lines) {
		end = len(lines)
	}

	var parts []string
	for _, line := range lines[start:end] {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	if len(parts) == 0 {
		return nil
	}
	return ptr(strings.Join(parts, ", "))
}

// containsStopword matches whole words, not substrings, so a legitimate name
// containing a stopword fragment (e.g. "Kamalesh" around "male") survives.
func containsStopword(line string, stopwords []string) bool {
	for _, word := range strings.Fields(strings.ToLower(line)) {
		word = strings.Trim(word, ".,:'")
		for _, sw := range stopwords {
			if word == sw {
				return true
			}
		}
	}
	return false
}

func ptr[T any](v T) *T { return &v }
