package extract

import (
	"regexp"
	"strings"

	"veritas/contracts/verification"
	"veritas/pkg/domain"
)

var allCapsLinePattern = regexp.MustCompile(`^[A-Z][A-Z.'\s]*$`)

// Lines that are all caps on a PAN card but are printed boilerplate, not the
// holder's name.
var panBoilerplate = []string{
	"INCOME TAX DEPARTMENT",
	"GOVT. OF INDIA",
	"GOVT OF INDIA",
	"GOVERNMENT OF INDIA",
	"PERMANENT ACCOUNT NUMBER",
	"INDIA",
	"SIGNATURE",
}

func extractPANFields(lines []string, fields *verification.DocumentFields) {
	joined := strings.Join(lines, " ")

	if m := panNumberPattern.FindString(strings.ToUpper(joined)); m != "" {
		if num, err := domain.ParsePANNumber(m); err == nil {
			fields.PANNumber = ptr(num.String())
		}
	}

	name, fatherName := findPANNames(lines)
	fields.Name = name
	fields.FatherName = fatherName
	fields.DOB = findDOB(joined)
}

// findPANNames reads the two name fields off a PAN card. The card prints a
// "Name" label line with the value on the next line, then a "Father's Name"
// label with its value below. The first labeled hit is the holder, the second
// the father. Cards where OCR dropped the labels fall back to the first
// all-caps alphabetic line that is not printed boilerplate.
func findPANNames(lines []string) (name, fatherName *string) {
	labeled := 0
	for i, line := range lines {
		if !strings.Contains(strings.ToLower(line), "name") {
			continue
		}
		if i+1 >= len(lines) {
			break
		}
		value := strings.TrimSpace(lines[i+1])
		if value == "" || strings.Contains(strings.ToLower(value), "name") {
			continue
		}

		labeled++
		switch labeled {
		case 1:
			name = ptr(value)
		case 2:
			fatherName = ptr(value)
			return name, fatherName
		}
	}

	if name != nil {
		return name, fatherName
	}

	for _, line := range lines {
		candidate := strings.TrimSpace(line)
		if len(candidate) < 3 || len(candidate) > 40 {
			continue
		}
		if !allCapsLinePattern.MatchString(candidate) {
			continue
		}
		if isPANBoilerplate(candidate) {
			continue
		}
		return ptr(candidate), nil
	}
	return nil, nil
}

func isPANBoilerplate(line string) bool {
	for _, b := range panBoilerplate {
		if strings.Contains(line, b) {
			return true
		}
	}
	return false
}
