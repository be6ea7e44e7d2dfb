// Package testutil holds shared fixtures for verification pipeline tests.
package testutil

// AadhaarCardLines returns OCR output for a well-formed Aadhaar card
// belonging to Ravi Kumar.
func AadhaarCardLines() []string {
	return []string{
		"Government of India",
		"Ravi Kumar",
		"DOB: 15/08/1985",
		"Male",
		"1234 5678 9012",
	}
}

// PANCardLines returns OCR output for a well-formed PAN card with labeled
// holder and father names and the canonical test number ABCDE1234F.
func PANCardLines(holder, father string) []string {
	return []string{
		"INCOME TAX DEPARTMENT",
		"Name",
		holder,
		"Father's Name",
		father,
		"ABCDE1234F",
	}
}
