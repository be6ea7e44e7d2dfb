package privacy

import "testing"

func TestMaskAadhaar(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "canonical grouped number", input: "1234 5678 9012", expected: "XXXX XXXX 9012"},
		{name: "ungrouped number", input: "123456789012", expected: "XXXX XXXX 9012"},
		{name: "empty string", input: "", expected: "unknown"},
		{name: "too short to reveal suffix", input: "1234", expected: "XXXX XXXX XXXX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskAadhaar(tt.input); got != tt.expected {
				t.Errorf("MaskAadhaar(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestMaskPAN(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "canonical pan", input: "ABCDE1234F", expected: "AXXXXXXXXF"},
		{name: "empty string", input: "", expected: "unknown"},
		{name: "two characters", input: "AB", expected: "XX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskPAN(tt.input); got != tt.expected {
				t.Errorf("MaskPAN(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
