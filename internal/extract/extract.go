// Package extract classifies OCR line sets into document types and pulls
// structured identity fields out of them with pattern and positional
// heuristics.
//
// The extractor never fails on malformed input. A field whose pattern does
// not match stays nil, which downstream logic reads as insufficient evidence
// rather than an error. Line order is significant and preserved end to end;
// several heuristics rely on "value follows label line" positioning.
package extract

import "veritas/contracts/verification"

// Extract classifies the document type and runs the per-type field
// heuristics. An unknown document type yields no type-specific fields and
// zero confidence.
func Extract(lines []string) verification.DocumentFields {
	fields := verification.DocumentFields{
		DocType: DetectDocType(lines),
		RawText: lines,
	}
	if fields.RawText == nil {
		fields.RawText = []string{}
	}

	switch fields.DocType {
	case verification.DocTypeAadhaar:
		extractAadhaarFields(lines, &fields)
	case verification.DocTypePAN:
		extractPANFields(lines, &fields)
	}

	fields.Confidence = EstimateFromFields(fields)
	return fields
}
