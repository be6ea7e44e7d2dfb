// Package tracer provides a lightweight tracing abstraction for the
// verification pipeline.
//
// The internal interface keeps the pipeline decoupled from OpenTelemetry's
// APIs: services emit spans through Tracer and the binary decides whether
// they go to an OTel provider or nowhere.
//
// Implementations:
//   - NoopTracer: For tests (zero overhead)
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span, recording any error that occurred.
	// End must be called exactly once, typically via defer.
	End(err error)

	// SetAttributes adds key-value pairs to the span.
	SetAttributes(attrs ...Attribute)

	// AddEvent records a timestamped event within the span.
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans for distributed tracing.
// Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes. The
	// returned context carries the span and should be passed to child
	// operations.
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

// String creates a string attribute.
func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

// Bool creates a boolean attribute.
func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

// Int64 creates an int64 attribute.
func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Float64 creates a float64 attribute.
func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// HashDocumentNumber returns a truncated SHA-256 hash of a document number
// for safe correlation in traces without exposing PII.
func HashDocumentNumber(number string) string {
	if number == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(number))
	return hex.EncodeToString(hash[:8])
}

// Span names used by the pipeline.
const (
	SpanEvaluate        = "kyc.evaluate"
	SpanDocumentVerify  = "kyc.document.verify"
	SpanEvidenceGather  = "kyc.evidence.gather"
	SpanRegistryLookup  = "kyc.registry.lookup"
	SpanFaceCompare     = "kyc.face.compare"
	SpanTextRecognition = "kyc.ocr.recognize"
)

// Attribute keys used by the pipeline.
const (
	AttrDocType     = "doc_type"
	AttrDocNumber   = "doc_number_hash"
	AttrApproved    = "approved"
	AttrFormatValid = "format_valid"
	AttrGovStatus   = "government_status"
	AttrFaceModel   = "face_model"
)
