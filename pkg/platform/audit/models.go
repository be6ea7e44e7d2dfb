// Package audit captures structured audit events emitted from domain logic.
// Events are transport-agnostic so sinks can fan out; the decision breakdown
// itself is returned to the caller, the audit trail only records that and why
// a decision happened, with PII already masked by the emitter.
package audit

import (
	"context"
	"time"
)

// Event is emitted from domain logic to capture key actions. ID numbers must
// be masked (pkg/platform/privacy) before they are placed on an Event.
type Event struct {
	Timestamp time.Time
	Subject   string // masked document number or verification ID
	Action    string
	Decision  string
	Reason    string
	Device    string // human-readable client device, if known
	RequestID string // correlation ID from HTTP request context
}

type AuditEvent string

const (
	EventDocumentVerified AuditEvent = "document_verified"
	EventGovernmentLookup AuditEvent = "government_lookup"
	EventOTPSubmitted     AuditEvent = "otp_submitted"
	EventFaceCompared     AuditEvent = "face_compared"
	EventDecisionMade     AuditEvent = "decision_made"
	EventUpstreamFailure  AuditEvent = "upstream_failure"
	EventAuthFailed       AuditEvent = "auth_failed"
)

// Publisher is the port domain services use to emit audit events.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// Sink persists or forwards audit events. Tests swap in an in-memory sink.
type Sink interface {
	Write(ctx context.Context, event Event) error
}
