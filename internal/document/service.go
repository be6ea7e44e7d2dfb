// Package document runs the single-document pipeline: OCR, field extraction,
// format validation, and the optional government registry check.
package document

import (
	"context"
	"log/slog"
	"time"

	"veritas/contracts/verification"
	"veritas/internal/extract"
	"veritas/internal/govregistry"
	"veritas/internal/ocr"
	"veritas/internal/platform/metrics"
	"veritas/internal/providers"
	"veritas/internal/tracer"
	"veritas/pkg/domain"
	dErrors "veritas/pkg/domain-errors"
	"veritas/pkg/platform/audit"
	"veritas/pkg/platform/privacy"
	"veritas/pkg/requestcontext"
)

// AuditPublisher is the audit port consumed by the service.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service orchestrates one document's verification. Extraction and
// validation are pure and never fail; only the OCR call can fail the request.
type Service struct {
	ocr      ocr.Client
	registry govregistry.Verifier
	auditor  AuditPublisher
	metrics  *metrics.Metrics
	logger   *slog.Logger
	tracer   tracer.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithMetrics sets the metrics collector for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger sets the logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		s.logger = l
	}
}

// WithTracer sets the tracer for the service. Defaults to a no-op tracer.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New creates a document service with required dependencies.
// Panics if required dependencies are nil - fail fast at startup.
func New(ocrClient ocr.Client, registry govregistry.Verifier, auditor AuditPublisher, opts ...Option) *Service {
	if ocrClient == nil {
		panic("document.New: ocr client is required")
	}
	if registry == nil {
		panic("document.New: registry verifier is required")
	}
	if auditor == nil {
		panic("document.New: auditor is required for the audit trail")
	}

	s := &Service{
		ocr:      ocrClient,
		registry: registry,
		auditor:  auditor,
		tracer:   tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Verify runs the pipeline for one document image. An OCR failure is fatal
// for the request; every later stage degrades to nil fields or a failed
// registry outcome instead of erroring.
func (s *Service) Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanDocumentVerify)

	lines, err := s.ocr.Recognize(ctx, req.ImageB64)
	if err != nil {
		span.End(err)
		return nil, s.mapOCRError(ctx, err)
	}

	fields := extract.Extract(lines)
	if s.metrics != nil {
		s.metrics.IncrementExtraction(string(fields.DocType))
	}

	result := &VerifyResult{
		Fields:     fields,
		Government: verification.GovernmentVerification{Status: verification.GovernmentNotAttempted},
	}

	switch fields.DocType {
	case verification.DocTypePAN:
		s.verifyPAN(ctx, req, result)
	case verification.DocTypeAadhaar:
		s.verifyAadhaar(ctx, req, result)
	}

	span.SetAttributes(
		tracer.String(tracer.AttrDocType, string(fields.DocType)),
		tracer.Bool(tracer.AttrFormatValid, result.FormatValid),
		tracer.String(tracer.AttrGovStatus, string(result.Government.Status)),
	)
	span.End(nil)

	s.emitAudit(ctx, result)
	return result, nil
}

func (s *Service) verifyPAN(ctx context.Context, req VerifyRequest, result *VerifyResult) {
	pan := result.Fields.PANNumber
	result.FormatValid = pan != nil && domain.ValidPANFormat(*pan)

	if !req.GovernmentVerify || !result.FormatValid {
		return
	}

	outcome, err := s.registry.VerifyPAN(ctx, *pan)
	if err != nil {
		s.logRegistryError(ctx, err)
		outcome = verification.GovernmentVerification{
			Status: verification.GovernmentFailed,
			Reason: "registry check unavailable",
		}
	}
	result.Government = outcome
	if s.metrics != nil {
		s.metrics.IncrementGovernmentLookup(string(outcome.Status))
	}

	// The registry's authoritative name only fills a gap left by OCR. A
	// present extracted value is never overwritten.
	if result.Fields.Name == nil && outcome.Name != "" {
		name := outcome.Name
		result.Fields.Name = &name
	}
}

func (s *Service) verifyAadhaar(ctx context.Context, req VerifyRequest, result *VerifyResult) {
	aadhaar := result.Fields.AadhaarNumber
	result.FormatValid = aadhaar != nil && domain.ValidAadhaarFormat(*aadhaar)

	if !req.GovernmentVerify || !result.FormatValid {
		return
	}

	outcome, err := s.registry.VerifyAadhaar(ctx, *aadhaar)
	if err != nil {
		s.logRegistryError(ctx, err)
		outcome = verification.GovernmentVerification{
			Status: verification.GovernmentFailed,
			Reason: "registry check unavailable",
		}
	}
	result.Government = outcome
	if s.metrics != nil {
		s.metrics.IncrementGovernmentLookup(string(outcome.Status))
	}
}

// SubmitAadhaarOTP resolves step two of the Aadhaar registry check. The
// registry's authoritative name backfills the outcome for callers that lost
// the extracted fields between steps.
func (s *Service) SubmitAadhaarOTP(ctx context.Context, continuationToken, otp string) (verification.GovernmentVerification, error) {
	outcome, err := s.registry.SubmitOTP(ctx, continuationToken, otp)
	if err != nil {
		s.logRegistryError(ctx, err)
		return verification.GovernmentVerification{}, dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "registry check unavailable")
	}

	if s.metrics != nil {
		s.metrics.IncrementGovernmentLookup(string(outcome.Status))
	}

	event := audit.Event{
		Timestamp: time.Now(),
		Action:    string(audit.EventOTPSubmitted),
		Decision:  string(outcome.Status),
		Reason:    outcome.Reason,
		Device:    requestcontext.DeviceName(ctx),
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit otp audit event", "error", err)
	}

	return outcome, nil
}

// mapOCRError converts a provider failure into the request-level error the
// caller sees: unreadable input is the caller's problem, everything else is
// ours.
func (s *Service) mapOCRError(ctx context.Context, err error) error {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "ocr recognition failed", "error", err)
	}

	provErr, ok := providers.AsProviderError(err)
	if !ok {
		return dErrors.Wrap(err, dErrors.CodeInternal, "text recognition failed")
	}

	if s.metrics != nil {
		s.metrics.IncrementProviderFailure(provErr.ProviderID, string(provErr.Category))
	}

	switch provErr.Category {
	case providers.ErrorBadData:
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "document image is unreadable")
	case providers.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "text recognition timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "text recognition failed")
	}
}

func (s *Service) logRegistryError(ctx context.Context, err error) {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "government registry call failed", "error", err)
	}
}

func (s *Service) emitAudit(ctx context.Context, result *VerifyResult) {
	event := audit.Event{
		Timestamp: time.Now(),
		Subject:   maskedSubject(result.Fields),
		Action:    string(audit.EventDocumentVerified),
		Decision:  formatValidDecision(result.FormatValid),
		Reason:    string(result.Fields.DocType),
		Device:    requestcontext.DeviceName(ctx),
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit document audit event", "error", err)
	}
}

func maskedSubject(fields verification.DocumentFields) string {
	switch {
	case fields.AadhaarNumber != nil:
		return privacy.MaskAadhaar(*fields.AadhaarNumber)
	case fields.PANNumber != nil:
		return privacy.MaskPAN(*fields.PANNumber)
	}
	return "unknown"
}

func formatValidDecision(valid bool) string {
	if valid {
		return "format_valid"
	}
	return "format_invalid"
}
