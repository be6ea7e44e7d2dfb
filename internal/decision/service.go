// Package decision is the cross-check engine: it gathers evidence from both
// documents and the face signal, fuses the four gates, and produces one
// approve/reject verdict with its full audit breakdown.
package decision

import (
	"context"
	"log/slog"
	"time"

	"veritas/contracts/verification"
	"veritas/internal/face"
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

// Service evaluates one full KYC submission. The rules are centralized here
// and pure; all I/O happens in the evidence phase.
type Service struct {
	ocr     ocr.Client
	face    face.Comparer
	auditor AuditPublisher
	metrics *metrics.Metrics
	logger  *slog.Logger
	tracer  tracer.Tracer
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

// New creates a decision service with required dependencies.
// Panics if required dependencies are nil - fail fast at startup.
func New(ocrClient ocr.Client, comparer face.Comparer, auditor AuditPublisher, opts ...Option) *Service {
	if ocrClient == nil {
		panic("decision.New: ocr client is required")
	}
	if comparer == nil {
		panic("decision.New: face comparer is required")
	}
	if auditor == nil {
		panic("decision.New: auditor is required for the audit trail")
	}

	s := &Service{
		ocr:     ocrClient,
		face:    comparer,
		auditor: auditor,
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Evaluate runs the full pipeline: parallel evidence gathering, then the
// pure decision rules. The returned breakdown retains every intermediate
// field set and sub-result.
func (s *Service) Evaluate(ctx context.Context, req EvaluateRequest) (*verification.Decision, error) {
	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.ObserveEvaluateLatency(time.Since(start))
		}
	}()

	ctx, span := s.tracer.Start(ctx, tracer.SpanEvaluate)
	evidence, err := s.gatherEvidence(ctx, req)
	if err != nil {
		span.End(err)
		return nil, s.mapEvidenceError(ctx, err)
	}

	result := decide(*evidence, req.OnboardingName)
	result.VerificationID = domain.NewVerificationID().String()
	span.SetAttributes(
		tracer.Bool(tracer.AttrApproved, result.Approved),
		tracer.String(tracer.AttrFaceModel, result.Checks.FaceMatch.Model),
	)
	span.End(nil)

	s.emitAudit(ctx, evidence, result)
	if s.metrics != nil {
		s.metrics.IncrementOutcome(outcomeLabel(result.Approved))
	}

	return &result, nil
}

func (s *Service) mapEvidenceError(ctx context.Context, err error) error {
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "evidence gathering failed", "error", err)
	}

	provErr, ok := providers.AsProviderError(err)
	if !ok {
		return dErrors.Wrap(err, dErrors.CodeInternal, "evidence gathering failed")
	}

	if s.metrics != nil {
		s.metrics.IncrementProviderFailure(provErr.ProviderID, string(provErr.Category))
	}

	switch provErr.Category {
	case providers.ErrorBadData:
		return dErrors.Wrap(err, dErrors.CodeInvalidInput, "document image is unreadable")
	case providers.ErrorTimeout:
		return dErrors.Wrap(err, dErrors.CodeTimeout, "evidence gathering timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeUpstreamUnavailable, "evidence gathering failed")
	}
}

func (s *Service) emitAudit(ctx context.Context, evidence *gatheredEvidence, result verification.Decision) {
	subject := "unknown"
	if evidence.aadhaar.AadhaarNumber != nil {
		subject = privacy.MaskAadhaar(*evidence.aadhaar.AadhaarNumber)
	}

	event := audit.Event{
		Timestamp: time.Now(),
		Subject:   subject,
		Action:    string(audit.EventDecisionMade),
		Decision:  outcomeLabel(result.Approved),
		Reason:    rejectionReason(result),
		Device:    requestcontext.DeviceName(ctx),
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit decision audit event", "error", err)
	}
}

func outcomeLabel(approved bool) string {
	if approved {
		return "approved"
	}
	return "rejected"
}

// rejectionReason names the first failed gate in evaluation order, for the
// audit trail. The full breakdown lives on the decision itself.
func rejectionReason(result verification.Decision) string {
	switch {
	case result.Approved:
		return "all_checks_passed"
	case !result.Summary.AadhaarValid:
		return "aadhaar_invalid"
	case !result.Summary.PANValid:
		return "pan_invalid"
	case !result.Summary.NamesMatch:
		return "name_mismatch"
	default:
		return "face_mismatch"
	}
}
