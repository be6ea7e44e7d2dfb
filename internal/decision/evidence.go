package decision

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"veritas/contracts/verification"
	"veritas/internal/extract"
	"veritas/internal/tracer"
)

// evidenceTimeout bounds the whole parallel gathering phase. OCR on two
// documents plus a face comparison dominate request latency.
const evidenceTimeout = 30 * time.Second

// evidenceFetchResult holds results from the parallel fetches. Each
// goroutine writes only to its own fields, avoiding data races.
type evidenceFetchResult struct {
	aadhaar        verification.DocumentFields
	aadhaarLatency time.Duration
	pan            verification.DocumentFields
	panLatency     time.Duration
	face           verification.FaceMatch
	faceLatency    time.Duration
}

// gatherEvidence runs both document extractions and the face comparison
// concurrently; they have no data dependency on each other. The rules phase
// strictly requires all three, so the first fatal failure cancels the rest.
func (s *Service) gatherEvidence(ctx context.Context, req EvaluateRequest) (*gatheredEvidence, error) {
	ctx, cancel := context.WithTimeout(ctx, evidenceTimeout)
	defer cancel()

	ctx, span := s.tracer.Start(ctx, tracer.SpanEvidenceGather)
	g, ctx := errgroup.WithContext(ctx)

	var result evidenceFetchResult
	s.launchDocumentFetch(ctx, g, req.AadhaarImageB64, "aadhaar", &result.aadhaar, &result.aadhaarLatency)
	s.launchDocumentFetch(ctx, g, req.PANImageB64, "pan", &result.pan, &result.panLatency)
	s.launchFaceFetch(ctx, g, req, &result)

	if err := g.Wait(); err != nil {
		span.End(err)
		return nil, err
	}
	span.SetAttributes(
		tracer.String(tracer.AttrDocType, string(result.aadhaar.DocType)),
		tracer.Duration("face_latency", result.faceLatency),
	)
	span.End(nil)

	return &gatheredEvidence{
		aadhaar: result.aadhaar,
		pan:     result.pan,
		face:    result.face,
	}, nil
}

// launchDocumentFetch runs OCR plus extraction for one document slot. An OCR
// failure is fatal for the whole evaluation; a document we could not read at
// all cannot be defaulted.
func (s *Service) launchDocumentFetch(
	ctx context.Context,
	g *errgroup.Group,
	imageB64, source string,
	fields *verification.DocumentFields,
	latency *time.Duration,
) {
	g.Go(func() error {
		start := time.Now()
		lines, err := s.ocr.Recognize(ctx, imageB64)
		*latency = time.Since(start)

		if s.metrics != nil {
			s.metrics.ObserveEvidenceLatency(source, *latency)
		}
		if err != nil {
			return err
		}

		*fields = extract.Extract(lines)
		if s.metrics != nil {
			s.metrics.IncrementExtraction(string(fields.DocType))
		}
		return nil
	})
}

// launchFaceFetch compares the selfie against the Aadhaar card photo. A
// failing face signal is not fatal: the error is folded into the outcome and
// the rules apply their leniency policy.
func (s *Service) launchFaceFetch(
	ctx context.Context,
	g *errgroup.Group,
	req EvaluateRequest,
	result *evidenceFetchResult,
) {
	g.Go(func() error {
		start := time.Now()
		match, err := s.face.Compare(ctx, req.SelfieImageB64, req.AadhaarImageB64)
		result.faceLatency = time.Since(start)

		if s.metrics != nil {
			s.metrics.ObserveEvidenceLatency("face", result.faceLatency)
		}

		if err != nil {
			if s.logger != nil {
				s.logger.WarnContext(ctx, "face comparison failed, applying leniency policy", "error", err)
			}
			result.face = verification.FaceMatch{Error: err.Error()}
			return nil
		}
		result.face = match
		return nil
	})
}
