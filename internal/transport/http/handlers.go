// Package httptransport is the thin HTTP layer. Handlers decode, validate,
// and delegate to domain services; no business logic lives here.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"veritas/contracts/verification"
	"veritas/internal/decision"
	"veritas/internal/document"
	"veritas/internal/providers"
	"veritas/pkg/platform/httputil"
	"veritas/pkg/validation"
)

// DocumentService is the single-document pipeline consumed by the handlers.
type DocumentService interface {
	Verify(ctx context.Context, req document.VerifyRequest) (*document.VerifyResult, error)
	SubmitAadhaarOTP(ctx context.Context, continuationToken, otp string) (verification.GovernmentVerification, error)
}

// FaceService compares a selfie against a document photograph.
type FaceService interface {
	Compare(ctx context.Context, selfieB64, documentB64 string) (verification.FaceMatch, error)
}

// DecisionService evaluates a full KYC submission.
type DecisionService interface {
	Evaluate(ctx context.Context, req decision.EvaluateRequest) (*verification.Decision, error)
}

// Handler holds the domain services behind the verification endpoints.
type Handler struct {
	documents DocumentService
	faces     FaceService
	decisions DecisionService
	logger    *slog.Logger
}

// NewHandler creates the HTTP handler. Panics on nil dependencies.
func NewHandler(documents DocumentService, faces FaceService, decisions DecisionService, logger *slog.Logger) *Handler {
	if documents == nil {
		panic("httptransport.NewHandler: document service is required")
	}
	if faces == nil {
		panic("httptransport.NewHandler: face service is required")
	}
	if decisions == nil {
		panic("httptransport.NewHandler: decision service is required")
	}
	if logger == nil {
		panic("httptransport.NewHandler: logger is required")
	}
	return &Handler{
		documents: documents,
		faces:     faces,
		decisions: decisions,
		logger:    logger,
	}
}

type verifyDocumentRequest struct {
	Image            string `json:"image" validate:"required,notblank"`
	GovernmentVerify bool   `json:"government_verify"`
}

func (r *verifyDocumentRequest) Validate() error { return validation.Validate(r) }

type aadhaarOTPRequest struct {
	ContinuationToken string `json:"continuation_token" validate:"required,notblank"`
	OTP               string `json:"otp" validate:"required,min=4,max=8"`
}

func (r *aadhaarOTPRequest) Validate() error { return validation.Validate(r) }

type verifyFaceRequest struct {
	Selfie   string `json:"selfie" validate:"required,notblank"`
	Document string `json:"document" validate:"required,notblank"`
}

func (r *verifyFaceRequest) Validate() error { return validation.Validate(r) }

type fullVerifyRequest struct {
	AadhaarImage   string `json:"aadhaar_image" validate:"required,notblank"`
	PANImage       string `json:"pan_image" validate:"required,notblank"`
	SelfieImage    string `json:"selfie_image" validate:"required,notblank"`
	OnboardingName string `json:"onboarding_name"`
	OnboardingDOB  string `json:"onboarding_dob"`
}

func (r *fullVerifyRequest) Validate() error { return validation.Validate(r) }

func (h *Handler) handleVerifyDocument(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[verifyDocumentRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.documents.Verify(r.Context(), document.VerifyRequest{
		ImageB64:         req.Image,
		GovernmentVerify: req.GovernmentVerify,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleAadhaarOTP(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[aadhaarOTPRequest](w, r, h.logger)
	if !ok {
		return
	}

	outcome, err := h.documents.SubmitAadhaarOTP(r.Context(), req.ContinuationToken, req.OTP)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, outcome)
}

// handleVerifyFace mirrors the face collaborator's contract: a signal-level
// failure is reported inside the verdict body, not as an HTTP error, so
// clients see the same shape either way.
func (h *Handler) handleVerifyFace(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[verifyFaceRequest](w, r, h.logger)
	if !ok {
		return
	}

	match, err := h.faces.Compare(r.Context(), req.Selfie, req.Document)
	if err != nil {
		match = verification.FaceMatch{Error: faceErrorMessage(err)}
	}

	httputil.WriteJSON(w, http.StatusOK, match)
}

func (h *Handler) handleFullVerify(w http.ResponseWriter, r *http.Request) {
	req, ok := httputil.DecodeAndPrepare[fullVerifyRequest](w, r, h.logger)
	if !ok {
		return
	}

	result, err := h.decisions.Evaluate(r.Context(), decision.EvaluateRequest{
		AadhaarImageB64: req.AadhaarImage,
		PANImageB64:     req.PANImage,
		SelfieImageB64:  req.SelfieImage,
		OnboardingName:  req.OnboardingName,
		OnboardingDOB:   req.OnboardingDOB,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, result)
}

func faceErrorMessage(err error) string {
	if provErr, ok := providers.AsProviderError(err); ok {
		return provErr.Message
	}
	return err.Error()
}
