package httptransport

//go:generate mockgen -source=handlers.go -destination=mocks/handler_mocks.go -package=mocks DocumentService,FaceService,DecisionService

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"veritas/contracts/verification"
	"veritas/internal/decision"
	"veritas/internal/document"
	"veritas/internal/providers"
	"veritas/internal/transport/http/mocks"
	dErrors "veritas/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	router        http.Handler
	ctrl          *gomock.Controller
	mockDocuments *mocks.MockDocumentService
	mockFaces     *mocks.MockFaceService
	mockDecisions *mocks.MockDecisionService
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockDocuments = mocks.NewMockDocumentService(s.ctrl)
	s.mockFaces = mocks.NewMockFaceService(s.ctrl)
	s.mockDecisions = mocks.NewMockDecisionService(s.ctrl)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(s.mockDocuments, s.mockFaces, s.mockDecisions, logger)
	s.router = NewRouter(h, logger, RouterConfig{})
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) postJSON(path string, body any) *httptest.ResponseRecorder {
	raw, err := json.Marshal(body)
	s.Require().NoError(err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *HandlerSuite) TestVerifyDocument() {
	s.Run("returns the pipeline result", func() {
		name := "JOHN DOE"
		s.mockDocuments.EXPECT().
			Verify(gomock.Any(), document.VerifyRequest{ImageB64: "aW1n", GovernmentVerify: true}).
			Return(&document.VerifyResult{
				Fields: verification.DocumentFields{
					DocType: verification.DocTypePAN,
					Name:    &name,
				},
				FormatValid: true,
				Government:  verification.GovernmentVerification{Status: verification.GovernmentNotConfigured},
			}, nil)

		rec := s.postJSON("/kyc/verify-document", map[string]any{
			"image":             "aW1n",
			"government_verify": true,
		})

		s.Equal(http.StatusOK, rec.Code)

		var result document.VerifyResult
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
		s.True(result.FormatValid)
		s.Equal(verification.DocTypePAN, result.Fields.DocType)
		s.Equal(verification.GovernmentNotConfigured, result.Government.Status)
	})

	s.Run("missing image is rejected before the service", func() {
		rec := s.postJSON("/kyc/verify-document", map[string]any{})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("invalid JSON is a bad request", func() {
		req := httptest.NewRequest(http.MethodPost, "/kyc/verify-document",
			bytes.NewReader([]byte("not valid json")))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()

		s.router.ServeHTTP(rec, req)

		assert.Equal(s.T(), http.StatusBadRequest, rec.Code,
			"expected 400 for invalid JSON")
	})

	s.Run("unreadable image maps to 400", func() {
		s.mockDocuments.EXPECT().
			Verify(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeInvalidInput, "document image is unreadable"))

		rec := s.postJSON("/kyc/verify-document", map[string]any{"image": "aW1n"})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("ocr outage maps to 502", func() {
		s.mockDocuments.EXPECT().
			Verify(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeUpstreamUnavailable, "text recognition failed"))

		rec := s.postJSON("/kyc/verify-document", map[string]any{"image": "aW1n"})
		s.Equal(http.StatusBadGateway, rec.Code)
	})
}

func (s *HandlerSuite) TestAadhaarOTP() {
	s.Run("resolves the pending check", func() {
		s.mockDocuments.EXPECT().
			SubmitAadhaarOTP(gomock.Any(), "tok", "123456").
			Return(verification.GovernmentVerification{
				Status: verification.GovernmentVerified,
				Name:   "Ravi Kumar",
			}, nil)

		rec := s.postJSON("/kyc/verify-aadhaar-otp", map[string]any{
			"continuation_token": "tok",
			"otp":                "123456",
		})

		s.Equal(http.StatusOK, rec.Code)

		var outcome verification.GovernmentVerification
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &outcome))
		s.Equal(verification.GovernmentVerified, outcome.Status)
	})

	s.Run("rejects a too short otp", func() {
		rec := s.postJSON("/kyc/verify-aadhaar-otp", map[string]any{
			"continuation_token": "tok",
			"otp":                "12",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})
}

func (s *HandlerSuite) TestVerifyFace() {
	s.Run("returns the verdict", func() {
		s.mockFaces.EXPECT().
			Compare(gomock.Any(), "c2VsZmll", "ZG9j").
			Return(verification.FaceMatch{
				Verified:   true,
				Confidence: 91,
				Model:      "Facenet512",
			}, nil)

		rec := s.postJSON("/kyc/verify-face", map[string]any{
			"selfie":   "c2VsZmll",
			"document": "ZG9j",
		})

		s.Equal(http.StatusOK, rec.Code)

		var match verification.FaceMatch
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &match))
		s.True(match.Verified)
		s.Equal(91, match.Confidence)
	})

	s.Run("signal failure is reported in the body", func() {
		s.mockFaces.EXPECT().
			Compare(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(verification.FaceMatch{}, providers.NewProviderError(providers.ErrorBadData, "face-http", "no face detected", nil))

		rec := s.postJSON("/kyc/verify-face", map[string]any{
			"selfie":   "c2VsZmll",
			"document": "ZG9j",
		})

		s.Equal(http.StatusOK, rec.Code)

		var match verification.FaceMatch
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &match))
		s.False(match.Verified)
		s.Equal("no face detected", match.Error)
	})
}

func (s *HandlerSuite) TestFullVerify() {
	s.Run("returns the decision breakdown", func() {
		s.mockDecisions.EXPECT().
			Evaluate(gomock.Any(), decision.EvaluateRequest{
				AadhaarImageB64: "YQ==",
				PANImageB64:     "cA==",
				SelfieImageB64:  "cw==",
				OnboardingName:  "Ravi Kumar",
			}).
			Return(&verification.Decision{
				Approved: true,
				Summary: verification.Summary{
					AadhaarValid: true,
					PANValid:     true,
					NamesMatch:   true,
					FaceMatches:  true,
				},
			}, nil)

		rec := s.postJSON("/kyc/full-verify", map[string]any{
			"aadhaar_image":   "YQ==",
			"pan_image":       "cA==",
			"selfie_image":    "cw==",
			"onboarding_name": "Ravi Kumar",
		})

		s.Equal(http.StatusOK, rec.Code)

		var result verification.Decision
		s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &result))
		s.True(result.Approved)
		s.True(result.Summary.NamesMatch)
	})

	s.Run("missing selfie is rejected", func() {
		rec := s.postJSON("/kyc/full-verify", map[string]any{
			"aadhaar_image": "YQ==",
			"pan_image":     "cA==",
		})
		s.Equal(http.StatusBadRequest, rec.Code)
	})

	s.Run("evidence timeout maps to 504", func() {
		s.mockDecisions.EXPECT().
			Evaluate(gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeTimeout, "evidence gathering timed out"))

		rec := s.postJSON("/kyc/full-verify", map[string]any{
			"aadhaar_image": "YQ==",
			"pan_image":     "cA==",
			"selfie_image":  "cw==",
		})
		s.Equal(http.StatusGatewayTimeout, rec.Code)
	})
}

func (s *HandlerSuite) TestAPIKeyGate() {
	// Any non-empty hash enables the gate; the request carries no key.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := NewHandler(s.mockDocuments, s.mockFaces, s.mockDecisions, logger)

	router := NewRouter(h, logger, RouterConfig{
		APIKeyHash: "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy",
	})

	req := httptest.NewRequest(http.MethodPost, "/kyc/verify-face",
		bytes.NewReader([]byte(`{"selfie":"a","document":"b"}`)))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	s.Equal(http.StatusUnauthorized, rec.Code)
}
