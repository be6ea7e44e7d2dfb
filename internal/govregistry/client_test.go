package govregistry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veritas/contracts/verification"
)

var testSigningKey = []byte("test-signing-key")

type RegistryClientTestSuite struct {
	suite.Suite
}

func TestRegistryClientSuite(t *testing.T) {
	suite.Run(t, new(RegistryClientTestSuite))
}

func (s *RegistryClientTestSuite) newClient(serverURL string) *HTTPClient {
	return NewHTTPClient(serverURL, "registry-token", testSigningKey, 5*time.Second)
}

func (s *RegistryClientTestSuite) TestAadhaarTwoStep() {
	s.Run("full round trip resolves to verified", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Equal("Bearer registry-token", r.Header.Get("Authorization"))

			switch r.URL.Path {
			case "/v1/aadhaar/generate-otp":
				var req generateOTPRequest
				s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
				s.Equal("1234 5678 9012", req.IDNumber)
				json.NewEncoder(w).Encode(generateOTPResponse{SessionID: "sess-42"})
			case "/v1/aadhaar/submit-otp":
				var req submitOTPRequest
				s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
				s.Equal("sess-42", req.SessionID)
				s.Equal("123456", req.OTP)
				json.NewEncoder(w).Encode(registryRecordResponse{
					Verified: true,
					Name:     "Ravi Kumar",
					DOB:      "15/08/1985",
					Address:  "42 Gandhi Nagar, Jaipur",
				})
			default:
				s.Failf("unexpected path", "%s", r.URL.Path)
			}
		}))
		defer server.Close()

		client := s.newClient(server.URL)

		pending, err := client.VerifyAadhaar(context.Background(), "1234 5678 9012")
		s.Require().NoError(err)
		s.Equal(verification.GovernmentPending, pending.Status)
		s.NotEmpty(pending.ContinuationToken)

		outcome, err := client.SubmitOTP(context.Background(), pending.ContinuationToken, "123456")
		s.Require().NoError(err)
		s.Equal(verification.GovernmentVerified, outcome.Status)
		s.Equal("Ravi Kumar", outcome.Name)
		s.Equal("15/08/1985", outcome.DOB)
	})

	s.Run("wrong otp resolves to failed with registry reason", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/v1/aadhaar/generate-otp":
				json.NewEncoder(w).Encode(generateOTPResponse{SessionID: "sess-43"})
			case "/v1/aadhaar/submit-otp":
				json.NewEncoder(w).Encode(registryRecordResponse{Verified: false, Message: "invalid otp"})
			}
		}))
		defer server.Close()

		client := s.newClient(server.URL)

		pending, err := client.VerifyAadhaar(context.Background(), "1234 5678 9012")
		s.Require().NoError(err)

		outcome, err := client.SubmitOTP(context.Background(), pending.ContinuationToken, "000000")
		s.Require().NoError(err)
		s.Equal(verification.GovernmentFailed, outcome.Status)
		s.Equal("invalid otp", outcome.Reason)
	})

	s.Run("tampered continuation token fails without network", func() {
		client := NewHTTPClient("http://registry.invalid", "registry-token", testSigningKey, time.Second)

		outcome, err := client.SubmitOTP(context.Background(), "not-a-token", "123456")
		s.Require().NoError(err)
		s.Equal(verification.GovernmentFailed, outcome.Status)
		s.Contains(outcome.Reason, "invalid continuation token")
	})

	s.Run("registry outage folds into failed outcome", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := s.newClient(server.URL)

		outcome, err := client.VerifyAadhaar(context.Background(), "1234 5678 9012")
		s.Require().NoError(err)
		s.Equal(verification.GovernmentFailed, outcome.Status)
		s.NotEmpty(outcome.Reason)
	})
}

func (s *RegistryClientTestSuite) TestVerifyPAN() {
	s.Run("verified record carries authoritative fields", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Equal("/v1/pan/verify", r.URL.Path)
			json.NewEncoder(w).Encode(registryRecordResponse{Verified: true, Name: "JOHN DOE"})
		}))
		defer server.Close()

		client := s.newClient(server.URL)

		outcome, err := client.VerifyPAN(context.Background(), "ABCDE1234F")
		s.Require().NoError(err)
		s.Equal(verification.GovernmentVerified, outcome.Status)
		s.Equal("JOHN DOE", outcome.Name)
	})

	s.Run("rejection uses registry message as opaque reason", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "pan not found"})
		}))
		defer server.Close()

		client := s.newClient(server.URL)

		outcome, err := client.VerifyPAN(context.Background(), "ABCDE1234F")
		s.Require().NoError(err)
		s.Equal(verification.GovernmentFailed, outcome.Status)
		s.Equal("pan not found", outcome.Reason)
	})
}

func (s *RegistryClientTestSuite) TestDisabled() {
	var v Verifier = Disabled{}

	outcome, err := v.VerifyAadhaar(context.Background(), "1234 5678 9012")
	s.Require().NoError(err)
	s.Equal(verification.GovernmentNotConfigured, outcome.Status)

	outcome, err = v.VerifyPAN(context.Background(), "ABCDE1234F")
	s.Require().NoError(err)
	s.Equal(verification.GovernmentNotConfigured, outcome.Status)

	outcome, err = v.SubmitOTP(context.Background(), "token", "123456")
	s.Require().NoError(err)
	s.Equal(verification.GovernmentNotConfigured, outcome.Status)
}

func (s *RegistryClientTestSuite) TestContinuationToken() {
	s.Run("round trip recovers session id", func() {
		token, err := issueContinuationToken(testSigningKey, "sess-99")
		s.Require().NoError(err)

		sessionID, err := parseContinuationToken(testSigningKey, token)
		s.Require().NoError(err)
		s.Equal("sess-99", sessionID)
	})

	s.Run("wrong key is rejected", func() {
		token, err := issueContinuationToken(testSigningKey, "sess-99")
		s.Require().NoError(err)

		_, err = parseContinuationToken([]byte("other-key"), token)
		s.Error(err)
	})
}
