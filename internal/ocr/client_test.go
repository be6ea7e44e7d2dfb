package ocr

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"veritas/internal/providers"
)

type HTTPClientTestSuite struct {
	suite.Suite
}

func TestHTTPClientSuite(t *testing.T) {
	suite.Run(t, new(HTTPClientTestSuite))
}

func (s *HTTPClientTestSuite) TestRecognize() {
	s.Run("returns ordered lines on success", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s.Equal(http.MethodPost, r.Method)
			s.Equal("/v1/recognize", r.URL.Path)
			s.Equal("test-key", r.Header.Get("X-API-Key"))

			var req recognizeRequest
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
			s.Equal("aW1hZ2U=", req.Image)

			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(recognizeResponse{
				Lines: []string{"Government of India", "Ravi Kumar", "1234 5678 9012"},
			})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key", 5*time.Second)

		lines, err := client.Recognize(context.Background(), "aW1hZ2U=")
		s.Require().NoError(err)
		s.Equal([]string{"Government of India", "Ravi Kumar", "1234 5678 9012"}, lines)
	})

	s.Run("maps unauthorized to authentication error", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "bad-key", 5*time.Second)

		_, err := client.Recognize(context.Background(), "aW1hZ2U=")
		s.Require().Error(err)

		provErr, ok := providers.AsProviderError(err)
		s.Require().True(ok)
		s.Equal(providers.ErrorAuthentication, provErr.Category)
		s.False(provErr.Retryable)
	})

	s.Run("maps unprocessable image to bad data with provider message", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(map[string]string{"error": "bad_image", "message": "image too blurry"})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key", 5*time.Second)

		_, err := client.Recognize(context.Background(), "aW1hZ2U=")
		s.Require().Error(err)

		provErr, ok := providers.AsProviderError(err)
		s.Require().True(ok)
		s.Equal(providers.ErrorBadData, provErr.Category)
		s.Contains(provErr.Message, "image too blurry")
	})

	s.Run("retries outage and succeeds on second attempt", func() {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts == 1 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			json.NewEncoder(w).Encode(recognizeResponse{Lines: []string{"ok"}})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key", 5*time.Second,
			WithBackoff(providers.BackoffConfig{
				InitialDelay: time.Millisecond,
				MaxDelay:     5 * time.Millisecond,
				MaxRetries:   2,
				Multiplier:   2.0,
			}))

		lines, err := client.Recognize(context.Background(), "aW1hZ2U=")
		s.Require().NoError(err)
		s.Equal([]string{"ok"}, lines)
		s.Equal(2, attempts)
	})

	s.Run("does not retry bad data", func() {
		attempts := 0
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key", 5*time.Second,
			WithBackoff(providers.BackoffConfig{
				InitialDelay: time.Millisecond,
				MaxDelay:     5 * time.Millisecond,
				MaxRetries:   3,
				Multiplier:   2.0,
			}))

		_, err := client.Recognize(context.Background(), "aW1hZ2U=")
		s.Require().Error(err)
		s.Equal(1, attempts)
	})

	s.Run("maps malformed response body to contract mismatch", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, "test-key", 5*time.Second)

		_, err := client.Recognize(context.Background(), "aW1hZ2U=")
		s.Require().Error(err)

		provErr, ok := providers.AsProviderError(err)
		s.Require().True(ok)
		s.Equal(providers.ErrorContractMismatch, provErr.Category)
	})
}
