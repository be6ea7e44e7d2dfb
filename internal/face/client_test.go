package face

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

type FaceClientTestSuite struct {
	suite.Suite
}

func TestFaceClientSuite(t *testing.T) {
	suite.Run(t, new(FaceClientTestSuite))
}

func (s *FaceClientTestSuite) TestConfidenceFromDistance() {
	s.Run("zero distance is near certainty", func() {
		s.Equal(99, confidenceFromDistance(0, 0.30))
	})

	s.Run("distance at threshold is half", func() {
		s.Equal(50, confidenceFromDistance(0.30, 0.30))
	})

	s.Run("distance past twice the threshold floors at zero", func() {
		s.Equal(0, confidenceFromDistance(0.90, 0.30))
	})

	s.Run("tiny threshold does not divide by zero", func() {
		s.GreaterOrEqual(confidenceFromDistance(0.5, 0), 0)
	})
}

func (s *FaceClientTestSuite) TestCompare() {
	s.Run("first model verdict wins", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req compareRequest
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
			s.Equal("Facenet512", req.Model)

			json.NewEncoder(w).Encode(compareResponse{
				Verified:  true,
				Distance:  0.12,
				Threshold: 0.30,
			})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)

		match, err := client.Compare(context.Background(), "c2VsZmll", "ZG9j")
		s.Require().NoError(err)
		s.True(match.Verified)
		s.Equal("Facenet512", match.Model)
		s.Equal(0.12, match.Distance)
		s.Equal(80, match.Confidence)
	})

	s.Run("falls back to second model when first fails", func() {
		var models []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req compareRequest
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
			models = append(models, req.Model)

			if req.Model == "Facenet512" {
				w.WriteHeader(http.StatusUnprocessableEntity)
				json.NewEncoder(w).Encode(compareResponse{Error: "no face detected"})
				return
			}
			json.NewEncoder(w).Encode(compareResponse{
				Verified:  true,
				Distance:  0.20,
				Threshold: 0.40,
			})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)

		match, err := client.Compare(context.Background(), "c2VsZmll", "ZG9j")
		s.Require().NoError(err)
		s.True(match.Verified)
		s.Equal("VGG-Face", match.Model)
		s.Equal([]string{"Facenet512", "VGG-Face"}, models)
	})

	s.Run("surfaces last failure when all models fail", func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			json.NewEncoder(w).Encode(compareResponse{Error: "no face detected"})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)

		_, err := client.Compare(context.Background(), "c2VsZmll", "ZG9j")
		s.Require().Error(err)

		provErr, ok := providers.AsProviderError(err)
		s.Require().True(ok)
		s.Equal(providers.ErrorBadData, provErr.Category)
		s.Contains(provErr.Message, "no face detected")
	})

	s.Run("tripped breaker skips a failing model", func() {
		var models []string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req compareRequest
			s.Require().NoError(json.NewDecoder(r.Body).Decode(&req))
			models = append(models, req.Model)

			if req.Model == "Facenet512" {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			json.NewEncoder(w).Encode(compareResponse{Verified: true, Distance: 0.1, Threshold: 0.4})
		}))
		defer server.Close()

		client := NewHTTPClient(server.URL, 5*time.Second)

		// Three failures trip the primary model's breaker.
		for i := 0; i < 3; i++ {
			_, err := client.Compare(context.Background(), "a", "b")
			s.Require().NoError(err)
		}

		models = nil
		_, err := client.Compare(context.Background(), "a", "b")
		s.Require().NoError(err)
		s.Equal([]string{"VGG-Face"}, models)
	})
}
