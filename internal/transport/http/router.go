package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"veritas/internal/platform/health"
	"veritas/internal/platform/middleware"
)

// requestTimeout bounds one verification request end to end. It must exceed
// the evidence-gathering timeout so the caller sees a structured error
// instead of a cut connection.
const requestTimeout = 60 * time.Second

// RouterConfig carries the transport-level collaborators the router needs
// beyond the handler itself.
type RouterConfig struct {
	APIKeyHash string
	Observer   middleware.EndpointObserver
	Health     *health.Handler
}

// NewRouter wires all public endpoints with the middleware stack. Health and
// metrics endpoints stay outside the API key gate so probes and scrapers need
// no credential.
func NewRouter(h *Handler, logger *slog.Logger, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID)
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(cfg.Observer))

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.APIKeyAuth(cfg.APIKeyHash, logger))

		r.Post("/kyc/verify-document", h.handleVerifyDocument)
		r.Post("/kyc/verify-aadhaar-otp", h.handleAadhaarOTP)
		r.Post("/kyc/verify-face", h.handleVerifyFace)
		r.Post("/kyc/full-verify", h.handleFullVerify)
	})

	return r
}
