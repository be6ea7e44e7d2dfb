package config

import (
	"os"
	"time"
)

// Server captures process-level configuration. Collaborator endpoints are
// grouped per service; a collaborator with an empty base URL or credential is
// treated as not configured, never as an error at startup.
type Server struct {
	Addr string

	// APIKeyHash is the bcrypt hash clients' X-API-Key is verified against.
	// Empty disables authentication (local development only).
	APIKeyHash string

	// TokenSigningKey signs the continuation tokens handed out mid way
	// through the two-step Aadhaar OTP flow.
	TokenSigningKey string

	OCR      OCR
	Face     Face
	Registry Registry
}

// OCR configures the external text-recognition service.
type OCR struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Face configures the external face-similarity service.
type Face struct {
	BaseURL string
	Timeout time.Duration
}

// Registry configures the optional government verification provider.
// An empty Token means the provider is not configured; the pipeline then
// reports not_configured without attempting network I/O.
type Registry struct {
	BaseURL string
	Token   string
	Timeout time.Duration
}

// Defaults for external call timeouts. Every collaborator call is bounded;
// a timeout is a recoverable failure of that one signal, not of the process.
var (
	OCRTimeout      = 20 * time.Second
	FaceTimeout     = 20 * time.Second
	RegistryTimeout = 10 * time.Second
)

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("VERITAS_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	return Server{
		Addr:            addr,
		APIKeyHash:      os.Getenv("VERITAS_API_KEY_HASH"),
		TokenSigningKey: signingKeyFromEnv(),
		OCR: OCR{
			BaseURL: os.Getenv("OCR_BASE_URL"),
			APIKey:  os.Getenv("OCR_API_KEY"),
			Timeout: durationFromEnv("OCR_TIMEOUT", OCRTimeout),
		},
		Face: Face{
			BaseURL: os.Getenv("FACE_BASE_URL"),
			Timeout: durationFromEnv("FACE_TIMEOUT", FaceTimeout),
		},
		Registry: Registry{
			BaseURL: os.Getenv("REGISTRY_BASE_URL"),
			Token:   os.Getenv("REGISTRY_TOKEN"),
			Timeout: durationFromEnv("REGISTRY_TIMEOUT", RegistryTimeout),
		},
	}
}

func signingKeyFromEnv() string {
	key := os.Getenv("TOKEN_SIGNING_KEY")
	if key == "" {
		// Use a default for development - should be overridden in production
		key = "dev-secret-key-change-in-production"
	}
	return key
}

func durationFromEnv(name string, fallback time.Duration) time.Duration {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
