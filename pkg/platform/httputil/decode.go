package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	dErrors "veritas/pkg/domain-errors"
	"veritas/pkg/requestcontext"
)

// DecodeJSON decodes a JSON request body into the target type.
// Returns the decoded value and true on success.
// On failure, writes an error response and returns nil, false.
func DecodeJSON[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.WarnContext(r.Context(), "failed to decode request body",
			"error", err,
			"request_id", requestcontext.RequestID(r.Context()),
		)
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	return &req, true
}

// Validatable is implemented by request types that support validation.
type Validatable interface {
	Validate() error
}

// Normalizable is implemented by request types that support normalization.
type Normalizable interface {
	Normalize()
}

// DecodeAndPrepare combines JSON decoding with request preparation.
// It decodes the JSON body, then calls Normalize() and Validate() if the
// target type implements those interfaces.
func DecodeAndPrepare[T any](w http.ResponseWriter, r *http.Request, logger *slog.Logger) (*T, bool) {
	req, ok := DecodeJSON[T](w, r, logger)
	if !ok {
		return nil, false
	}

	if n, ok := any(req).(Normalizable); ok {
		n.Normalize()
	}
	if v, ok := any(req).(Validatable); ok {
		if err := v.Validate(); err != nil {
			logger.WarnContext(r.Context(), "invalid request",
				"error", err,
				"request_id", requestcontext.RequestID(r.Context()),
			)
			var domainErr *dErrors.Error
			if errors.As(err, &domainErr) {
				WriteError(w, err)
			} else {
				WriteError(w, dErrors.New(dErrors.CodeValidation, err.Error()))
			}
			return nil, false
		}
	}

	return req, true
}
