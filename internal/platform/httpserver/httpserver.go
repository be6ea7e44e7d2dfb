// Package httpserver wraps http.Server construction so timeouts are set in
// exactly one place.
package httpserver

import (
	"net/http"
	"time"
)

// New returns an http.Server with sane production timeouts. Read/write limits
// are generous because document images arrive base64-encoded in JSON bodies.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
