// Package ocr defines the port to the external text-recognition service.
// The gateway never interprets images itself; it consumes an ordered list of
// text lines and leaves vision entirely to the collaborator.
package ocr

import "context"

// Client is the text-recognition port. Recognize returns the document's text
// as an ordered line list; order is significant, downstream positional
// heuristics depend on it. A failure here is fatal for the affected
// document's extraction.
type Client interface {
	Recognize(ctx context.Context, imageB64 string) ([]string, error)
}
