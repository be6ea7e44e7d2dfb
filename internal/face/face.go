// Package face normalizes the external face-similarity collaborator into a
// single comparison verdict. The collaborator exposes several embedding
// models of differing cost and accuracy; this package tries them as an
// ordered fallback list until one produces a verdict or all fail.
package face

import (
	"context"
	"math"

	"veritas/contracts/verification"
)

// Comparer produces a face-similarity verdict between a selfie and the
// photograph printed on an identity document.
type Comparer interface {
	Compare(ctx context.Context, selfieB64, documentB64 string) (verification.FaceMatch, error)
}

// confidenceFromDistance converts a cosine distance into a similarity
// percentage. Distance 0 means identical embeddings; the verification
// threshold marks the decision boundary, so twice the threshold is treated as
// zero similarity. The result never claims 100.
func confidenceFromDistance(distance, threshold float64) int {
	span := threshold * 2
	if span < 0.001 {
		span = 0.001
	}
	pct := int(math.Round((1 - distance/span) * 100))
	if pct < 0 {
		pct = 0
	}
	if pct > 99 {
		pct = 99
	}
	return pct
}
