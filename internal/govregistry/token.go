package govregistry

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// The registry's OTP step references an upstream session id. Rather than hand
// that id to clients raw, it is wrapped in a short-lived signed token so a
// tampered or expired continuation cannot be replayed against the registry.
const continuationTokenTTL = 10 * time.Minute

type continuationClaims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

// issueContinuationToken signs the upstream session id into an opaque token
// handed back to the caller while the check is pending.
func issueContinuationToken(signingKey []byte, sessionID string) (string, error) {
	now := time.Now()
	claims := continuationClaims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "veritas",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(continuationTokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign continuation token: %w", err)
	}
	return signed, nil
}

// parseContinuationToken validates the token and recovers the upstream
// session id.
func parseContinuationToken(signingKey []byte, tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &continuationClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil {
		return "", fmt.Errorf("invalid continuation token: %w", err)
	}

	claims, ok := token.Claims.(*continuationClaims)
	if !ok || claims.SessionID == "" {
		return "", fmt.Errorf("continuation token missing session id")
	}
	return claims.SessionID, nil
}
