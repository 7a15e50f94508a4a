package verify

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// ErrTokenInvalid means the token was never issued, already consumed,
// or has expired.
var ErrTokenInvalid = errors.New("activation token invalid or expired")

// TokenStore issues opaque single-use account activation tokens bound
// to a user id, each valid for a bounded lifetime.
type TokenStore interface {
	Issue(ctx context.Context, userID string, ttl time.Duration) (string, error)
	// Consume redeems a token exactly once and returns the user id it
	// was issued for.
	Consume(ctx context.Context, token string) (string, error)
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
