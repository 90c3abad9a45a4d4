package security

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// ErrNoSession is returned by Get when no session exists for the token.
var ErrNoSession = errors.New("session not found")

// SessionStore is the explicit server-side session object: populated at
// login, read by the auth gate, cleared at logout. Backed by Redis; every
// method degrades to a no-op when Redis is unavailable so authentication
// falls back to pure JWT validation.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore wraps a Redis client. A nil client is allowed.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Set records a live session for the token.
func (s *SessionStore) Set(ctx context.Context, token, userID string, ttl time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	return s.client.Set(ctx, sessionKey(token), userID, ttl).Err()
}

// Get returns the user ID the token's session belongs to.
func (s *SessionStore) Get(ctx context.Context, token string) (string, error) {
	if s == nil || s.client == nil {
		return "", ErrNoSession
	}
	userID, err := s.client.Get(ctx, sessionKey(token)).Result()
	if err == redis.Nil {
		return "", ErrNoSession
	}
	return userID, err
}

// Clear removes the session and marks the token revoked for the remainder
// of its JWT lifetime, so a logged-out token cannot be replayed.
func (s *SessionStore) Clear(ctx context.Context, token string, remaining time.Duration) error {
	if s == nil || s.client == nil {
		return nil
	}
	if err := s.client.Del(ctx, sessionKey(token)).Err(); err != nil {
		return err
	}
	if remaining <= 0 {
		return nil
	}
	return s.client.Set(ctx, revokedKey(token), "1", remaining).Err()
}

// IsRevoked reports whether the token was cleared before its expiry.
func (s *SessionStore) IsRevoked(ctx context.Context, token string) bool {
	if s == nil || s.client == nil {
		return false
	}
	n, err := s.client.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		// Fail open: Redis trouble must not lock every caller out
		return false
	}
	return n > 0
}

// Tokens are hashed before use as keys so the raw credential never lands
// in Redis.
func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func sessionKey(token string) string {
	return "session:" + hashToken(token)
}

func revokedKey(token string) string {
	return "revoked:" + hashToken(token)
}
