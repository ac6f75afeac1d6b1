// Package session issues and resolves opaque session tokens bound to a user
// identity. Session state is ephemeral: it lives in memory or in Redis and is
// not covered by the relational store's durability guarantees.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// CookieName is the cookie that carries the session token.
const CookieName = "campusbay_session"

// Store persists token -> user bindings with a TTL.
type Store interface {
	Set(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error
	// Get returns the bound user and true, or false when the token is
	// absent or expired.
	Get(ctx context.Context, token string) (uuid.UUID, bool, error)
	Delete(ctx context.Context, token string) error
}

type Manager struct {
	store Store
	ttl   time.Duration
}

func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{store: store, ttl: ttl}
}

// TTL reports the configured session lifetime, used for cookie expiry.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create allocates a new session for the user and returns its opaque token.
func (m *Manager) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	if err := m.store.Set(ctx, token, userID, m.ttl); err != nil {
		return "", fmt.Errorf("storing session: %w", err)
	}
	return token, nil
}

// Resolve returns the user bound to the token. A missing or expired session is
// a normal miss, not an error; store failures are logged and treated as a miss.
func (m *Manager) Resolve(ctx context.Context, token string) (uuid.UUID, bool) {
	if token == "" {
		return uuid.Nil, false
	}
	userID, ok, err := m.store.Get(ctx, token)
	if err != nil {
		log.Printf("ERROR [session.Resolve] store lookup failed: %v", err)
		return uuid.Nil, false
	}
	return userID, ok
}

// Destroy invalidates the session immediately. Destroying an absent session
// is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return m.store.Delete(ctx, token)
}

func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
