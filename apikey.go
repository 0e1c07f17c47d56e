package webcite

import (
	"context"
	"time"
)

// APIKey is a credential issued to a client of the surrounding service
// layer. The core itself performs no authorization; the key registry is the
// collaborator a serving layer validates callers against before invoking
// the core.
type APIKey struct {
	Key       string    `json:"key"`
	ClientID  string    `json:"clientId"`
	CreatedAt time.Time `json:"createdAt"`
	Active    bool      `json:"active"`
}

// APIKeyService manages API keys. Implementations are explicit, injectable
// stores constructed at process start; there is no implicit global registry.
type APIKeyService interface {
	// CreateKey issues a new active key for a client.
	CreateKey(ctx context.Context, clientID string) (*APIKey, error)

	// ValidateKey returns the key if it exists, belongs to clientID, and is
	// active. Returns ENOTFOUND otherwise.
	ValidateKey(ctx context.Context, key, clientID string) (*APIKey, error)

	// DeactivateKey marks a key inactive. Returns ENOTFOUND if the key does
	// not exist.
	DeactivateKey(ctx context.Context, key string) error

	// ListKeys returns all keys, optionally filtered by client ID.
	ListKeys(ctx context.Context, clientID string) ([]*APIKey, error)
}
