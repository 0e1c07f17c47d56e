// Package memory provides in-memory service implementations. They are
// suitable for single-process deployments and tests; nothing survives a
// restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/webcite"
	"github.com/google/uuid"
)

var _ webcite.APIKeyService = (*APIKeyService)(nil)

// APIKeyService is an in-memory implementation of webcite.APIKeyService.
type APIKeyService struct {
	mu   sync.Mutex
	keys map[string]*webcite.APIKey

	// Now returns the current time; overridable in tests.
	Now func() time.Time
}

// NewAPIKeyService creates a new empty key registry.
func NewAPIKeyService() *APIKeyService {
	return &APIKeyService{
		keys: make(map[string]*webcite.APIKey),
		Now:  time.Now,
	}
}

// CreateKey issues a new active key for a client.
func (s *APIKeyService) CreateKey(ctx context.Context, clientID string) (*webcite.APIKey, error) {
	if clientID == "" {
		return nil, webcite.Errorf(webcite.EINVALID, "client ID required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := &webcite.APIKey{
		Key:       uuid.New().String(),
		ClientID:  clientID,
		CreatedAt: s.Now().UTC(),
		Active:    true,
	}
	s.keys[key.Key] = key

	return copyKey(key), nil
}

// ValidateKey returns the key if it exists, belongs to clientID, and is
// active.
func (s *APIKeyService) ValidateKey(ctx context.Context, key, clientID string) (*webcite.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.keys[key]
	if !ok || k.ClientID != clientID || !k.Active {
		return nil, webcite.Errorf(webcite.ENOTFOUND, "API key not found")
	}

	return copyKey(k), nil
}

// DeactivateKey marks a key inactive.
func (s *APIKeyService) DeactivateKey(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	k, ok := s.keys[key]
	if !ok {
		return webcite.Errorf(webcite.ENOTFOUND, "API key not found")
	}
	k.Active = false

	return nil
}

// ListKeys returns all keys ordered by creation time, optionally filtered
// by client ID.
func (s *APIKeyService) ListKeys(ctx context.Context, clientID string) ([]*webcite.APIKey, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := make([]*webcite.APIKey, 0, len(s.keys))
	for _, k := range s.keys {
		if clientID != "" && k.ClientID != clientID {
			continue
		}
		keys = append(keys, copyKey(k))
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].CreatedAt.Equal(keys[j].CreatedAt) {
			return keys[i].Key < keys[j].Key
		}
		return keys[i].CreatedAt.Before(keys[j].CreatedAt)
	})

	return keys, nil
}

// copyKey returns a copy so callers cannot mutate internal state.
func copyKey(k *webcite.APIKey) *webcite.APIKey {
	cp := *k
	return &cp
}
