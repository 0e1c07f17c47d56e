package mock

import (
	"context"

	"github.com/fwojciec/webcite"
)

var _ webcite.APIKeyService = (*APIKeyService)(nil)

// APIKeyService is a mock implementation of webcite.APIKeyService.
type APIKeyService struct {
	CreateKeyFn     func(ctx context.Context, clientID string) (*webcite.APIKey, error)
	ValidateKeyFn   func(ctx context.Context, key, clientID string) (*webcite.APIKey, error)
	DeactivateKeyFn func(ctx context.Context, key string) error
	ListKeysFn      func(ctx context.Context, clientID string) ([]*webcite.APIKey, error)
}

func (s *APIKeyService) CreateKey(ctx context.Context, clientID string) (*webcite.APIKey, error) {
	return s.CreateKeyFn(ctx, clientID)
}

func (s *APIKeyService) ValidateKey(ctx context.Context, key, clientID string) (*webcite.APIKey, error) {
	return s.ValidateKeyFn(ctx, key, clientID)
}

func (s *APIKeyService) DeactivateKey(ctx context.Context, key string) error {
	return s.DeactivateKeyFn(ctx, key)
}

func (s *APIKeyService) ListKeys(ctx context.Context, clientID string) ([]*webcite.APIKey, error) {
	return s.ListKeysFn(ctx, clientID)
}
