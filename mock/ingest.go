package mock

import (
	"context"

	"github.com/fwojciec/webcite"
)

var _ webcite.IngestService = (*IngestService)(nil)

// IngestService is a mock implementation of webcite.IngestService.
type IngestService struct {
	IngestFn func(ctx context.Context, url string, force bool) (*webcite.IngestResult, error)
}

func (s *IngestService) Ingest(ctx context.Context, url string, force bool) (*webcite.IngestResult, error) {
	return s.IngestFn(ctx, url, force)
}
