package mock

import (
	"context"

	"github.com/fwojciec/webcite"
)

var _ webcite.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is a mock implementation of webcite.ChunkStore.
type ChunkStore struct {
	CreateChunksFn    func(ctx context.Context, chunks []*webcite.Chunk) error
	ReplaceChunksFn   func(ctx context.Context, address string, chunks []*webcite.Chunk) (int, error)
	ExistsByAddressFn func(ctx context.Context, address string) (bool, error)
	DeleteByAddressFn func(ctx context.Context, address string) (int, error)
	SearchFn          func(ctx context.Context, embedding []float32, opts webcite.SearchOptions) ([]webcite.SearchResult, error)
	StatsFn           func(ctx context.Context) (*webcite.CollectionStats, error)
}

func (s *ChunkStore) CreateChunks(ctx context.Context, chunks []*webcite.Chunk) error {
	return s.CreateChunksFn(ctx, chunks)
}

func (s *ChunkStore) ReplaceChunks(ctx context.Context, address string, chunks []*webcite.Chunk) (int, error) {
	return s.ReplaceChunksFn(ctx, address, chunks)
}

func (s *ChunkStore) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	return s.ExistsByAddressFn(ctx, address)
}

func (s *ChunkStore) DeleteByAddress(ctx context.Context, address string) (int, error) {
	return s.DeleteByAddressFn(ctx, address)
}

func (s *ChunkStore) Search(ctx context.Context, embedding []float32, opts webcite.SearchOptions) ([]webcite.SearchResult, error) {
	return s.SearchFn(ctx, embedding, opts)
}

func (s *ChunkStore) Stats(ctx context.Context) (*webcite.CollectionStats, error) {
	return s.StatsFn(ctx)
}
