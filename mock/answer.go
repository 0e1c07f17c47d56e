package mock

import (
	"context"

	"github.com/fwojciec/webcite"
)

var _ webcite.AnswerService = (*AnswerService)(nil)

// AnswerService is a mock implementation of webcite.AnswerService.
type AnswerService struct {
	AnswerFn func(ctx context.Context, query string, history []webcite.Turn) (*webcite.Answer, error)
}

func (s *AnswerService) Answer(ctx context.Context, query string, history []webcite.Turn) (*webcite.Answer, error) {
	return s.AnswerFn(ctx, query, history)
}
