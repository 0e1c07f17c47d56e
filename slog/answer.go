package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webcite"
)

// Ensure LoggingAnswerService implements webcite.AnswerService.
var _ webcite.AnswerService = (*LoggingAnswerService)(nil)

// LoggingAnswerService wraps an AnswerService with logging.
type LoggingAnswerService struct {
	next   webcite.AnswerService
	logger *slog.Logger
}

// NewLoggingAnswerService creates a new LoggingAnswerService.
func NewLoggingAnswerService(next webcite.AnswerService, logger *slog.Logger) *LoggingAnswerService {
	return &LoggingAnswerService{next: next, logger: logger}
}

// Answer delegates to the wrapped service and logs the operation.
func (s *LoggingAnswerService) Answer(ctx context.Context, query string, history []webcite.Turn) (answer *webcite.Answer, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"history", len(history),
			"duration", time.Since(begin),
			"err", err,
		}
		if answer != nil {
			attrs = append(attrs, "sources", len(answer.Sources))
		}
		s.logger.Info("answer", attrs...)
	}(time.Now())
	return s.next.Answer(ctx, query, history)
}
