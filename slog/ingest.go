// Package slog provides logging decorators for webcite services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webcite"
)

// Ensure LoggingIngestService implements webcite.IngestService.
var _ webcite.IngestService = (*LoggingIngestService)(nil)

// LoggingIngestService wraps an IngestService with logging.
type LoggingIngestService struct {
	next   webcite.IngestService
	logger *slog.Logger
}

// NewLoggingIngestService creates a new LoggingIngestService.
func NewLoggingIngestService(next webcite.IngestService, logger *slog.Logger) *LoggingIngestService {
	return &LoggingIngestService{next: next, logger: logger}
}

// Ingest delegates to the wrapped service and logs the operation.
func (s *LoggingIngestService) Ingest(ctx context.Context, url string, force bool) (result *webcite.IngestResult, err error) {
	defer func(begin time.Time) {
		attrs := []any{
			"url", url,
			"force", force,
			"duration", time.Since(begin),
			"err", err,
		}
		if result != nil {
			attrs = append(attrs, "status", string(result.Status), "chunks", result.Chunks)
		}
		s.logger.Info("ingest", attrs...)
	}(time.Now())
	return s.next.Ingest(ctx, url, force)
}
