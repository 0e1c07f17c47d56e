package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/webcite"
	"github.com/fwojciec/webcite/mock"
	webslog "github.com/fwojciec/webcite/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingIngestService_Ingest(t *testing.T) {
	t.Parallel()

	t.Run("logs ingest with status and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.IngestService{
			IngestFn: func(ctx context.Context, url string, force bool) (*webcite.IngestResult, error) {
				return &webcite.IngestResult{
					Status:    webcite.IngestIndexed,
					SourceURL: url,
					Chunks:    3,
				}, nil
			},
		}

		svc := webslog.NewLoggingIngestService(inner, logger)
		result, err := svc.Ingest(context.Background(), "https://example.com/page", false)

		require.NoError(t, err)
		assert.Equal(t, webcite.IngestIndexed, result.Status)
		output := buf.String()
		assert.Contains(t, output, "ingest")
		assert.Contains(t, output, "url=https://example.com/page")
		assert.Contains(t, output, "status=indexed")
		assert.Contains(t, output, "chunks=3")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.IngestService{
			IngestFn: func(ctx context.Context, url string, force bool) (*webcite.IngestResult, error) {
				return nil, errors.New("fetch failed")
			},
		}

		svc := webslog.NewLoggingIngestService(inner, logger)
		_, err := svc.Ingest(context.Background(), "https://example.com/page", false)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "err=\"fetch failed\"")
	})
}
