package goquery_test

import (
	"errors"
	"testing"

	"github.com/fwojciec/webcite"
	"github.com/fwojciec/webcite/goquery"
	"github.com/fwojciec/webcite/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("prefers article over body", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>My Page</title></head><body>
<nav>navigation links</nav>
<article><p>The actual content.</p></article>
<footer>footer text</footer>
</body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "My Page", result.Title)
		assert.Contains(t, result.ContentHTML, "The actual content.")
		assert.NotContains(t, result.ContentHTML, "navigation links")
	})

	t.Run("falls back to body and strips boilerplate", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><title>Plain</title></head><body>
<script>alert(1)</script>
<p>Visible text.</p>
</body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Visible text.")
		assert.NotContains(t, result.ContentHTML, "alert(1)")
	})

	t.Run("uses og:title when title tag missing", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><meta property="og:title" content="OG Title"></head><body><p>text</p></body></html>`

		e := goquery.NewExtractor()
		result, err := e.Extract(html)

		require.NoError(t, err)
		assert.Equal(t, "OG Title", result.Title)
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewExtractor()
		_, err := e.Extract(" ")

		require.Error(t, err)
		assert.Equal(t, webcite.EINVALID, webcite.ErrorCode(err))
	})
}

func TestFallbackExtractor(t *testing.T) {
	t.Parallel()

	t.Run("returns primary result when it succeeds", func(t *testing.T) {
		t.Parallel()

		e := &goquery.FallbackExtractor{
			Primary: &mock.Extractor{ExtractFn: func(string) (*webcite.ExtractResult, error) {
				return &webcite.ExtractResult{Title: "primary", ContentHTML: "<p>ok</p>"}, nil
			}},
			Fallback: &mock.Extractor{ExtractFn: func(string) (*webcite.ExtractResult, error) {
				t.Fatal("fallback should not be called")
				return nil, nil
			}},
		}

		result, err := e.Extract("<html></html>")
		require.NoError(t, err)
		assert.Equal(t, "primary", result.Title)
	})

	t.Run("falls back when primary errors", func(t *testing.T) {
		t.Parallel()

		e := &goquery.FallbackExtractor{
			Primary: &mock.Extractor{ExtractFn: func(string) (*webcite.ExtractResult, error) {
				return nil, errors.New("boom")
			}},
			Fallback: &mock.Extractor{ExtractFn: func(string) (*webcite.ExtractResult, error) {
				return &webcite.ExtractResult{Title: "fallback", ContentHTML: "<p>ok</p>"}, nil
			}},
		}

		result, err := e.Extract("<html></html>")
		require.NoError(t, err)
		assert.Equal(t, "fallback", result.Title)
	})

	t.Run("falls back when primary returns empty content", func(t *testing.T) {
		t.Parallel()

		e := &goquery.FallbackExtractor{
			Primary: &mock.Extractor{ExtractFn: func(string) (*webcite.ExtractResult, error) {
				return &webcite.ExtractResult{}, nil
			}},
			Fallback: &mock.Extractor{ExtractFn: func(string) (*webcite.ExtractResult, error) {
				return &webcite.ExtractResult{Title: "fallback", ContentHTML: "<p>ok</p>"}, nil
			}},
		}

		result, err := e.Extract("<html></html>")
		require.NoError(t, err)
		assert.Equal(t, "fallback", result.Title)
	})

	t.Run("returns primary error when both fail", func(t *testing.T) {
		t.Parallel()

		primaryErr := errors.New("primary failed")
		e := &goquery.FallbackExtractor{
			Primary: &mock.Extractor{ExtractFn: func(string) (*webcite.ExtractResult, error) {
				return nil, primaryErr
			}},
			Fallback: &mock.Extractor{ExtractFn: func(string) (*webcite.ExtractResult, error) {
				return nil, errors.New("fallback failed")
			}},
		}

		_, err := e.Extract("<html></html>")
		require.ErrorIs(t, err, primaryErr)
	})
}
