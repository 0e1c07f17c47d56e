package mock

import (
	"github.com/fwojciec/webcite"
)

var _ webcite.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of webcite.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*webcite.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*webcite.ExtractResult, error) {
	return e.ExtractFn(html)
}
