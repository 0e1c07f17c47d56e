package mock

import (
	"github.com/fwojciec/webcite"
)

var _ webcite.Converter = (*Converter)(nil)

// Converter is a mock implementation of webcite.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
