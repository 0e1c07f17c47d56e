package mock

import (
	"context"

	"github.com/fwojciec/webcite"
)

var _ webcite.Generator = (*Generator)(nil)

// Generator is a mock implementation of webcite.Generator.
type Generator struct {
	GenerateFn func(ctx context.Context, system string, msgs []webcite.Message) (string, error)
}

func (g *Generator) Generate(ctx context.Context, system string, msgs []webcite.Message) (string, error) {
	return g.GenerateFn(ctx, system, msgs)
}
