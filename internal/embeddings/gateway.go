// Package embeddings wraps the external embedding capability behind a
// gateway that degrades instead of failing: callers get a vector or nil,
// never an error.
package embeddings

import (
	"context"
	"log/slog"
	"strings"
)

// Provider is the raw embedding capability.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Gateway shields callers from provider failures. A nil result means "no
// vector available" and must never be treated as a zero vector: a zero
// vector would produce false similarity under cosine distance.
type Gateway struct {
	provider Provider
	log      *slog.Logger
}

// NewGateway creates a gateway around the given provider.
func NewGateway(provider Provider, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{provider: provider, log: log}
}

// Embed returns the embedding for text, or nil when the provider fails or
// the input is empty. Failures are logged and never propagated.
func (g *Gateway) Embed(ctx context.Context, text string) []float32 {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	vector, err := g.provider.Embed(ctx, text)
	if err != nil {
		g.log.Warn("embedding unavailable, continuing without vector", "error", err)
		return nil
	}
	if len(vector) == 0 {
		g.log.Warn("embedding provider returned an empty vector")
		return nil
	}
	return vector
}
