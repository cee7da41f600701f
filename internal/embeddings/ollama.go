package embeddings

import (
	"context"

	"github.com/medAmineRg/chatbot-service/internal/ollama"
)

// DefaultOllamaModel is used when no embedding model is configured.
const DefaultOllamaModel = "nomic-embed-text"

// OllamaProvider generates embeddings through a local Ollama server.
type OllamaProvider struct {
	client *ollama.Client
	model  string
}

// NewOllamaProvider creates an Ollama embedding provider.
func NewOllamaProvider(client *ollama.Client, model string) *OllamaProvider {
	if model == "" {
		model = DefaultOllamaModel
	}
	return &OllamaProvider{client: client, model: model}
}

// Embed generates an embedding for a single text.
func (p *OllamaProvider) Embed(ctx context.Context, text string) ([]float32, error) {
	return p.client.Embed(ctx, p.model, text)
}

var _ Provider = (*OllamaProvider)(nil)
