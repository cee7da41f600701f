package llm

import (
	"context"
	"fmt"

	"github.com/medAmineRg/chatbot-service/internal/ollama"
)

// OllamaClient completes prompts through a local Ollama server.
type OllamaClient struct {
	client *ollama.Client
	model  string
}

// NewOllamaClient creates an Ollama-backed completer.
func NewOllamaClient(client *ollama.Client, model string) *OllamaClient {
	return &OllamaClient{client: client, model: model}
}

// Complete sends the messages to the Ollama chat endpoint.
func (c *OllamaClient) Complete(ctx context.Context, messages []Message) (string, error) {
	converted := make([]ollama.ChatMessage, 0, len(messages))
	for _, msg := range messages {
		converted = append(converted, ollama.ChatMessage{Role: msg.Role, Content: msg.Content})
	}

	response, err := c.client.Chat(ctx, c.model, converted)
	if err != nil {
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}
	return response, nil
}

var _ Completer = (*OllamaClient)(nil)
