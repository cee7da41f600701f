// Package llm defines the role-tagged message shape used for model
// completion and the providers that implement it.
package llm

import "context"

// Message roles understood by the completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one role-tagged entry of a model prompt.
type Message struct {
	Role    string
	Content string
}

// Completer produces a completion for an ordered sequence of role-tagged
// messages. A completion failure is fatal for the enclosing chat turn.
type Completer interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}
