package chat

import (
	"context"
	"strings"

	"github.com/medAmineRg/chatbot-service/internal/db"
	"github.com/medAmineRg/chatbot-service/internal/llm"
)

// DefaultHistoryLimit is how many prior turns a prompt carries.
const DefaultHistoryLimit = 10

const systemPreamble = `You are a helpful AI assistant integrated with a microservices architecture.
You can help users with general questions and also answer questions based on
documents they have uploaded.

Be concise and helpful. Use emojis sparingly to make responses more engaging.`

// Delimiters wrapping the retrieved context block in the system message.
const (
	contextBlockStart = "--- RELEVANT DOCUMENT CONTEXT ---"
	contextBlockEnd   = "--- END OF CONTEXT ---"
)

// ContextSearcher retrieves document context relevant to a query.
type ContextSearcher interface {
	Search(ctx context.Context, chatID, query string) ([]string, error)
}

// HistoryReader loads the recent turn window in chronological order.
type HistoryReader interface {
	Recent(ctx context.Context, chatID string, n int) ([]*db.Turn, error)
}

// ToolCatalogue describes the available tools for the system prompt.
type ToolCatalogue interface {
	Catalogue() string
}

// Assembler builds the full model input for one chat turn: system
// instructions, retrieved context, tool catalogue, bounded history and
// the current user message.
type Assembler struct {
	index        ContextSearcher
	history      HistoryReader
	tools        ToolCatalogue
	historyLimit int
}

// NewAssembler creates a prompt assembler.
func NewAssembler(index ContextSearcher, history HistoryReader, tools ToolCatalogue, historyLimit int) *Assembler {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	return &Assembler{
		index:        index,
		history:      history,
		tools:        tools,
		historyLimit: historyLimit,
	}
}

// Build assembles the ordered role-tagged messages for a completion. The
// current user message is appended programmatically rather than reloaded
// from history, so it appears exactly once even though it was already
// persisted before assembly.
func (a *Assembler) Build(ctx context.Context, chatID, userMessage string) ([]llm.Message, error) {
	system, err := a.systemPrompt(ctx, chatID, userMessage)
	if err != nil {
		return nil, err
	}

	turns, err := a.history.Recent(ctx, chatID, a.historyLimit)
	if err != nil {
		return nil, err
	}

	messages := make([]llm.Message, 0, len(turns)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})

	for _, turn := range turns {
		role := llm.RoleAssistant
		if turn.Role == db.RoleUser {
			role = llm.RoleUser
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}

	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: userMessage})
	return messages, nil
}

// systemPrompt combines the preamble, the retrieved context (only when
// the search returned something) and the tool catalogue.
func (a *Assembler) systemPrompt(ctx context.Context, chatID, userMessage string) (string, error) {
	var sb strings.Builder
	sb.WriteString(systemPreamble)

	chunks, err := a.index.Search(ctx, chatID, userMessage)
	if err != nil {
		return "", err
	}
	if len(chunks) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(contextBlockStart)
		sb.WriteString("\n")
		sb.WriteString(strings.Join(chunks, "\n\n"))
		sb.WriteString("\n")
		sb.WriteString(contextBlockEnd)
		sb.WriteString("\n\nUse the above context to answer questions when relevant.")
	}

	sb.WriteString("\n\n")
	sb.WriteString(a.tools.Catalogue())
	return sb.String(), nil
}
