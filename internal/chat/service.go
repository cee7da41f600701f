// Package chat orchestrates conversation turns: history, prompt
// assembly, model completion and document ingestion results.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/medAmineRg/chatbot-service/internal/db"
	"github.com/medAmineRg/chatbot-service/internal/documents"
	"github.com/medAmineRg/chatbot-service/internal/llm"
)

// History appends and clears conversation turns.
type History interface {
	Append(ctx context.Context, chatID, role, content string) error
	Clear(ctx context.Context, chatID string) error
}

// PromptBuilder assembles the model input for one turn.
type PromptBuilder interface {
	Build(ctx context.Context, chatID, userMessage string) ([]llm.Message, error)
}

// Ingestor runs the document ingestion pipeline for one uploaded file.
type Ingestor interface {
	Ingest(ctx context.Context, chatID string, fileData []byte, fileName string) (*db.Document, error)
}

// DocumentLister loads the documents uploaded to a chat.
type DocumentLister interface {
	DocumentsByChat(ctx context.Context, chatID string) ([]*db.Document, error)
}

// Service handles one user turn or one document upload at a time per
// conversation.
type Service struct {
	history   History
	prompts   PromptBuilder
	completer llm.Completer
	ingestor  Ingestor
	docs      DocumentLister
	locks     *conversationLocks
	log       *slog.Logger
}

// NewService wires the chat orchestration.
func NewService(history History, prompts PromptBuilder, completer llm.Completer, ingestor Ingestor, docs DocumentLister, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		history:   history,
		prompts:   prompts,
		completer: completer,
		ingestor:  ingestor,
		docs:      docs,
		locks:     newConversationLocks(),
		log:       log,
	}
}

// Chat processes one user turn: persist it, assemble the prompt, ask the
// model, persist the answer. A completion failure is the one
// unrecoverable error of a turn and is returned to the transport.
func (s *Service) Chat(ctx context.Context, chatID, userMessage string) (string, error) {
	release := s.locks.acquire(chatID)
	defer release()

	s.log.Info("processing chat turn", "chat_id", chatID)

	if err := s.history.Append(ctx, chatID, db.RoleUser, userMessage); err != nil {
		return "", err
	}

	messages, err := s.prompts.Build(ctx, chatID, userMessage)
	if err != nil {
		return "", err
	}

	response, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("completion failed: %w", err)
	}

	if err := s.history.Append(ctx, chatID, db.RoleAssistant, response); err != nil {
		return "", err
	}

	return response, nil
}

// ProcessDocument ingests an uploaded file and formats the outcome as a
// chat message. Failures are reported with a distinct prefix so the user
// can tell them apart from answers.
func (s *Service) ProcessDocument(ctx context.Context, chatID string, fileData []byte, fileName string) string {
	doc, err := s.ingestor.Ingest(ctx, chatID, fileData, fileName)
	if errors.Is(err, documents.ErrEmptyText) {
		return "⚠️ Could not extract text from the PDF. It might be scanned or image-based."
	}
	if err != nil {
		s.log.Error("document ingestion failed", "file", fileName, "error", err)
		return fmt.Sprintf("❌ Failed to process PDF: %v", err)
	}

	return fmt.Sprintf("✅ Successfully processed %s\n\n📊 Extracted %d text chunks\n\n💡 You can now ask questions about this document!",
		fileName, doc.ChunkCount)
}

// ClearHistory deletes the conversation history of one chat.
func (s *Service) ClearHistory(ctx context.Context, chatID string) error {
	if err := s.history.Clear(ctx, chatID); err != nil {
		return err
	}
	s.log.Info("cleared chat history", "chat_id", chatID)
	return nil
}

// ListDocuments formats the documents uploaded to a chat.
func (s *Service) ListDocuments(ctx context.Context, chatID string) (string, error) {
	docs, err := s.docs.DocumentsByChat(ctx, chatID)
	if err != nil {
		return "", err
	}
	if len(docs) == 0 {
		return "📭 No documents uploaded yet.\n\nSend me a PDF file to get started!", nil
	}

	var sb strings.Builder
	sb.WriteString("📚 Your Documents:\n\n")
	for i, doc := range docs {
		fmt.Fprintf(&sb, "%d. %s\n   📅 %s\n   📝 %d chunks\n\n",
			i+1, doc.FileName, doc.UploadedAt.Format("2006-01-02"), doc.ChunkCount)
	}
	return sb.String(), nil
}
