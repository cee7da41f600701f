// Package telegram is the chat transport: a long-polling bot that routes
// commands, user text and PDF uploads into the chat service.
package telegram

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// maxMessageLen bounds outbound message length; Telegram rejects
// messages over 4096 characters.
const maxMessageLen = 4000

// ChatService is everything the transport needs from the chat layer.
type ChatService interface {
	Chat(ctx context.Context, chatID, userMessage string) (string, error)
	ProcessDocument(ctx context.Context, chatID string, fileData []byte, fileName string) string
	ClearHistory(ctx context.Context, chatID string) error
	ListDocuments(ctx context.Context, chatID string) (string, error)
}

// Bot consumes Telegram updates. The API client is constructed once at
// startup and injected; the bot never builds its own.
type Bot struct {
	api        *tgbotapi.BotAPI
	chat       ChatService
	httpClient *http.Client
	log        *slog.Logger
}

// New creates a bot around an already-authorized API client.
func New(api *tgbotapi.BotAPI, chat ChatService, log *slog.Logger) *Bot {
	if log == nil {
		log = slog.Default()
	}
	return &Bot{
		api:  api,
		chat: chat,
		httpClient: &http.Client{
			Timeout: time.Minute,
		},
		log: log,
	}
}

// Run long-polls for updates until the context is cancelled. Updates are
// handled one at a time: turns for one conversation arrive in receipt
// order.
func (b *Bot) Run(ctx context.Context) error {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 30
	updates := b.api.GetUpdatesChan(updateConfig)

	b.log.Info("telegram bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			if update.Message != nil {
				b.handleMessage(ctx, update.Message)
			}
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	key := strconv.FormatInt(chatID, 10)

	switch {
	case msg.Document != nil:
		b.handleDocument(ctx, chatID, key, msg)
	case strings.HasPrefix(msg.Text, "/"):
		b.handleCommand(ctx, chatID, key, msg.Text)
	case msg.Text != "":
		response, err := b.chat.Chat(ctx, key, msg.Text)
		if err != nil {
			b.log.Error("chat turn failed", "chat_id", key, "error", err)
			b.send(chatID, "❌ Sorry, something went wrong while answering. Please try again.")
			return
		}
		b.send(chatID, response)
	}
}

func (b *Bot) handleCommand(ctx context.Context, chatID int64, key, text string) {
	command := strings.ToLower(strings.Fields(text)[0])
	// Strip the bot mention from commands like /help@my_bot.
	if i := strings.IndexByte(command, '@'); i > 0 {
		command = command[:i]
	}

	var response string
	switch command {
	case "/start":
		response = welcomeText
	case "/help":
		response = helpText
	case "/clear":
		if err := b.chat.ClearHistory(ctx, key); err != nil {
			b.log.Error("failed to clear history", "chat_id", key, "error", err)
			response = "❌ Could not clear the conversation history."
		} else {
			response = "🗑️ Conversation history cleared!"
		}
	case "/docs":
		listing, err := b.chat.ListDocuments(ctx, key)
		if err != nil {
			b.log.Error("failed to list documents", "chat_id", key, "error", err)
			response = "❌ Could not list your documents."
		} else {
			response = listing
		}
	default:
		response = "❓ Unknown command. Type /help for available commands."
	}
	b.send(chatID, response)
}

func (b *Bot) handleDocument(ctx context.Context, chatID int64, key string, msg *tgbotapi.Message) {
	fileName := msg.Document.FileName
	if !strings.HasSuffix(strings.ToLower(fileName), ".pdf") {
		b.send(chatID, "⚠️ Please send a PDF file.")
		return
	}

	b.send(chatID, "📄 Processing PDF: "+fileName+"...")

	data, err := b.downloadFile(ctx, msg.Document.FileID)
	if err != nil {
		b.log.Error("failed to download document", "chat_id", key, "file", fileName, "error", err)
		b.send(chatID, "❌ Failed to download the file from Telegram.")
		return
	}

	b.send(chatID, b.chat.ProcessDocument(ctx, key, data, fileName))
}

// downloadFile fetches an uploaded file's bytes through the bot file API.
func (b *Bot) downloadFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve file URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("file download error: %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// send delivers text to a chat, splitting long responses into sequential
// bounded messages.
func (b *Bot) send(chatID int64, text string) {
	for _, part := range splitMessage(text, maxMessageLen) {
		if _, err := b.api.Send(tgbotapi.NewMessage(chatID, part)); err != nil {
			b.log.Error("failed to send message", "chat_id", chatID, "error", err)
			return
		}
	}
}

// splitMessage cuts text into in-order pieces of at most limit
// characters. Counted in runes so a multi-byte character is never split.
func splitMessage(text string, limit int) []string {
	runes := []rune(text)
	if len(runes) <= limit {
		return []string{text}
	}

	var parts []string
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		parts = append(parts, string(runes[start:end]))
	}
	return parts
}
