// Package httpapi exposes the chatbot over a small JSON HTTP surface for
// non-Telegram clients.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

const defaultChatID = "web-user"

// ChatService is the chat layer surface the HTTP handlers call into.
type ChatService interface {
	Chat(ctx context.Context, chatID, userMessage string) (string, error)
	ClearHistory(ctx context.Context, chatID string) error
	ListDocuments(ctx context.Context, chatID string) (string, error)
}

// ToolInvoker executes a named backend tool and renders the result as text.
type ToolInvoker interface {
	Invoke(ctx context.Context, toolName string, params map[string]string) string
}

// Server routes chatbot HTTP requests.
type Server struct {
	chat  ChatService
	tools ToolInvoker
	log   *slog.Logger
	mux   *http.ServeMux
}

// New builds the server and registers its routes.
func New(chat ChatService, tools ToolInvoker, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		chat:  chat,
		tools: tools,
		log:   log,
		mux:   http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/chatbot/health", s.handleHealth)
	s.mux.HandleFunc("POST /api/chatbot/chat", s.handleChat)
	s.mux.HandleFunc("DELETE /api/chatbot/history/{chatId}", s.handleClearHistory)
	s.mux.HandleFunc("GET /api/chatbot/documents/{chatId}", s.handleDocuments)
	s.mux.HandleFunc("POST /api/chatbot/tools", s.handleTools)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "UP"})
}

type chatRequest struct {
	ChatID  string `json:"chatId"`
	Message string `json:"message"`
}

type chatResponse struct {
	Response string `json:"response"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}
	if req.ChatID == "" {
		req.ChatID = defaultChatID
	}

	response, err := s.chat.Chat(r.Context(), req.ChatID, req.Message)
	if err != nil {
		s.log.Error("chat turn failed", "chat_id", req.ChatID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to generate a response")
		return
	}
	writeJSON(w, http.StatusOK, chatResponse{Response: response})
}

func (s *Server) handleClearHistory(w http.ResponseWriter, r *http.Request) {
	chatID := r.PathValue("chatId")
	if err := s.chat.ClearHistory(r.Context(), chatID); err != nil {
		s.log.Error("failed to clear history", "chat_id", chatID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to clear history")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared", "chatId": chatID})
}

func (s *Server) handleDocuments(w http.ResponseWriter, r *http.Request) {
	chatID := r.PathValue("chatId")
	listing, err := s.chat.ListDocuments(r.Context(), chatID)
	if err != nil {
		s.log.Error("failed to list documents", "chat_id", chatID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list documents")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"documents": listing})
}

type toolRequest struct {
	Tool   string            `json:"tool"`
	Params map[string]string `json:"params"`
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	var req toolRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Tool == "" {
		writeError(w, http.StatusBadRequest, "tool is required")
		return
	}
	result := s.tools.Invoke(r.Context(), req.Tool, req.Params)
	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
