package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChat struct {
	response   string
	chatErr    error
	clearErr   error
	listing    string
	lastChatID string
	lastMsg    string
}

func (s *stubChat) Chat(_ context.Context, chatID, userMessage string) (string, error) {
	s.lastChatID = chatID
	s.lastMsg = userMessage
	return s.response, s.chatErr
}

func (s *stubChat) ClearHistory(_ context.Context, chatID string) error {
	s.lastChatID = chatID
	return s.clearErr
}

func (s *stubChat) ListDocuments(_ context.Context, chatID string) (string, error) {
	s.lastChatID = chatID
	return s.listing, nil
}

type stubTools struct {
	result   string
	lastTool string
	lastArgs map[string]string
}

func (s *stubTools) Invoke(_ context.Context, toolName string, params map[string]string) string {
	s.lastTool = toolName
	s.lastArgs = params
	return s.result
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := New(&stubChat{}, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/chatbot/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "UP")
}

func TestChatReturnsResponse(t *testing.T) {
	chat := &stubChat{response: "hi there"}
	srv := New(chat, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/chatbot/chat",
		`{"chatId":"42","message":"hello"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var body chatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "hi there", body.Response)
	assert.Equal(t, "42", chat.lastChatID)
	assert.Equal(t, "hello", chat.lastMsg)
}

func TestChatDefaultsChatID(t *testing.T) {
	chat := &stubChat{response: "ok"}
	srv := New(chat, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/chatbot/chat", `{"message":"hello"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, defaultChatID, chat.lastChatID)
}

func TestChatRejectsBlankMessage(t *testing.T) {
	srv := New(&stubChat{}, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/chatbot/chat", `{"message":"   "}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatRejectsInvalidJSON(t *testing.T) {
	srv := New(&stubChat{}, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/chatbot/chat", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatFailureIsServerError(t *testing.T) {
	srv := New(&stubChat{chatErr: errors.New("model down")}, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/chatbot/chat", `{"message":"hello"}`)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestClearHistoryUsesPathChatID(t *testing.T) {
	chat := &stubChat{}
	srv := New(chat, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodDelete, "/api/chatbot/history/99", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "99", chat.lastChatID)
}

func TestDocumentsReturnsListing(t *testing.T) {
	chat := &stubChat{listing: "📚 Your Documents:"}
	srv := New(chat, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodGet, "/api/chatbot/documents/7", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "7", chat.lastChatID)
	assert.Contains(t, rec.Body.String(), "Your Documents")
}

func TestToolsInvokesDispatcher(t *testing.T) {
	tools := &stubTools{result: "Customer 1 (Alice)"}
	srv := New(&stubChat{}, tools, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/chatbot/tools",
		`{"tool":"get_customer","params":{"id":"1"}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "get_customer", tools.lastTool)
	assert.Equal(t, map[string]string{"id": "1"}, tools.lastArgs)
	assert.Contains(t, rec.Body.String(), "Alice")
}

func TestToolsRequiresToolName(t *testing.T) {
	srv := New(&stubChat{}, &stubTools{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/api/chatbot/tools", `{"params":{}}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
