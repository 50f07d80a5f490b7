package out_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	reportout "reflexum/internal/modules/report/adapter/out"
	"reflexum/internal/modules/report/domain"
	apperrors "reflexum/internal/platform/errors"
)

type capturedRequest struct {
	path    string
	payload map[string]any
}

func telegramServer(t *testing.T, status int, reply string) (*httptest.Server, *[]capturedRequest) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []capturedRequest
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]any{}
		_ = json.NewDecoder(r.Body).Decode(&payload)
		mu.Lock()
		requests = append(requests, capturedRequest{path: r.URL.Path, payload: payload})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(server.Close)
	return server, &requests
}

func TestTelegramSendsMarkdownV2Verbatim(t *testing.T) {
	t.Parallel()
	server, requests := telegramServer(t, http.StatusOK, `{"ok":true}`)
	messenger, err := reportout.NewTelegramFactory(server.URL, server.Client()).Messenger(domain.TelegramConfig{BotToken: "123:abc", ChatID: "42"})
	if err != nil {
		t.Fatalf("messenger: %v", err)
	}

	if err := messenger.Send(context.Background(), domain.Message{Text: "*Hi* 1\\.0", Format: domain.FormatMarkdownV2}); err != nil {
		t.Fatalf("send: %v", err)
	}
	got := (*requests)[0]
	if got.path != "/bot123:abc/sendMessage" {
		t.Fatalf("unexpected path %s", got.path)
	}
	if got.payload["parse_mode"] != "MarkdownV2" || got.payload["text"] != "*Hi* 1\\.0" || got.payload["chat_id"] != "42" {
		t.Fatalf("unexpected payload %+v", got.payload)
	}
}

func TestTelegramConvertsMarkdownToHTML(t *testing.T) {
	t.Parallel()
	server, requests := telegramServer(t, http.StatusOK, `{"ok":true}`)
	messenger, _ := reportout.NewTelegramFactory(server.URL, server.Client()).Messenger(domain.TelegramConfig{BotToken: "t", ChatID: "1"})

	if err := messenger.Send(context.Background(), domain.Message{Text: "**Deadlines**\n\n- Math — Essay", Format: domain.FormatMarkdown}); err != nil {
		t.Fatalf("send: %v", err)
	}
	got := (*requests)[0].payload
	text, _ := got["text"].(string)
	if got["parse_mode"] != "HTML" || strings.Contains(text, "**") || !strings.Contains(text, "Deadlines") {
		t.Fatalf("unexpected payload %+v", got)
	}
}

func TestTelegramReportsAPIErrors(t *testing.T) {
	t.Parallel()
	server, _ := telegramServer(t, http.StatusBadRequest, `{"ok":false,"description":"Bad Request: can't parse entities"}`)
	messenger, _ := reportout.NewTelegramFactory(server.URL, server.Client()).Messenger(domain.TelegramConfig{BotToken: "t", ChatID: "1"})

	err := messenger.Send(context.Background(), domain.Message{Text: "x", Format: domain.FormatMarkdownV2})
	if err == nil || !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "can't parse entities") {
		t.Fatalf("expected status and description in error, got %v", err)
	}
}

func TestTelegramRequiresCredentials(t *testing.T) {
	t.Parallel()
	_, err := reportout.NewTelegramFactory("", nil).Messenger(domain.TelegramConfig{ChatID: "1"})
	if !errors.Is(err, apperrors.ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
}
