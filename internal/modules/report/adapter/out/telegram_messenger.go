package out

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/leonid-shevtsov/telegold"
	"github.com/yuin/goldmark"
	"golang.org/x/time/rate"

	"reflexum/internal/modules/report/domain"
	reportout "reflexum/internal/modules/report/port/out"
	apperrors "reflexum/internal/platform/errors"
)

const DefaultTelegramAPI = "https://api.telegram.org"

var telegramHTML = goldmark.New(goldmark.WithRenderer(telegold.NewRenderer()))

// TelegramFactory builds per-chat messengers that share one HTTP client and
// one limiter, so concurrent digests and reminders stay under the bot rate limit.
type TelegramFactory struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

func NewTelegramFactory(baseURL string, client *http.Client) *TelegramFactory {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultTelegramAPI
	}
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &TelegramFactory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
	}
}

func (f *TelegramFactory) Messenger(cfg domain.TelegramConfig) (reportout.Messenger, error) {
	if strings.TrimSpace(cfg.BotToken) == "" || strings.TrimSpace(cfg.ChatID) == "" {
		return nil, fmt.Errorf("%w: telegram bot token and chat id are required", apperrors.ErrNotConfigured)
	}
	return &TelegramMessenger{factory: f, token: cfg.BotToken, chatID: cfg.ChatID}, nil
}

type TelegramMessenger struct {
	factory *TelegramFactory
	token   string
	chatID  string
}

type telegramPayload struct {
	ChatID                string `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type telegramResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

func (m *TelegramMessenger) Send(ctx context.Context, message domain.Message) error {
	payload := telegramPayload{ChatID: m.chatID, Text: message.Text, DisableWebPagePreview: true}
	switch message.Format {
	case domain.FormatMarkdownV2:
		payload.ParseMode = "MarkdownV2"
	case domain.FormatMarkdown:
		var buf bytes.Buffer
		if err := telegramHTML.Convert([]byte(message.Text), &buf); err != nil {
			return fmt.Errorf("convert markdown: %w", err)
		}
		payload.Text = strings.TrimSpace(buf.String())
		payload.ParseMode = "HTML"
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode telegram payload: %w", err)
	}

	if err := m.factory.limiter.Wait(ctx); err != nil {
		return err
	}
	url := fmt.Sprintf("%s/bot%s/sendMessage", m.factory.baseURL, m.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.factory.client.Do(req)
	if err != nil {
		return fmt.Errorf("send telegram message: %w", redact(err, m.token))
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("telegram api error: status %d: %s", resp.StatusCode, describe(raw))
	}
	var decoded telegramResponse
	if err := json.Unmarshal(raw, &decoded); err == nil && !decoded.OK {
		return fmt.Errorf("telegram api error: %s", describe(raw))
	}
	return nil
}

func describe(raw []byte) string {
	var decoded telegramResponse
	if err := json.Unmarshal(raw, &decoded); err == nil && decoded.Description != "" {
		return decoded.Description
	}
	return strings.TrimSpace(string(raw))
}

// redact keeps the bot token out of transport errors, which embed the URL.
func redact(err error, token string) error {
	if token == "" || !strings.Contains(err.Error(), token) {
		return err
	}
	return fmt.Errorf("%s", strings.ReplaceAll(err.Error(), token, "<token>"))
}
