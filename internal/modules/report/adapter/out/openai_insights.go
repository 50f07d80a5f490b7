package out

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"reflexum/internal/modules/report/domain"
	reportout "reflexum/internal/modules/report/port/out"
	apperrors "reflexum/internal/platform/errors"
)

const DefaultLLMModel = "gpt-4o-mini"

// OpenAIFactory serves OpenAI and any OpenAI-compatible endpoint given by base URL.
type OpenAIFactory struct{}

func NewOpenAIFactory() OpenAIFactory {
	return OpenAIFactory{}
}

func (OpenAIFactory) Provider(cfg domain.LLMConfig) (reportout.InsightProvider, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("%w: llm api key", apperrors.ErrNotConfigured)
	}
	provider := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if provider != "" && provider != "openai" && cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: provider %q needs an OpenAI-compatible base url", apperrors.ErrInvalidInput, cfg.Provider)
	}

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = DefaultLLMModel
	}
	return &OpenAIInsights{client: openai.NewClient(opts...), model: model}, nil
}

type OpenAIInsights struct {
	client openai.Client
	model  string
}

func (p *OpenAIInsights) Insights(ctx context.Context, req domain.InsightRequest) (string, error) {
	return p.complete(ctx, domain.InsightPrompt(req))
}

func (p *OpenAIInsights) Quiz(ctx context.Context, req domain.InsightRequest) (string, error) {
	return p.complete(ctx, domain.QuizPrompt(req))
}

func (p *OpenAIInsights) Models(ctx context.Context) ([]string, error) {
	page, err := p.client.Models.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	out := make([]string, 0, len(page.Data))
	for _, model := range page.Data {
		out = append(out, model.ID)
	}
	sort.Strings(out)
	return out, nil
}

func (p *OpenAIInsights) complete(ctx context.Context, prompt domain.Prompt) (string, error) {
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(prompt.System),
			openai.UserMessage(prompt.User),
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return domain.EmptyCompletion, nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
