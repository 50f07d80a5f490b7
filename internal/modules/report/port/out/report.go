package out

import (
	"context"

	"reflexum/internal/modules/report/domain"
)

// ReportStore persists rendered reports at vault-relative paths and returns the absolute path.
type ReportStore interface {
	Save(ctx context.Context, path, content string) (string, error)
}

type Messenger interface {
	Send(ctx context.Context, message domain.Message) error
}

type MessengerFactory interface {
	Messenger(cfg domain.TelegramConfig) (Messenger, error)
}

type InsightProvider interface {
	Insights(ctx context.Context, req domain.InsightRequest) (string, error)
	Quiz(ctx context.Context, req domain.InsightRequest) (string, error)
	Models(ctx context.Context) ([]string, error)
}

type InsightProviderFactory interface {
	Provider(cfg domain.LLMConfig) (InsightProvider, error)
}

// Journal keeps the history of produced reports and deliveries, newest first.
type Journal interface {
	Record(ctx context.Context, entry domain.JournalEntry) error
	List(ctx context.Context, limit int) ([]domain.JournalEntry, error)
}
