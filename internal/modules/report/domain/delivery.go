package domain

// Format tells the messenger how Text is marked up.
type Format string

const (
	FormatMarkdownV2 Format = "MarkdownV2"
	FormatMarkdown   Format = "Markdown"
)

type Message struct {
	Text   string
	Format Format
}

type TelegramConfig struct {
	BotToken string
	ChatID   string
}

type LLMConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Model    string
}
