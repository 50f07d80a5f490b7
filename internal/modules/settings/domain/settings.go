package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"reflexum/internal/platform/period"
)

const (
	PresetLast7     = "last7"
	PresetThisWeek  = "thisWeek"
	PresetThisMonth = "thisMonth"
	PresetCustom    = "custom"
)

var reportTimePattern = regexp.MustCompile(`^([01]?\d|2[0-3]):([0-5]\d)$`)

// Settings is persisted whole; the yaml keys are the names accepted by "settings set".
type Settings struct {
	DatePreset          string   `yaml:"datePreset"`
	DateFrom            string   `yaml:"dateFrom,omitempty"`
	DateTo              string   `yaml:"dateTo,omitempty"`
	IncludeCourses      []string `yaml:"includeCourses"`
	UseLLM              bool     `yaml:"useLLM"`
	LLMProvider         string   `yaml:"llmProvider"`
	LLMAPIKey           string   `yaml:"llmApiKey,omitempty"`
	LLMModel            string   `yaml:"llmModel,omitempty"`
	LLMBaseURL          string   `yaml:"llmBaseUrl,omitempty"`
	TelegramEnabled     bool     `yaml:"telegramEnabled"`
	BotToken            string   `yaml:"botToken,omitempty"`
	ChatID              string   `yaml:"chatId,omitempty"`
	IncludeQuiz         bool     `yaml:"includeQuiz"`
	Language            string   `yaml:"language"`
	DueReminderDays     int      `yaml:"dueReminderDays"`
	AutoReportEnabled   bool     `yaml:"autoReportEnabled"`
	AutoReportFrequency string   `yaml:"autoReportFrequency"`
	AutoReportTime      string   `yaml:"autoReportTime"`
	LastAutoReportDate  string   `yaml:"lastAutoReportDate,omitempty"`
	Timezone            string   `yaml:"timezone,omitempty"`
}

func Defaults() Settings {
	return Settings{
		DatePreset:          PresetLast7,
		IncludeCourses:      []string{},
		LLMProvider:         "openai",
		Language:            "ru",
		DueReminderDays:     2,
		AutoReportFrequency: "weekly",
		AutoReportTime:      "20:00",
	}
}

func (s Settings) Validate() error {
	switch s.DatePreset {
	case PresetLast7, PresetThisWeek, PresetThisMonth, PresetCustom:
	default:
		return fmt.Errorf("unknown date preset %q", s.DatePreset)
	}
	if s.Language != "ru" && s.Language != "en" {
		return fmt.Errorf("unsupported language %q", s.Language)
	}
	switch s.AutoReportFrequency {
	case "daily", "weekly", "monthly":
	default:
		return fmt.Errorf("unknown auto report frequency %q", s.AutoReportFrequency)
	}
	if !reportTimePattern.MatchString(s.AutoReportTime) {
		return fmt.Errorf("auto report time %q is not HH:mm", s.AutoReportTime)
	}
	if s.DueReminderDays < 0 {
		return fmt.Errorf("due reminder days must be non-negative")
	}
	if _, err := s.Location(); err != nil {
		return err
	}
	for _, value := range []string{s.DateFrom, s.DateTo} {
		if value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", value); err != nil {
			return fmt.Errorf("custom date %q is not YYYY-MM-DD", value)
		}
	}
	return nil
}

// Location resolves the configured timezone; empty means the process local zone.
func (s Settings) Location() (*time.Location, error) {
	if strings.TrimSpace(s.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", s.Timezone, err)
	}
	return loc, nil
}

// LastSent returns nil when no auto-report has been recorded.
func (s Settings) LastSent() (*time.Time, error) {
	if strings.TrimSpace(s.LastAutoReportDate) == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.RFC3339Nano, s.LastAutoReportDate)
	if err != nil {
		return nil, fmt.Errorf("parse last auto report date: %w", err)
	}
	return &ts, nil
}

// DateRange turns the date preset into a window ending today, evaluated in the settings timezone.
func (s Settings) DateRange(now time.Time) (period.Period, error) {
	loc, err := s.Location()
	if err != nil {
		return period.Period{}, err
	}
	now = now.In(loc)
	end := period.EndOfDay(now)
	from := end.AddDate(0, 0, -7)

	switch s.DatePreset {
	case PresetThisWeek:
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		from = period.StartOfDay(now.AddDate(0, 0, -(weekday - 1)))
	case PresetThisMonth:
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
	case PresetCustom:
		if s.DateFrom == "" || s.DateTo == "" {
			break
		}
		start, err := time.ParseInLocation("2006-01-02", s.DateFrom, loc)
		if err != nil {
			return period.Period{}, fmt.Errorf("parse date from: %w", err)
		}
		stop, err := time.ParseInLocation("2006-01-02", s.DateTo, loc)
		if err != nil {
			return period.Period{}, fmt.Errorf("parse date to: %w", err)
		}
		return period.New(start, period.EndOfDay(stop))
	}
	return period.New(from, end)
}

// TelegramReady reports whether digests can be delivered with these settings.
func (s Settings) TelegramReady() bool {
	return s.TelegramEnabled && s.BotToken != "" && s.ChatID != ""
}

// WithSecrets fills credentials from the environment; environment values win.
func (s Settings) WithSecrets(botToken, chatID, llmKey, llmBaseURL, llmModel string) Settings {
	if botToken != "" {
		s.BotToken = botToken
	}
	if chatID != "" {
		s.ChatID = chatID
	}
	if llmKey != "" {
		s.LLMAPIKey = llmKey
	}
	if llmBaseURL != "" {
		s.LLMBaseURL = llmBaseURL
	}
	if llmModel != "" {
		s.LLMModel = llmModel
	}
	return s
}
