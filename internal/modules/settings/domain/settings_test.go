package domain_test

import (
	"testing"
	"time"

	"reflexum/internal/modules/settings/domain"
)

func TestDefaultsAreValid(t *testing.T) {
	t.Parallel()
	s := domain.Defaults()
	if err := s.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
	if s.Language != "ru" || s.DueReminderDays != 2 || s.AutoReportFrequency != "weekly" || s.AutoReportTime != "20:00" || s.UseLLM {
		t.Fatalf("unexpected defaults: %+v", s)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Parallel()
	mutations := map[string]func(*domain.Settings){
		"preset":    func(s *domain.Settings) { s.DatePreset = "yesterday" },
		"language":  func(s *domain.Settings) { s.Language = "de" },
		"frequency": func(s *domain.Settings) { s.AutoReportFrequency = "hourly" },
		"time":      func(s *domain.Settings) { s.AutoReportTime = "8pm" },
		"hour":      func(s *domain.Settings) { s.AutoReportTime = "24:00" },
		"days":      func(s *domain.Settings) { s.DueReminderDays = -1 },
		"timezone":  func(s *domain.Settings) { s.Timezone = "Mars/Olympus" },
		"custom":    func(s *domain.Settings) { s.DateFrom = "03/01/2026" },
	}
	for name, mutate := range mutations {
		s := domain.Defaults()
		mutate(&s)
		if err := s.Validate(); err == nil {
			t.Fatalf("expected %s mutation to fail validation", name)
		}
	}
}

func TestDateRangePresets(t *testing.T) {
	t.Parallel()
	s := domain.Defaults()
	s.Timezone = "UTC"
	now := time.Date(2026, 3, 11, 15, 0, 0, 0, time.UTC) // Wednesday

	cases := map[string]string{
		domain.PresetLast7:     "2026-03-04 23:59:59",
		domain.PresetThisWeek:  "2026-03-09 00:00:00",
		domain.PresetThisMonth: "2026-03-01 00:00:00",
	}
	for preset, wantFrom := range cases {
		s.DatePreset = preset
		p, err := s.DateRange(now)
		if err != nil {
			t.Fatalf("date range %s: %v", preset, err)
		}
		if got := p.From.Format("2006-01-02 15:04:05"); got != wantFrom {
			t.Fatalf("%s from: got %s want %s", preset, got, wantFrom)
		}
		if got := p.To.Format("2006-01-02 15:04:05"); got != "2026-03-11 23:59:59" {
			t.Fatalf("%s to: got %s", preset, got)
		}
	}

	s.DatePreset = domain.PresetCustom
	s.DateFrom, s.DateTo = "2026-02-01", "2026-02-14"
	p, err := s.DateRange(now)
	if err != nil {
		t.Fatalf("custom range: %v", err)
	}
	if p.From.Format("2006-01-02 15:04") != "2026-02-01 00:00" || p.To.Format("2006-01-02 15:04:05") != "2026-02-14 23:59:59" {
		t.Fatalf("unexpected custom period %v", p)
	}

	s.DateTo = ""
	p, err = s.DateRange(now)
	if err != nil || p.From.Format("2006-01-02") != "2026-03-04" {
		t.Fatalf("incomplete custom range must fall back to last7, got %v %v", p, err)
	}
}

func TestThisWeekOnSundayStartsPreviousMonday(t *testing.T) {
	t.Parallel()
	s := domain.Defaults()
	s.Timezone = "UTC"
	s.DatePreset = domain.PresetThisWeek
	p, err := s.DateRange(time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("date range: %v", err)
	}
	if p.From.Format("2006-01-02") != "2026-03-09" {
		t.Fatalf("expected monday 2026-03-09, got %s", p.From)
	}
}

func TestSetAndGetKeys(t *testing.T) {
	t.Parallel()
	s := domain.Defaults()
	steps := map[string]string{
		"includeCourses":    " Math, Bio ,,",
		"useLLM":            "true",
		"dueReminderDays":   "5",
		"autoReportEnabled": "1",
		"botToken":          "123:abc",
	}
	for key, value := range steps {
		if err := s.Set(key, value); err != nil {
			t.Fatalf("set %s: %v", key, err)
		}
	}
	if s.Get("includeCourses") != "Math,Bio" || s.Get("useLLM") != "true" || s.Get("dueReminderDays") != "5" || !s.AutoReportEnabled {
		t.Fatalf("unexpected values after set: %+v", s)
	}
	if s.Get("botToken") != "********" || s.BotToken != "123:abc" {
		t.Fatalf("secret must be stored but masked")
	}
	if err := s.Set("useLLM", "maybe"); err == nil {
		t.Fatalf("expected bool parse error")
	}
	if err := s.Set("colour", "blue"); err == nil {
		t.Fatalf("expected unknown key error")
	}
	for _, key := range domain.Keys {
		_ = s.Get(key)
	}
}

func TestLastSentAndSecrets(t *testing.T) {
	t.Parallel()
	s := domain.Defaults()
	if ts, err := s.LastSent(); err != nil || ts != nil {
		t.Fatalf("expected no last sent, got %v %v", ts, err)
	}
	s.LastAutoReportDate = "2026-03-08T20:15:00Z"
	ts, err := s.LastSent()
	if err != nil || ts == nil || ts.Hour() != 20 {
		t.Fatalf("unexpected last sent %v %v", ts, err)
	}
	s.LastAutoReportDate = "yesterday"
	if _, err := s.LastSent(); err == nil {
		t.Fatalf("expected parse error")
	}
	s.TelegramEnabled = true
	s.BotToken = "file-token"
	merged := s.WithSecrets("env-token", "42", "", "", "")
	if merged.BotToken != "env-token" || merged.ChatID != "42" || !merged.TelegramReady() {
		t.Fatalf("environment secrets must win: %+v", merged)
	}
	if s.TelegramReady() {
		t.Fatalf("settings without chat id must not be ready")
	}
}
