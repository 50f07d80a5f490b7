package domain_test

import (
	"strings"
	"testing"

	"reflexum/internal/modules/report/domain"
)

func TestInsightPromptPeriod(t *testing.T) {
	t.Parallel()
	p := domain.InsightPrompt(domain.InsightRequest{
		Mode:         domain.ModePeriod,
		Lang:         domain.LangEN,
		TotalMinutes: 51.5,
		Courses:      []string{"Math", "—"},
		Topics:       []string{"matrices", "limits"},
	})
	want := "Period summary:\nTime: 51.5 min\nCourses: Math, —\nTop topics: matrices, limits"
	if p.User != want {
		t.Fatalf("unexpected user prompt:\n%s", p.User)
	}
	if !strings.HasPrefix(p.System, "You are a study journal assistant.") {
		t.Fatalf("unexpected system prompt %q", p.System)
	}
}

func TestInsightPromptSingleFallsBackWithoutBody(t *testing.T) {
	t.Parallel()
	withBody := domain.InsightPrompt(domain.InsightRequest{Mode: domain.ModeSingle, Lang: domain.LangRU, Body: "текст"})
	if !strings.HasSuffix(withBody.User, "\"\"\"текст\"\"\"") || !strings.HasPrefix(withBody.User, "Материал (заметка).") {
		t.Fatalf("unexpected single prompt %q", withBody.User)
	}
	empty := domain.InsightPrompt(domain.InsightRequest{Mode: domain.ModeSingle, Lang: domain.LangRU})
	if !strings.HasPrefix(empty.User, "Сводка периода:") {
		t.Fatalf("expected period summary for an empty body, got %q", empty.User)
	}
}

func TestQuizPrompt(t *testing.T) {
	t.Parallel()
	if got := domain.QuizPrompt(domain.InsightRequest{Lang: domain.LangRU, Topics: []string{"a", "b"}}).User; got != "Темы периода: a, b" {
		t.Fatalf("unexpected quiz prompt %q", got)
	}
	single := domain.QuizPrompt(domain.InsightRequest{Mode: domain.ModeSingle, Lang: domain.LangEN, Body: "x"})
	if single.User != "Generate 5 self-check questions based on the text:\n\"\"\"x\"\"\"" {
		t.Fatalf("unexpected single quiz prompt %q", single.User)
	}
}
