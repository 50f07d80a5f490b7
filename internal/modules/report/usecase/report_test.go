package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	analysisservice "reflexum/internal/modules/analysis/service"
	analysisusecase "reflexum/internal/modules/analysis/usecase"
	notedto "reflexum/internal/modules/note/dto"
	"reflexum/internal/modules/report/domain"
	"reflexum/internal/modules/report/dto"
	reportin "reflexum/internal/modules/report/port/in"
	reportout "reflexum/internal/modules/report/port/out"
	"reflexum/internal/modules/report/usecase"
	settingsdomain "reflexum/internal/modules/settings/domain"
	settingsdto "reflexum/internal/modules/settings/dto"
	apperrors "reflexum/internal/platform/errors"
	"reflexum/internal/platform/logging"
)

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return now }

type sequentialIDs struct{ n int }

func (s *sequentialIDs) New() string {
	s.n++
	return "id-" + string(rune('0'+s.n))
}

type fakeSettings struct {
	settings settingsdomain.Settings
}

func (f *fakeSettings) Load(context.Context) (settingsdomain.Settings, error) { return f.settings, nil }
func (f *fakeSettings) Show(context.Context) (settingsdto.SettingsOutput, error) {
	return settingsdto.SettingsOutput{}, nil
}
func (f *fakeSettings) Set(context.Context, settingsdto.SetInput) (settingsdto.SettingsOutput, error) {
	return settingsdto.SettingsOutput{}, nil
}
func (f *fakeSettings) MarkAutoReportSent(context.Context, time.Time) error { return nil }
func (f *fakeSettings) Watch(context.Context) (<-chan struct{}, error)     { return nil, nil }

type fakeNotes struct {
	collected notedto.CollectOutput
	lastInput notedto.CollectInput
	single    notedto.NoteOutput
	soon      []analysisdomain.Assignment
}

func (f *fakeNotes) Collect(_ context.Context, input notedto.CollectInput) (notedto.CollectOutput, error) {
	f.lastInput = input
	return f.collected, nil
}
func (f *fakeNotes) CollectNote(context.Context, string) (notedto.NoteOutput, error) {
	return f.single, nil
}
func (f *fakeNotes) DeadlinesSoon(context.Context, notedto.DeadlinesInput) ([]analysisdomain.Assignment, error) {
	return f.soon, nil
}
func (f *fakeNotes) CreateNote(context.Context, notedto.CreateInput) (notedto.CreateOutput, error) {
	return notedto.CreateOutput{}, nil
}

type fakeStore struct{ saved map[string]string }

func (f *fakeStore) Save(_ context.Context, path, content string) (string, error) {
	f.saved[path] = content
	return "/vault/" + path, nil
}

type fakeMessenger struct {
	sent []domain.Message
	err  error
}

func (f *fakeMessenger) Send(_ context.Context, message domain.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, message)
	return nil
}

type fakeMessengers struct{ messenger *fakeMessenger }

func (f fakeMessengers) Messenger(domain.TelegramConfig) (reportout.Messenger, error) {
	return f.messenger, nil
}

type fakeInsights struct {
	requests []domain.InsightRequest
	err      error
}

func (f *fakeInsights) Insights(_ context.Context, req domain.InsightRequest) (string, error) {
	f.requests = append(f.requests, req)
	return "- keep going", f.err
}
func (f *fakeInsights) Quiz(_ context.Context, req domain.InsightRequest) (string, error) {
	f.requests = append(f.requests, req)
	return "- what is a matrix?", f.err
}
func (f *fakeInsights) Models(context.Context) ([]string, error) { return []string{"m1"}, nil }

type fakeInsightFactory struct{ provider *fakeInsights }

func (f fakeInsightFactory) Provider(domain.LLMConfig) (reportout.InsightProvider, error) {
	return f.provider, nil
}

type fakeJournal struct{ entries []domain.JournalEntry }

func (f *fakeJournal) Record(_ context.Context, entry domain.JournalEntry) error {
	f.entries = append([]domain.JournalEntry{entry}, f.entries...)
	return nil
}
func (f *fakeJournal) List(_ context.Context, limit int) ([]domain.JournalEntry, error) {
	if limit < len(f.entries) {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

type fixture struct {
	settings  *fakeSettings
	notes     *fakeNotes
	store     *fakeStore
	messenger *fakeMessenger
	insights  *fakeInsights
	journal   *fakeJournal
	uc        reportin.Usecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := settingsdomain.Defaults()
	s.Timezone = "UTC"
	s.Language = "en"
	f := &fixture{
		settings: &fakeSettings{settings: s},
		notes: &fakeNotes{collected: notedto.CollectOutput{
			Files: 2,
			Sessions: []analysisdomain.StudySession{
				{File: "Math/a.md", Course: "Math", Date: "2026-03-09", Topics: []string{"matrices"}, DurationMin: analysisdomain.Minutes(50), Body: "matrix rank"},
			},
			Assignments: []analysisdomain.Assignment{
				{File: "Math/essay.md", Course: "Math", Title: "Essay", Due: "2026-03-12", Progress: 40},
			},
		}},
		store:     &fakeStore{saved: map[string]string{}},
		messenger: &fakeMessenger{},
		insights:  &fakeInsights{},
		journal:   &fakeJournal{},
	}
	f.uc = usecase.NewInteractor(usecase.Dependencies{
		Settings:   f.settings,
		Notes:      f.notes,
		Analysis:   analysisusecase.NewInteractor(analysisservice.NewAggregationService()),
		Store:      f.store,
		Messengers: fakeMessengers{messenger: f.messenger},
		Insights:   fakeInsightFactory{provider: f.insights},
		Journal:    f.journal,
		Clock:      fixedClock{},
		IDs:        &sequentialIDs{},
		Logger:     logging.Discard(),
	})
	return f
}

func TestGenerateReportUsesPresetAndSaves(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	out, err := f.uc.GenerateReport(context.Background(), dto.ReportInput{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	wantFrom := time.Date(2026, 3, 3, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	if !f.notes.lastInput.From.Equal(wantFrom) {
		t.Fatalf("expected last7 window from %s, got %s", wantFrom, f.notes.lastInput.From)
	}
	if !strings.HasPrefix(out.Notice, "Reflexum: report created → Reflexum/Reports/2026-03-03_2026-03-10__20260310_090000.md") {
		t.Fatalf("unexpected notice %q", out.Notice)
	}
	if len(f.store.saved) != 1 || out.Sessions != 1 || out.Assignments != 1 {
		t.Fatalf("unexpected output %+v", out)
	}
	if len(f.insights.requests) != 0 {
		t.Fatalf("llm must not be called when disabled")
	}
	if len(f.journal.entries) != 1 || f.journal.entries[0].Kind != domain.EntryPeriodReport || f.journal.entries[0].ID == "" {
		t.Fatalf("unexpected journal %+v", f.journal.entries)
	}
}

func TestGenerateReportWithoutNotes(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.notes.collected = notedto.CollectOutput{}

	out, err := f.uc.GenerateReport(context.Background(), dto.ReportInput{})
	if !errors.Is(err, apperrors.ErrNoNotes) {
		t.Fatalf("expected no notes, got %v", err)
	}
	if out.Notice != domain.TextsFor(domain.LangEN).NoNotes || len(f.store.saved) != 0 {
		t.Fatalf("unexpected output %+v", out)
	}
}

func TestGenerateReportAddsInsightsAndQuiz(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.settings.settings.UseLLM = true
	f.settings.settings.IncludeQuiz = true

	if _, err := f.uc.GenerateReport(context.Background(), dto.ReportInput{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(f.insights.requests) != 2 || f.insights.requests[0].Mode != domain.ModePeriod {
		t.Fatalf("unexpected llm requests %+v", f.insights.requests)
	}
	if f.insights.requests[0].Courses[0] != "Math" || f.insights.requests[0].TotalMinutes != 50 {
		t.Fatalf("unexpected period summary %+v", f.insights.requests[0])
	}
	for _, content := range f.store.saved {
		if !strings.Contains(content, "- keep going") || !strings.Contains(content, "- what is a matrix?") {
			t.Fatalf("expected insights and quiz in report:\n%s", content)
		}
	}
}

func TestGenerateReportDegradesOnLLMFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.settings.settings.UseLLM = true
	f.insights.err = errors.New("rate limited")

	out, err := f.uc.GenerateReport(context.Background(), dto.ReportInput{})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(out.Warnings) != 1 || len(f.store.saved) != 1 {
		t.Fatalf("expected saved report with a warning, got %+v", out)
	}
}

func TestGenerateNoteReport(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.settings.settings.UseLLM = true
	f.notes.single = notedto.NoteOutput{
		Path:       "Math/Lecture 1.md",
		Title:      "Lecture 1",
		Session:    &analysisdomain.StudySession{File: "Math/Lecture 1.md", Course: "Math", Words: 360, Body: "eigen values"},
		Assignment: &analysisdomain.Assignment{File: "Math/Lecture 1.md", Due: "2026-03-12", Progress: 0},
	}

	out, err := f.uc.GenerateNoteReport(context.Background(), dto.NoteReportInput{Path: "Math/Lecture 1.md"})
	if err != nil {
		t.Fatalf("note report: %v", err)
	}
	if _, ok := f.store.saved["Reflexum/Reports/one_Lecture_1.md"]; !ok {
		t.Fatalf("unexpected saved paths %v", f.store.saved)
	}
	if out.Notice != `Reflexum: report for "Lecture_1" created.` {
		t.Fatalf("unexpected notice %q", out.Notice)
	}
	if f.insights.requests[0].Mode != domain.ModeSingle || f.insights.requests[0].Body != "eigen values" {
		t.Fatalf("unexpected llm request %+v", f.insights.requests[0])
	}
	if _, err := f.uc.GenerateNoteReport(context.Background(), dto.NoteReportInput{}); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSendDigest(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.settings.settings.TelegramEnabled = true
	f.settings.settings.ChatID = "42"
	f.notes.soon = f.notes.collected.Assignments

	out, err := f.uc.SendDigest(context.Background(), dto.DigestInput{})
	if err != nil {
		t.Fatalf("digest: %v", err)
	}
	if !out.Sent || len(f.messenger.sent) != 1 || f.messenger.sent[0].Format != domain.FormatMarkdownV2 {
		t.Fatalf("unexpected delivery %+v %+v", out, f.messenger.sent)
	}
	if out.PeriodLabel != "03.03–10.03.2026" || !strings.Contains(out.Text, "Essay") {
		t.Fatalf("unexpected digest %+v", out)
	}
	if f.journal.entries[0].Kind != domain.EntryDigest || f.journal.entries[0].Status != domain.StatusSent {
		t.Fatalf("unexpected journal %+v", f.journal.entries)
	}
}

func TestSendDigestRequiresTelegram(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	if _, err := f.uc.SendDigest(context.Background(), dto.DigestInput{}); !errors.Is(err, apperrors.ErrNotConfigured) {
		t.Fatalf("expected not configured, got %v", err)
	}
	out, err := f.uc.SendDigest(context.Background(), dto.DigestInput{DryRun: true})
	if err != nil || out.Sent || out.Text == "" {
		t.Fatalf("expected rendered dry run, got %+v %v", out, err)
	}
}

func TestSendDigestRecordsFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.settings.settings.TelegramEnabled = true
	f.messenger.err = errors.New("status 502")

	if _, err := f.uc.SendDigest(context.Background(), dto.DigestInput{Trigger: domain.TriggerSchedule}); err == nil {
		t.Fatalf("expected send error")
	}
	entry := f.journal.entries[0]
	if entry.Status != domain.StatusFailed || entry.Trigger != domain.TriggerSchedule {
		t.Fatalf("unexpected journal entry %+v", entry)
	}
}

func TestCheckDeadlines(t *testing.T) {
	t.Parallel()
	f := newFixture(t)

	out, err := f.uc.CheckDeadlines(context.Background(), dto.DeadlinesInput{})
	if err != nil || out.Sent || out.Text != "" {
		t.Fatalf("expected nothing to send, got %+v %v", out, err)
	}

	f.notes.soon = f.notes.collected.Assignments
	out, err = f.uc.CheckDeadlines(context.Background(), dto.DeadlinesInput{})
	if err != nil || out.Sent || len(out.Items) != 1 {
		t.Fatalf("expected listing without telegram, got %+v %v", out, err)
	}

	f.settings.settings.TelegramEnabled = true
	f.settings.settings.BotToken = "t"
	f.settings.settings.ChatID = "42"
	out, err = f.uc.CheckDeadlines(context.Background(), dto.DeadlinesInput{})
	if err != nil || !out.Sent {
		t.Fatalf("expected reminder sent, got %+v %v", out, err)
	}
	if f.messenger.sent[0].Format != domain.FormatMarkdown || !strings.Contains(f.messenger.sent[0].Text, "Essay") {
		t.Fatalf("unexpected reminder %+v", f.messenger.sent[0])
	}
}

func TestHistoryAndModels(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	if _, err := f.uc.GenerateReport(context.Background(), dto.ReportInput{}); err != nil {
		t.Fatalf("generate: %v", err)
	}
	history, err := f.uc.History(context.Background(), 0)
	if err != nil || len(history) != 1 || history[0].Kind != "report" {
		t.Fatalf("unexpected history %+v %v", history, err)
	}
	models, err := f.uc.Models(context.Background())
	if err != nil || len(models) != 1 {
		t.Fatalf("unexpected models %v %v", models, err)
	}
}

func TestOverviewAggregatesWithoutSideEffects(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	f.notes.soon = f.notes.collected.Assignments

	out, err := f.uc.Overview(context.Background(), dto.ReportInput{})
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if out.PeriodLabel == "" || out.Files != 2 || out.TotalMinutes != 50 {
		t.Fatalf("unexpected overview %+v", out)
	}
	if len(out.Courses) != 1 || out.Courses[0].Name != "Math" || out.Courses[0].Minutes != 50 || out.Courses[0].Open != 1 {
		t.Fatalf("unexpected courses %+v", out.Courses)
	}
	if len(out.Deadlines) != 1 || out.Deadlines[0].Title != "Essay" {
		t.Fatalf("unexpected deadlines %+v", out.Deadlines)
	}
	if len(f.store.saved) != 0 || len(f.messenger.sent) != 0 || len(f.journal.entries) != 0 {
		t.Fatalf("overview must not save, send or journal")
	}
}
