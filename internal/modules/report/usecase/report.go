package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	analysisin "reflexum/internal/modules/analysis/port/in"
	notedto "reflexum/internal/modules/note/dto"
	notein "reflexum/internal/modules/note/port/in"
	"reflexum/internal/modules/report/domain"
	"reflexum/internal/modules/report/dto"
	reportin "reflexum/internal/modules/report/port/in"
	reportout "reflexum/internal/modules/report/port/out"
	"reflexum/internal/modules/report/service"
	settingsdomain "reflexum/internal/modules/settings/domain"
	settingsin "reflexum/internal/modules/settings/port/in"
	"reflexum/internal/platform/clock"
	apperrors "reflexum/internal/platform/errors"
	"reflexum/internal/platform/id"
	"reflexum/internal/platform/metrics"
	"reflexum/internal/platform/period"
)

type Dependencies struct {
	Settings   settingsin.Usecase
	Notes      notein.Usecase
	Analysis   analysisin.Usecase
	Store      reportout.ReportStore
	Messengers reportout.MessengerFactory
	Insights   reportout.InsightProviderFactory
	Journal    reportout.Journal
	Clock      clock.Clock
	IDs        id.Generator
	Logger     logrus.FieldLogger
	Metrics    *metrics.Recorder
}

type Interactor struct {
	deps   Dependencies
	digest *service.DigestRenderer
}

func NewInteractor(deps Dependencies) reportin.Usecase {
	return &Interactor{deps: deps, digest: service.NewDigestRenderer()}
}

type request struct {
	settings settingsdomain.Settings
	lang     domain.Lang
	text     domain.Texts
	loc      *time.Location
	now      time.Time
}

func (i *Interactor) begin(ctx context.Context) (request, error) {
	settings, err := i.deps.Settings.Load(ctx)
	if err != nil {
		return request{}, err
	}
	loc, err := settings.Location()
	if err != nil {
		return request{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	lang := domain.NormalizeLang(settings.Language)
	return request{settings: settings, lang: lang, text: domain.TextsFor(lang), loc: loc, now: i.deps.Clock.Now().In(loc)}, nil
}

func (i *Interactor) window(req request, from, to time.Time) (period.Period, error) {
	if from.IsZero() || to.IsZero() {
		return req.settings.DateRange(req.now)
	}
	p, err := period.New(from.In(req.loc), to.In(req.loc))
	if err != nil {
		return period.Period{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return p, nil
}

func (i *Interactor) GenerateReport(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error) {
	req, err := i.begin(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	p, err := i.window(req, input.From, input.To)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	collected, err := i.deps.Notes.Collect(ctx, notedto.CollectInput{From: p.From, To: p.To, Courses: req.settings.IncludeCourses})
	if err != nil {
		return dto.ReportOutput{}, fmt.Errorf("collect notes: %w", err)
	}
	if collected.Files == 0 {
		return dto.ReportOutput{Notice: req.text.NoNotes}, fmt.Errorf("%w: %s", apperrors.ErrNoNotes, req.text.NoNotes)
	}

	agg := i.deps.Analysis.Analyze(collected.Sessions, collected.Assignments, req.now)
	agg.PeriodLabel = domain.PeriodLabel(p.From, p.To)
	insights, quiz, warnings := i.enrich(ctx, req, periodRequest(agg, req.lang))

	content := service.NewMarkdownRenderer(req.loc).Render(agg, insights, quiz, domain.MarkdownOptions{Lang: req.lang})
	i.deps.Metrics.Rendered("period")
	rel := domain.ReportPath(p.From, p.To, true, req.now)
	abs, err := i.deps.Store.Save(ctx, rel, content)
	if err != nil {
		i.record(ctx, domain.JournalEntry{Kind: domain.EntryPeriodReport, Trigger: domain.TriggerManual, Status: domain.StatusFailed, Target: rel, Detail: err.Error(), PeriodFrom: p.From, PeriodTo: p.To})
		return dto.ReportOutput{}, fmt.Errorf("save report: %w", err)
	}
	i.record(ctx, domain.JournalEntry{Kind: domain.EntryPeriodReport, Trigger: domain.TriggerManual, Status: domain.StatusSaved, Target: rel, PeriodFrom: p.From, PeriodTo: p.To})

	return dto.ReportOutput{
		Path:        abs,
		Notice:      fmt.Sprintf(req.text.ReportCreated, rel),
		Files:       collected.Files,
		Sessions:    len(collected.Sessions),
		Assignments: len(collected.Assignments),
		Warnings:    warnings,
	}, nil
}

func (i *Interactor) GenerateNoteReport(ctx context.Context, input dto.NoteReportInput) (dto.ReportOutput, error) {
	req, err := i.begin(ctx)
	if err != nil {
		return dto.ReportOutput{}, err
	}
	if strings.TrimSpace(input.Path) == "" {
		return dto.ReportOutput{}, fmt.Errorf("%w: note path is required", apperrors.ErrInvalidInput)
	}
	note, err := i.deps.Notes.CollectNote(ctx, input.Path)
	if err != nil {
		return dto.ReportOutput{}, err
	}

	sessions := []analysisdomain.StudySession{}
	assignments := []analysisdomain.Assignment{}
	body := ""
	if note.Session != nil {
		sessions = append(sessions, *note.Session)
		body = note.Session.Body
	}
	deadline := ""
	if note.Assignment != nil {
		assignments = append(assignments, *note.Assignment)
		deadline = note.Assignment.Due
	}
	agg := i.deps.Analysis.Analyze(sessions, assignments, req.now)

	ir := periodRequest(agg, req.lang)
	ir.Mode = domain.ModeSingle
	ir.Body = body
	insights, quiz, warnings := i.enrich(ctx, req, ir)

	content := service.NewMarkdownRenderer(req.loc).Render(agg, insights, quiz, domain.MarkdownOptions{
		SingleNote: true,
		Deadline:   deadline,
		Lang:       req.lang,
		NoteTitle:  note.Title,
		NotePath:   note.Path,
	})
	i.deps.Metrics.Rendered("note")
	rel := domain.NoteReportPath(note.Path)
	abs, err := i.deps.Store.Save(ctx, rel, content)
	if err != nil {
		return dto.ReportOutput{}, fmt.Errorf("save report: %w", err)
	}
	i.record(ctx, domain.JournalEntry{Kind: domain.EntryNoteReport, Trigger: domain.TriggerManual, Status: domain.StatusSaved, Target: rel, Detail: note.Path})

	return dto.ReportOutput{
		Path:        abs,
		Notice:      fmt.Sprintf(req.text.NoteReportReady, domain.NoteBasename(note.Path)),
		Files:       1,
		Sessions:    len(sessions),
		Assignments: len(assignments),
		Warnings:    warnings,
	}, nil
}

func (i *Interactor) SendDigest(ctx context.Context, input dto.DigestInput) (dto.DigestOutput, error) {
	req, err := i.begin(ctx)
	if err != nil {
		return dto.DigestOutput{}, err
	}
	trigger := triggerOrManual(input.Trigger)

	var messenger reportout.Messenger
	if !input.DryRun {
		messenger, err = i.messenger(req)
		if err != nil {
			return dto.DigestOutput{Notice: req.text.NotConfigured}, err
		}
	}

	p, err := i.window(req, input.From, input.To)
	if err != nil {
		return dto.DigestOutput{}, err
	}
	collected, err := i.deps.Notes.Collect(ctx, notedto.CollectInput{From: p.From, To: p.To, Courses: req.settings.IncludeCourses})
	if err != nil {
		return dto.DigestOutput{}, fmt.Errorf("collect notes: %w", err)
	}
	agg := i.deps.Analysis.Analyze(collected.Sessions, collected.Assignments, req.now)
	label := domain.PeriodLabel(p.From, p.To)
	agg.PeriodLabel = label
	insights, quiz, warnings := i.enrich(ctx, req, periodRequest(agg, req.lang))

	soon, err := i.deps.Notes.DeadlinesSoon(ctx, notedto.DeadlinesInput{Now: req.now, Days: req.settings.DueReminderDays})
	if err != nil {
		return dto.DigestOutput{}, fmt.Errorf("collect deadlines: %w", err)
	}

	text := i.digest.Render(agg, domain.DigestOptions{
		PeriodLabel: label,
		Insights:    insights,
		Deadlines:   deadlineItems(soon),
		Lang:        req.lang,
		Quiz:        quiz,
	})
	i.deps.Metrics.Rendered("digest")
	out := dto.DigestOutput{Text: text, PeriodLabel: label, Warnings: warnings}
	if input.DryRun {
		return out, nil
	}

	err = messenger.Send(ctx, domain.Message{Text: text, Format: domain.FormatMarkdownV2})
	i.deps.Metrics.Delivered("digest", err)
	entry := domain.JournalEntry{Kind: domain.EntryDigest, Trigger: trigger, Status: domain.StatusSent, Target: req.settings.ChatID, Detail: label, PeriodFrom: p.From, PeriodTo: p.To}
	if err != nil {
		entry.Status = domain.StatusFailed
		entry.Detail = err.Error()
		i.record(ctx, entry)
		return out, fmt.Errorf("send digest: %w", err)
	}
	i.record(ctx, entry)
	out.Sent = true
	out.Notice = req.text.DigestSent
	return out, nil
}

func (i *Interactor) CheckDeadlines(ctx context.Context, input dto.DeadlinesInput) (dto.DeadlinesOutput, error) {
	req, err := i.begin(ctx)
	if err != nil {
		return dto.DeadlinesOutput{}, err
	}
	soon, err := i.deps.Notes.DeadlinesSoon(ctx, notedto.DeadlinesInput{Now: req.now, Days: req.settings.DueReminderDays})
	if err != nil {
		return dto.DeadlinesOutput{}, fmt.Errorf("collect deadlines: %w", err)
	}
	items := deadlineItems(soon)
	out := dto.DeadlinesOutput{Items: make([]dto.Deadline, 0, len(items)), Text: service.ReminderText(items, req.lang)}
	for _, item := range items {
		out.Items = append(out.Items, dto.Deadline{Course: item.Course, Title: item.Title, Due: item.Due, Progress: item.Progress})
	}
	if input.DryRun || out.Text == "" || !req.settings.TelegramReady() {
		return out, nil
	}
	messenger, err := i.messenger(req)
	if err != nil {
		return out, err
	}

	err = messenger.Send(ctx, domain.Message{Text: out.Text, Format: domain.FormatMarkdown})
	i.deps.Metrics.Delivered("reminder", err)
	entry := domain.JournalEntry{Kind: domain.EntryReminder, Trigger: triggerOrManual(input.Trigger), Status: domain.StatusSent, Target: req.settings.ChatID, Detail: fmt.Sprintf("%d deadlines", len(items))}
	if err != nil {
		entry.Status = domain.StatusFailed
		entry.Detail = err.Error()
		i.record(ctx, entry)
		return out, fmt.Errorf("send reminder: %w", err)
	}
	i.record(ctx, entry)
	out.Sent = true
	return out, nil
}

func (i *Interactor) History(ctx context.Context, limit int) ([]dto.HistoryEntry, error) {
	if i.deps.Journal == nil {
		return nil, fmt.Errorf("%w: journal", apperrors.ErrNotConfigured)
	}
	if limit <= 0 {
		limit = 20
	}
	entries, err := i.deps.Journal.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HistoryEntry, 0, len(entries))
	for _, entry := range entries {
		out = append(out, dto.HistoryEntry{
			ID:         entry.ID,
			Kind:       string(entry.Kind),
			Trigger:    entry.Trigger,
			Status:     entry.Status,
			Target:     entry.Target,
			Detail:     entry.Detail,
			PeriodFrom: entry.PeriodFrom,
			PeriodTo:   entry.PeriodTo,
			CreatedAt:  entry.CreatedAt,
		})
	}
	return out, nil
}

func (i *Interactor) Models(ctx context.Context) ([]string, error) {
	req, err := i.begin(ctx)
	if err != nil {
		return nil, err
	}
	provider, err := i.deps.Insights.Provider(llmConfig(req.settings))
	if err != nil {
		return nil, err
	}
	return provider.Models(ctx)
}

// Overview aggregates a period without rendering, saving or sending anything.
func (i *Interactor) Overview(ctx context.Context, input dto.ReportInput) (dto.OverviewOutput, error) {
	req, err := i.begin(ctx)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	p, err := i.window(req, input.From, input.To)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	collected, err := i.deps.Notes.Collect(ctx, notedto.CollectInput{From: p.From, To: p.To, Courses: req.settings.IncludeCourses})
	if err != nil {
		return dto.OverviewOutput{}, fmt.Errorf("collect notes: %w", err)
	}
	soon, err := i.deps.Notes.DeadlinesSoon(ctx, notedto.DeadlinesInput{Now: req.now, Days: req.settings.DueReminderDays})
	if err != nil {
		return dto.OverviewOutput{}, fmt.Errorf("collect deadlines: %w", err)
	}
	agg := i.deps.Analysis.Analyze(collected.Sessions, collected.Assignments, req.now)

	out := dto.OverviewOutput{
		PeriodLabel:  domain.PeriodLabel(p.From, p.To),
		Files:        collected.Files,
		TotalMinutes: agg.TotalMinutes,
		TasksDone:    agg.Tasks.Done,
		TasksTotal:   agg.Tasks.Total,
		Gaps:         agg.Gaps,
	}
	names := make([]string, 0, len(agg.PerCourse)+len(agg.Assignments.Courses))
	seen := map[string]struct{}{}
	for name := range agg.PerCourse {
		seen[name] = struct{}{}
		names = append(names, name)
	}
	for _, name := range agg.Assignments.Courses {
		if _, ok := seen[name]; !ok {
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Slice(names, func(a, b int) bool {
		ma, mb := agg.PerCourse[names[a]], agg.PerCourse[names[b]]
		if ma != mb {
			return ma > mb
		}
		return names[a] < names[b]
	})
	for _, name := range names {
		ca := agg.Assignments.ByCourse[name]
		out.Courses = append(out.Courses, dto.CourseLine{
			Name:        name,
			Minutes:     agg.PerCourse[name],
			Open:        ca.Open,
			Done:        ca.Done,
			Overdue:     ca.Overdue,
			ProgressAvg: ca.ProgressAvg,
		})
	}
	for _, topic := range agg.TopTopics {
		out.Topics = append(out.Topics, dto.TopicLine{Name: topic.Topic, Count: topic.Count})
	}
	for _, kw := range agg.TopKeywords {
		out.Keywords = append(out.Keywords, dto.TopicLine{Name: kw.Word, Count: kw.Count})
	}
	for _, item := range deadlineItems(soon) {
		out.Deadlines = append(out.Deadlines, dto.Deadline{Course: item.Course, Title: item.Title, Due: item.Due, Progress: item.Progress})
	}
	return out, nil
}

func (i *Interactor) messenger(req request) (reportout.Messenger, error) {
	if !req.settings.TelegramEnabled || i.deps.Messengers == nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrNotConfigured, req.text.NotConfigured)
	}
	return i.deps.Messengers.Messenger(domain.TelegramConfig{BotToken: req.settings.BotToken, ChatID: req.settings.ChatID})
}

// enrich asks the LLM for insights and, when enabled, a self-check quiz. Failures
// degrade to empty sections plus a warning.
func (i *Interactor) enrich(ctx context.Context, req request, ir domain.InsightRequest) (string, string, []string) {
	if !req.settings.UseLLM || i.deps.Insights == nil {
		return "", "", nil
	}
	provider, err := i.deps.Insights.Provider(llmConfig(req.settings))
	if err != nil {
		i.deps.Logger.WithError(err).Warn("llm provider unavailable")
		return "", "", []string{req.text.LLMFailed}
	}

	insights, err := provider.Insights(ctx, ir)
	i.deps.Metrics.LLM("insights", err)
	if err != nil {
		i.deps.Logger.WithError(err).Warn("llm insights failed")
		return "", "", []string{req.text.LLMFailed}
	}
	if !req.settings.IncludeQuiz {
		return insights, "", nil
	}
	quiz, err := provider.Quiz(ctx, ir)
	i.deps.Metrics.LLM("quiz", err)
	if err != nil {
		i.deps.Logger.WithError(err).Warn("llm quiz failed")
		return insights, "", []string{req.text.LLMFailed}
	}
	return insights, quiz, nil
}

func (i *Interactor) record(ctx context.Context, entry domain.JournalEntry) {
	if i.deps.Journal == nil {
		return
	}
	if entry.ID == "" && i.deps.IDs != nil {
		entry.ID = i.deps.IDs.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = i.deps.Clock.Now()
	}
	if err := i.deps.Journal.Record(ctx, entry); err != nil && !errors.Is(err, context.Canceled) {
		i.deps.Logger.WithError(err).WithField("kind", entry.Kind).Warn("journal record failed")
	}
}

func periodRequest(agg analysisdomain.Aggregate, lang domain.Lang) domain.InsightRequest {
	courses := make([]string, 0, len(agg.PerCourse))
	for course := range agg.PerCourse {
		courses = append(courses, course)
	}
	sort.Slice(courses, func(a, b int) bool {
		if agg.PerCourse[courses[a]] != agg.PerCourse[courses[b]] {
			return agg.PerCourse[courses[a]] > agg.PerCourse[courses[b]]
		}
		return courses[a] < courses[b]
	})
	topics := make([]string, 0, len(agg.TopTopics))
	for _, topic := range agg.TopTopics {
		topics = append(topics, topic.Topic)
	}
	return domain.InsightRequest{Mode: domain.ModePeriod, Lang: lang, TotalMinutes: agg.TotalMinutes, Courses: courses, Topics: topics}
}

func deadlineItems(assignments []analysisdomain.Assignment) []domain.DeadlineItem {
	out := make([]domain.DeadlineItem, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, domain.DeadlineItem{Course: a.Course, Title: a.Title, Due: a.Due, Progress: a.Progress})
	}
	return out
}

func llmConfig(s settingsdomain.Settings) domain.LLMConfig {
	return domain.LLMConfig{Provider: s.LLMProvider, APIKey: s.LLMAPIKey, BaseURL: s.LLMBaseURL, Model: s.LLMModel}
}

func triggerOrManual(trigger string) string {
	if trigger == "" {
		return domain.TriggerManual
	}
	return trigger
}
