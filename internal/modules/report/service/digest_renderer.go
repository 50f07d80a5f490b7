package service

import (
	"fmt"
	"math"
	"sort"
	"strings"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	"reflexum/internal/modules/report/domain"
)

const (
	// DigestLimit is the largest digest, in characters, the renderer emits.
	DigestLimit = 3900

	courseGaugeWidth = 16
	dailyGaugeWidth  = 12
	digestCourses    = 6
	digestDays       = 7
	digestDeadlines  = 6
	digestTopics     = 5
	digestKeywords   = 8
	insightsLimit    = 800
	quizLimit        = 600
)

// DigestRenderer produces the Telegram MarkdownV2 digest.
type DigestRenderer struct{}

func NewDigestRenderer() *DigestRenderer {
	return &DigestRenderer{}
}

func gauge(v, peak float64, width int) string {
	if peak <= 0 {
		return strings.Repeat("·", width)
	}
	filled := round(v / peak * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return strings.Repeat("█", filled) + strings.Repeat("·", width-filled)
}

func bold(s string) string {
	return "*" + EscapeMarkdownV2(s) + "*"
}

func (r *DigestRenderer) Render(agg analysisdomain.Aggregate, opts domain.DigestOptions) string {
	lang := domain.NormalizeLang(string(opts.Lang))
	text := domain.TextsFor(lang)
	dash := EscapeMarkdownV2(analysisdomain.NoValue)

	lines := []string{
		bold("🧠 " + text.DigestTitle + " — " + opts.PeriodLabel),
		"",
		EscapeMarkdownV2("⏱ "+text.TotalTime+":") + " " + EscapeMarkdownV2(FormatMinutes(agg.TotalMinutes, lang)),
		"",
		bold("📊 " + text.ByProjects + ":"),
		r.courseGauges(agg.PerCourse, lang),
		"",
	}

	if len(agg.PerDay) > 0 {
		lines = append(lines, bold(text.DigestDaily), r.dailyGauges(agg.PerDay, lang), "")
	}

	if len(agg.TopTopics) > 0 {
		lines = append(lines, bold("🔥 "+text.TopTopics+":"))
		for i, topic := range agg.TopTopics {
			if i == digestTopics {
				break
			}
			lines = append(lines, fmt.Sprintf("%s %s%d%s", EscapeMarkdownV2("• "+topic.Topic), EscapeMarkdownV2("("), topic.Count, EscapeMarkdownV2(")")))
		}
		lines = append(lines, "")
	}

	if len(agg.TopKeywords) > 0 {
		words := []string{}
		for i, kw := range agg.TopKeywords {
			if i == digestKeywords {
				break
			}
			words = append(words, EscapeMarkdownV2(kw.Word))
		}
		lines = append(lines, bold("🔎 "+text.Keywords+":")+" "+strings.Join(words, EscapeMarkdownV2(", ")), "")
	}

	tasks := agg.Tasks
	lines = append(lines, EscapeMarkdownV2(fmt.Sprintf(text.DigestTasks, tasks.Done, tasks.Total, tasks.Open)), "")

	if a := agg.Assignments; a.Total > 0 {
		lines = append(lines, EscapeMarkdownV2(fmt.Sprintf(text.DigestDeadlines, a.Total, a.Open, a.Overdue)), "")
	}

	switch {
	case opts.SingleNoteDeadline != "":
		lines = append(lines, EscapeMarkdownV2("⏰ "+text.NoteDeadline+":")+" "+EscapeMarkdownV2(opts.SingleNoteDeadline), "")
	case len(opts.Deadlines) > 0:
		lines = append(lines, bold(text.DigestUpcoming), r.deadlines(opts.Deadlines, text, dash), "")
	}

	if s := strings.TrimSpace(opts.Insights); s != "" {
		lines = append(lines, bold("💡 "+text.Insights+":"), EscapeMarkdownV2(truncateRunes(s, insightsLimit)), "")
	}
	if s := strings.TrimSpace(opts.Quiz); s != "" {
		lines = append(lines, bold(text.DigestSelfCheck), EscapeMarkdownV2(truncateRunes(s, quizLimit)), "")
	}
	if len(agg.Gaps) > 0 {
		lines = append(lines, EscapeMarkdownV2(fmt.Sprintf(text.DigestGaps, strings.Join(agg.Gaps, ", "))), "")
	}

	return clampDigest(strings.TrimSpace(strings.Join(lines, "\n")))
}

// clampDigest cuts the digest to DigestLimit characters including the ellipsis
// and never leaves a dangling escape at the cut.
func clampDigest(s string) string {
	runes := []rune(s)
	if len(runes) <= DigestLimit {
		return s
	}
	ellipsis := []rune(EscapeMarkdownV2("…"))
	cut := runes[:DigestLimit-len(ellipsis)]
	trailing := 0
	for i := len(cut) - 1; i >= 0 && cut[i] == '\\'; i-- {
		trailing++
	}
	if trailing%2 == 1 {
		cut = cut[:len(cut)-1]
	}
	return string(cut) + string(ellipsis)
}

func (r *DigestRenderer) courseGauges(perCourse map[string]float64, lang domain.Lang) string {
	items := []pieItem{}
	for _, item := range sortedCourses(perCourse) {
		if !math.IsNaN(item.value) && !math.IsInf(item.value, 0) && item.value > 0 {
			items = append(items, item)
		}
	}
	if len(items) == 0 {
		return EscapeMarkdownV2(analysisdomain.NoValue)
	}
	peak := items[0].value
	sum := 0.0
	for _, item := range items {
		sum += item.value
	}
	dash := EscapeMarkdownV2(analysisdomain.NoValue)
	out := []string{}
	for i, item := range items {
		if i == digestCourses {
			break
		}
		pct := round(item.value / sum * 100)
		out = append(out, fmt.Sprintf("%s %s %s %s %s%d%%%s",
			gauge(item.value, peak, courseGaugeWidth),
			EscapeMarkdownV2(item.label),
			dash,
			EscapeMarkdownV2(FormatMinutes(item.value, lang)),
			EscapeMarkdownV2("("), pct, EscapeMarkdownV2(")"),
		))
	}
	return strings.Join(out, "\n")
}

func (r *DigestRenderer) dailyGauges(perDay map[string]float64, lang domain.Lang) string {
	keys := lastN(datedDays(perDay), digestDays)
	if len(keys) == 0 {
		return EscapeMarkdownV2(analysisdomain.NoValue)
	}
	values := make([]float64, len(keys))
	peak := 0.0
	for i, day := range keys {
		values[i] = math.Max(0, float64(round(perDay[day])))
		peak = math.Max(peak, values[i])
	}
	dash := EscapeMarkdownV2(analysisdomain.NoValue)
	out := make([]string, 0, len(keys))
	for i, day := range keys {
		out = append(out, fmt.Sprintf("%s %s %s %s",
			gauge(values[i], peak, dailyGaugeWidth),
			EscapeMarkdownV2(day),
			dash,
			EscapeMarkdownV2(FormatMinutes(values[i], lang)),
		))
	}
	return strings.Join(out, "\n")
}

func (r *DigestRenderer) deadlines(items []domain.DeadlineItem, text domain.Texts, dash string) string {
	picked := []domain.DeadlineItem{}
	for _, item := range items {
		if item.Due != "" || item.Title != "" || item.Course != "" {
			picked = append(picked, item)
		}
	}
	sort.SliceStable(picked, func(i, j int) bool { return picked[i].Due < picked[j].Due })
	if len(picked) > digestDeadlines {
		picked = picked[:digestDeadlines]
	}
	if len(picked) == 0 {
		return dash
	}
	out := make([]string, 0, len(picked))
	for _, item := range picked {
		out = append(out, fmt.Sprintf("%s %s %s %s %s %s %s %d%%%s",
			EscapeMarkdownV2("•"),
			EscapeMarkdownV2(orNone(item.Course)),
			dash,
			EscapeMarkdownV2(orNone(item.Title)),
			dash,
			EscapeMarkdownV2(orNone(item.Due)),
			EscapeMarkdownV2("("+text.ProgressLabel+":"),
			round(item.Progress),
			EscapeMarkdownV2(")"),
		))
	}
	return strings.Join(out, "\n")
}

func orNone(s string) string {
	if s == "" {
		return analysisdomain.NoValue
	}
	return s
}
