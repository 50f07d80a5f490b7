package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	"reflexum/internal/modules/report/domain"
)

const (
	summaryTopics = 10
	keywordList   = 20
)

// MarkdownRenderer produces the long-form vault report with Mermaid charts.
type MarkdownRenderer struct {
	loc *time.Location
}

func NewMarkdownRenderer(loc *time.Location) *MarkdownRenderer {
	if loc == nil {
		loc = time.Local
	}
	return &MarkdownRenderer{loc: loc}
}

func (r *MarkdownRenderer) Render(agg analysisdomain.Aggregate, insights, quiz string, opts domain.MarkdownOptions) string {
	lang := domain.NormalizeLang(string(opts.Lang))
	text := domain.TextsFor(lang)
	lines := []string{"# " + text.ReportTitle}

	switch {
	case opts.SingleNote && opts.NoteTitle != "":
		lines = append(lines, fmt.Sprintf("_%s: %s_", text.Note, opts.NoteTitle))
	case opts.SingleNote && opts.NotePath != "":
		lines = append(lines, fmt.Sprintf("_%s: %s_", text.Note, opts.NotePath))
	case !opts.SingleNote && agg.PeriodLabel != "":
		lines = append(lines, "_"+agg.PeriodLabel+"_")
	}
	lines = append(lines, "")

	if agg.Empty() {
		if opts.SingleNote {
			lines = append(lines, text.EmptySingle, "")
		} else {
			lines = append(lines, text.EmptyPeriod, "")
		}
	}

	lines = append(lines, fmt.Sprintf("**%s:** %s", text.TotalTime, FormatMinutes(agg.TotalMinutes, lang)))
	if len(agg.TopTopics) > 0 {
		parts := []string{}
		for i, topic := range agg.TopTopics {
			if i == summaryTopics {
				break
			}
			parts = append(parts, fmt.Sprintf("%s (%d)", topic.Topic, topic.Count))
		}
		lines = append(lines, fmt.Sprintf("**%s:** %s", text.TopTopics, strings.Join(parts, ", ")))
	}
	tasks := agg.Tasks
	lines = append(lines, fmt.Sprintf("**%s:** "+text.TasksLine, text.Tasks, tasks.Done, tasks.Total, tasks.Open), "")

	if opts.SingleNote && strings.TrimSpace(opts.Deadline) != "" {
		due := formatDue(opts.Deadline, lang, r.loc)
		lines = append(lines, "## "+text.NoteDeadline, fmt.Sprintf("%s: **%s**", text.Date, due), "")
	}

	if len(agg.PerCourse) > 0 {
		lines = append(lines, "## 📊 "+text.ByProjects)
		for _, item := range sortedCourses(agg.PerCourse) {
			lines = append(lines, fmt.Sprintf("- %s: %d %s", item.label, round(item.value), text.MinuteUnit))
		}
		lines = append(lines, "", coursePie(agg.PerCourse, lang), "")
	}

	if !opts.SingleNote && len(agg.PerDay) > 0 {
		lines = append(lines, "## "+text.DailyDynamics, "", dailyBar(agg.PerDay, lang), "")
		lines = append(lines, fmt.Sprintf("| %s | %s |", text.Day, text.Minutes), "|---|---:|")
		days := make([]string, 0, len(agg.PerDay))
		for day := range agg.PerDay {
			days = append(days, day)
		}
		sort.Strings(days)
		for _, day := range days {
			lines = append(lines, fmt.Sprintf("| %s | %d |", escapeCell(day), round(agg.PerDay[day])))
		}
		lines = append(lines, "")
	}

	if len(agg.TopTopics) > 0 {
		lines = append(lines, "## 🔥 "+text.TopTopics, "", topicPie(agg.TopTopics, lang), "")
	}

	if len(agg.TopKeywords) > 0 {
		parts := []string{}
		for i, kw := range agg.TopKeywords {
			if i == keywordList {
				break
			}
			parts = append(parts, fmt.Sprintf("%s (%d)", kw.Word, kw.Count))
		}
		lines = append(lines, "## 🔎 "+text.Keywords, "", strings.Join(parts, ", "), "", keywordPie(agg.TopKeywords, lang), "")
	}

	a := agg.Assignments
	if a.Total > 0 || len(a.ByCourse) > 0 {
		lines = append(lines, "## "+text.DeadlinesTitle, fmt.Sprintf(text.DeadlineTotals, a.Total, a.Open, a.Done, a.Overdue), "")
		lines = append(lines,
			fmt.Sprintf("| %s | %s | %s | %s | %s |", text.CourseColumn, text.OpenColumn, text.DoneColumn, text.OverdueColumn, text.ProgressColumn),
			"|---|---:|---:|---:|---:|",
		)
		for _, course := range coursesByOpen(a) {
			bucket := a.ByCourse[course]
			lines = append(lines, fmt.Sprintf("| %s | %d | %d | %d | %d%% |", escapeCell(course), bucket.Open, bucket.Done, bucket.Overdue, bucket.ProgressAvg))
		}
		lines = append(lines, "")
	}

	if s := strings.TrimSpace(insights); s != "" {
		lines = append(lines, "## 💡 "+text.Insights, s, "")
	}
	if s := strings.TrimSpace(quiz); s != "" {
		lines = append(lines, "## ✅ "+text.SelfCheck, s, "")
	}
	if len(agg.Gaps) > 0 {
		lines = append(lines, "## "+text.Gaps, strings.Join(agg.Gaps, ", "), "")
	}
	return strings.Join(lines, "\n")
}

// coursesByOpen sorts assignment buckets by open count, keeping first-seen order on ties.
func coursesByOpen(a analysisdomain.AssignmentSummary) []string {
	courses := append([]string(nil), a.Courses...)
	if len(courses) != len(a.ByCourse) {
		courses = courses[:0]
		for course := range a.ByCourse {
			courses = append(courses, course)
		}
		sort.Strings(courses)
	}
	sort.SliceStable(courses, func(i, j int) bool {
		return a.ByCourse[courses[i]].Open > a.ByCourse[courses[j]].Open
	})
	return courses
}
