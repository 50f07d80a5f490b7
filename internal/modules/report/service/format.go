package service

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	"reflexum/internal/modules/report/domain"
)

var (
	lineBreaks = regexp.MustCompile(`\r?\n`)
	isoDay     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// FormatMinutes renders a minute count as hours and minutes, e.g. "2 h 5 min".
func FormatMinutes(mins float64, lang domain.Lang) string {
	safe := 0
	if !math.IsNaN(mins) && !math.IsInf(mins, 0) {
		safe = int(math.Max(0, roundHalfUp(mins)))
	}
	text := domain.TextsFor(lang)
	h, m := safe/60, safe%60
	switch {
	case h <= 0:
		return fmt.Sprintf("%d %s", m, text.MinuteUnit)
	case m == 0:
		return fmt.Sprintf("%d %s", h, text.HourUnit)
	default:
		return fmt.Sprintf("%d %s %d %s", h, text.HourUnit, m, text.MinuteUnit)
	}
}

func roundHalfUp(v float64) float64 {
	return math.Floor(v + 0.5)
}

func round(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(roundHalfUp(v))
}

func escapeCell(s string) string {
	s = lineBreaks.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.ReplaceAll(s, "|", `\|`))
}

// formatDue keeps plain ISO days and re-renders other parseable dates per language.
func formatDue(due string, lang domain.Lang, loc *time.Location) string {
	raw := strings.TrimSpace(due)
	if raw == "" {
		return analysisdomain.NoValue
	}
	if isoDay.MatchString(raw) {
		return raw
	}
	ts, ok := analysisdomain.ParseDate(raw, loc)
	if !ok {
		return raw
	}
	if lang == domain.LangEN {
		return ts.Format("2006-01-02")
	}
	return ts.Format("02.01.2006")
}

func truncateRunes(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}
