package service

import (
	"fmt"
	"sort"
	"strings"

	"reflexum/internal/modules/report/domain"
)

var commonMarkEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "[", `\[`, "]", `\]`, "`", "\\`", "<", `\<`,
)

// ReminderText builds the deadline reminder as CommonMark; the messenger converts it for delivery.
// It returns "" when nothing is due.
func ReminderText(items []domain.DeadlineItem, lang domain.Lang) string {
	if len(items) == 0 {
		return ""
	}
	text := domain.TextsFor(domain.NormalizeLang(string(lang)))
	sorted := append([]domain.DeadlineItem(nil), items...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Due < sorted[j].Due })

	lines := []string{"**" + text.ReminderTitle + "**", ""}
	for _, item := range sorted {
		lines = append(lines, fmt.Sprintf("- %s — %s — %s (%s: %d%%)",
			commonMarkEscaper.Replace(orNone(item.Course)),
			commonMarkEscaper.Replace(orNone(item.Title)),
			commonMarkEscaper.Replace(orNone(item.Due)),
			text.ProgressLabel,
			round(item.Progress),
		))
	}
	return strings.Join(lines, "\n")
}
