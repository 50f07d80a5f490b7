package domain

import (
	"fmt"
	"path"
	"strings"
	"time"

	"reflexum/internal/platform/slug"
)

const ReportsDir = "Reflexum/Reports"

// ReportPath names a period report; unique appends a timestamp so reruns never collide.
func ReportPath(from, to time.Time, unique bool, now time.Time) string {
	base := fmt.Sprintf("%s_%s", from.Format("2006-01-02"), to.Format("2006-01-02"))
	if unique {
		base += "__" + now.Format("20060102_150405")
	}
	return ReportsDir + "/" + base + ".md"
}

func NoteBasename(notePath string) string {
	base := strings.TrimSuffix(path.Base(strings.ReplaceAll(notePath, "\\", "/")), ".md")
	return slug.Sanitize(base, "note")
}

func NoteReportPath(notePath string) string {
	return ReportsDir + "/one_" + NoteBasename(notePath) + ".md"
}

// PeriodLabel renders "DD.MM–DD.MM.YYYY" using the year of the end boundary.
func PeriodLabel(from, to time.Time) string {
	return fmt.Sprintf("%s–%s", from.Format("02.01"), to.Format("02.01.2006"))
}
