package service

import (
	"fmt"
	"strings"
	"time"

	"reflexum/internal/modules/note/domain"
)

// FileName is the template file name for a note created on day now.
func FileName(kind domain.Kind, now time.Time) string {
	date := now.Format("2006-01-02")
	if kind == domain.KindAssignment {
		return "assignment-" + date + ".md"
	}
	return date + "-study-session.md"
}

// Template renders a bilingual starter note. Assignments are due a week after now.
func Template(kind domain.Kind, now time.Time) string {
	date := now.Format("2006-01-02")
	var b strings.Builder
	b.WriteString("---\n")
	switch kind {
	case domain.KindAssignment:
		fmt.Fprintf(&b, "type: assignment\ndate: %s\nproject: \"\"\ncourse: \"\"\ntitle: \"\"\ndue: %s\nstatus: \"open\"\n",
			date, now.AddDate(0, 0, 7).Format("2006-01-02"))
		b.WriteString("---\n\n")
		b.WriteString("## Критерии готовности / Acceptance criteria\n\n")
		b.WriteString("## Шаги / Steps\n- [ ] ...\n- [ ] ...\n\n")
		b.WriteString("## Контекст / Context\n\n")
		b.WriteString("#assignment\n")
	default:
		fmt.Fprintf(&b, "type: study-session\ndate: %s\nproject: \"\"\ncourse: \"\"\ntopics: [\"\", \"\"]\nmaterials: []\nduration: 90\n", date)
		b.WriteString("---\n\n")
		b.WriteString("## Цели / Goals\n\n")
		b.WriteString("## Основные идеи / Key ideas\n\n")
		b.WriteString("## Источники / Sources\n\n")
		b.WriteString("## Заметки / Notes\n\n")
		b.WriteString("## Задачи / Tasks\n- [ ] ...\n- [ ] ...\n\n")
		b.WriteString("#study\n")
	}
	return b.String()
}
