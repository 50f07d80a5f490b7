package dashboard_test

import (
	"strings"
	"testing"

	reportdto "reflexum/internal/modules/report/dto"
	"reflexum/internal/ui/views/dashboard"
)

func TestRenderDetailWithoutNotes(t *testing.T) {
	t.Parallel()
	out := dashboard.RenderDetail(reportdto.OverviewOutput{PeriodLabel: "01.03–07.03.2026"}, nil)
	if !strings.Contains(out, "No notes in 01.03–07.03.2026") {
		t.Fatalf("unexpected empty detail: %q", out)
	}
}

func TestRenderDetailShowsCourseDeadlinesAndGaps(t *testing.T) {
	t.Parallel()
	course := reportdto.CourseLine{Name: "Math", Minutes: 90, Open: 1, Done: 1, ProgressAvg: 70}
	out := dashboard.RenderDetail(reportdto.OverviewOutput{
		PeriodLabel:  "01.03–07.03.2026",
		Files:        3,
		TotalMinutes: 120,
		Courses:      []reportdto.CourseLine{course},
		Deadlines:    []reportdto.Deadline{{Course: "Math", Title: "Essay", Due: "2026-03-09", Progress: 40}},
		Gaps:         []string{"Physics: no study time"},
	}, &course)
	for _, want := range []string{"120 min", "Math", "70%", "Essay", "Physics: no study time"} {
		if !strings.Contains(out, want) {
			t.Fatalf("detail missing %q: %s", want, out)
		}
	}
}
