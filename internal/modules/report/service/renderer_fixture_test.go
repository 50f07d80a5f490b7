package service_test

import analysisdomain "reflexum/internal/modules/analysis/domain"

func sampleAggregate() analysisdomain.Aggregate {
	return analysisdomain.Aggregate{
		TotalMinutes: 51,
		PerCourse:    map[string]float64{"Math": 50, analysisdomain.NoValue: 1},
		PerDay:       map[string]float64{"2026-03-09": 30, "2026-03-10": 21},
		TopTopics:    []analysisdomain.TopicCount{{Topic: "limits", Count: 2}},
		TopKeywords:  []analysisdomain.KeywordCount{{Word: "rank", Count: 3}},
		Assignments: analysisdomain.AssignmentSummary{
			Total:    1,
			Open:     1,
			ByCourse: map[string]analysisdomain.CourseAssignments{"Bio": {Open: 1, ProgressAvg: 40}},
			Courses:  []string{"Bio"},
		},
		Tasks:       analysisdomain.TaskSummary{Total: 3, Done: 1, Open: 2},
		Gaps:        []string{"Bio"},
		PeriodLabel: "09.03–10.03.2026",
	}
}
