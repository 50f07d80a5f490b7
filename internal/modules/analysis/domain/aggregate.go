package domain

type TopicCount struct {
	Topic string
	Count int
}

type KeywordCount struct {
	Word  string
	Count int
}

type CourseAssignments struct {
	Open        int
	Done        int
	Overdue     int
	ProgressAvg int
}

type AssignmentSummary struct {
	Total    int
	Done     int
	Overdue  int
	Open     int
	ByCourse map[string]CourseAssignments
	// Courses lists ByCourse keys in first-seen order.
	Courses []string
}

type TaskSummary struct {
	Total int
	Done  int
	Open  int
}

// Aggregate is rebuilt from scratch for every report.
type Aggregate struct {
	TotalMinutes float64
	PerCourse    map[string]float64
	PerDay       map[string]float64
	TopTopics    []TopicCount
	TopKeywords  []KeywordCount
	Assignments  AssignmentSummary
	Tasks        TaskSummary
	Gaps         []string
	PeriodLabel  string
}

// Empty reports whether the aggregate carries nothing worth rendering.
func (a Aggregate) Empty() bool {
	return a.TotalMinutes == 0 &&
		len(a.PerCourse) == 0 &&
		len(a.PerDay) == 0 &&
		len(a.TopTopics) == 0 &&
		len(a.TopKeywords) == 0 &&
		a.Assignments.Total == 0 &&
		a.Tasks.Total == 0
}
