package dto

import "time"

// ReportInput selects a period; zero bounds fall back to the configured date preset.
type ReportInput struct {
	From time.Time
	To   time.Time
}

type NoteReportInput struct {
	Path string
}

type ReportOutput struct {
	Path        string
	Notice      string
	Files       int
	Sessions    int
	Assignments int
	Warnings    []string
}

type DigestInput struct {
	From    time.Time
	To      time.Time
	Trigger string
	DryRun  bool
}

type DigestOutput struct {
	Text        string
	PeriodLabel string
	Sent        bool
	Notice      string
	Warnings    []string
}

type DeadlinesInput struct {
	Trigger string
	DryRun  bool
}

type Deadline struct {
	Course   string
	Title    string
	Due      string
	Progress float64
}

type DeadlinesOutput struct {
	Items []Deadline
	Text  string
	Sent  bool
}

type HistoryEntry struct {
	ID         string
	Kind       string
	Trigger    string
	Status     string
	Target     string
	Detail     string
	PeriodFrom time.Time
	PeriodTo   time.Time
	CreatedAt  time.Time
}

type CourseLine struct {
	Name        string
	Minutes     float64
	Open        int
	Done        int
	Overdue     int
	ProgressAvg int
}

type TopicLine struct {
	Name  string
	Count int
}

// OverviewOutput is the in-memory aggregate of a period, used by the dashboard.
type OverviewOutput struct {
	PeriodLabel  string
	Files        int
	TotalMinutes float64
	Courses      []CourseLine
	Topics       []TopicLine
	Keywords     []TopicLine
	TasksDone    int
	TasksTotal   int
	Gaps         []string
	Deadlines    []Deadline
}
