package domain

type MarkdownOptions struct {
	SingleNote bool
	Deadline   string
	Lang       Lang
	NoteTitle  string
	NotePath   string
}

type DigestOptions struct {
	PeriodLabel        string
	Insights           string
	Deadlines          []DeadlineItem
	SingleNoteDeadline string
	Lang               Lang
	Quiz               string
}

// DeadlineItem is an assignment due soon. Empty fields render as the sentinel.
type DeadlineItem struct {
	Course   string
	Title    string
	Due      string
	Progress float64
}
