package domain

import "time"

type EntryKind string

const (
	EntryPeriodReport EntryKind = "report"
	EntryNoteReport   EntryKind = "note-report"
	EntryDigest       EntryKind = "digest"
	EntryReminder     EntryKind = "reminder"
)

const (
	StatusSaved  = "saved"
	StatusSent   = "sent"
	StatusFailed = "failed"
)

const (
	TriggerManual   = "manual"
	TriggerSchedule = "schedule"
)

// JournalEntry records one produced report or outbound message.
type JournalEntry struct {
	ID         string
	Kind       EntryKind
	Trigger    string
	Status     string
	Target     string
	Detail     string
	PeriodFrom time.Time
	PeriodTo   time.Time
	CreatedAt  time.Time
}
