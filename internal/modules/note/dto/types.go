package dto

import (
	"time"

	analysisdomain "reflexum/internal/modules/analysis/domain"
)

type CollectInput struct {
	From    time.Time
	To      time.Time
	Courses []string
}

type CollectOutput struct {
	Files       int
	Sessions    []analysisdomain.StudySession
	Assignments []analysisdomain.Assignment
}

type NoteOutput struct {
	Path       string
	Title      string
	Session    *analysisdomain.StudySession
	Assignment *analysisdomain.Assignment
}

type DeadlinesInput struct {
	Now  time.Time
	Days int
}

type CreateInput struct {
	Kind   string
	Folder string
}

type CreateOutput struct {
	Path string
}
