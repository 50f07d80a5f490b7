package dto

import "time"

type StartInput struct {
	Course string
	Topics []string
	Goal   string
}

type StartOutput struct {
	SessionID string
	Course    string
	StartedAt time.Time
}

type EndInput struct {
	SessionID string
	Outcome   string
}

type EndOutput struct {
	SessionID   string
	Course      string
	Path        string
	DurationMin int
}

type ActiveSessionOutput struct {
	SessionID string
	Course    string
	Topics    []string
	Goal      string
	StartedAt time.Time
}
