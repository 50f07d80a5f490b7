package domain

import (
	"strings"
	"time"
)

// DefaultFolder receives sessions that were started without a course.
const DefaultFolder = "Sessions"

type ActiveSession struct {
	SessionID string    `json:"session_id"`
	Course    string    `json:"course"`
	Topics    []string  `json:"topics"`
	Goal      string    `json:"goal"`
	StartedAt time.Time `json:"started_at"`
}

type Session struct {
	ID          string
	Course      string
	Topics      []string
	Goal        string
	Outcome     string
	StartedAt   time.Time
	EndedAt     time.Time
	DurationMin int
}

// CleanTopics trims topics and drops empty and repeated entries.
func CleanTopics(topics []string) []string {
	out := []string{}
	seen := map[string]struct{}{}
	for _, topic := range topics {
		topic = strings.TrimSpace(topic)
		if topic == "" {
			continue
		}
		if _, ok := seen[topic]; ok {
			continue
		}
		seen[topic] = struct{}{}
		out = append(out, topic)
	}
	return out
}
