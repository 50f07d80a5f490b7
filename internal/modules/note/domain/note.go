package domain

import (
	"fmt"
	"strings"
	"time"
)

// NoteFile is a vault-relative, slash separated Markdown path.
type NoteFile struct {
	Path    string
	ModTime time.Time
}

type Kind string

const (
	KindSession    Kind = "session"
	KindAssignment Kind = "assignment"
)

func ParseKind(value string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "session", "study-session":
		return KindSession, nil
	case "assignment":
		return KindAssignment, nil
	default:
		return "", fmt.Errorf("unknown note kind %q", value)
	}
}

// Skip reports whether a vault-relative path never contributes to reports.
func Skip(path string) bool {
	if strings.HasPrefix(path, "Reflexum/Reports") {
		return true
	}
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, ".") || strings.EqualFold(segment, "templates") {
			return true
		}
	}
	return false
}
