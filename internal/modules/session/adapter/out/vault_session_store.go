package out

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"reflexum/internal/modules/session/domain"
	sessionout "reflexum/internal/modules/session/port/out"
	"reflexum/internal/platform/markdown"
	"reflexum/internal/platform/slug"
)

type VaultSessionStore struct {
	vaultPath string
}

func NewVaultSessionStore(vaultPath string) sessionout.SessionStore {
	return &VaultSessionStore{vaultPath: vaultPath}
}

// Save writes a study-session note under <vault>/<course>/, or
// <vault>/Sessions/ when the session has no course.
func (s *VaultSessionStore) Save(_ context.Context, session domain.Session) (string, error) {
	folder := domain.DefaultFolder
	if session.Course != "" {
		folder = slug.Sanitize(session.Course, domain.DefaultFolder)
	}
	dir := filepath.Join(s.vaultPath, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create session dir: %w", err)
	}

	meta := map[string]any{
		"type":       "study-session",
		"date":       session.StartedAt.Format("2006-01-02"),
		"duration":   session.DurationMin,
		"session_id": session.ID,
		"started_at": session.StartedAt.Format(time.RFC3339),
		"ended_at":   session.EndedAt.Format(time.RFC3339),
	}
	if session.Course != "" {
		meta["course"] = session.Course
	}
	if len(session.Topics) > 0 {
		meta["topics"] = session.Topics
	}
	rendered, err := markdown.RenderFrontmatter(meta, sessionBody(session))
	if err != nil {
		return "", err
	}

	base := session.StartedAt.Format("2006-01-02-150405") + "-study-session"
	for attempt := 0; attempt < 100; attempt++ {
		name := base + ".md"
		if attempt > 0 {
			name = fmt.Sprintf("%s-%d.md", base, attempt+1)
		}
		path := filepath.Join(dir, name)
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create session note: %w", err)
		}
		if _, err := file.WriteString(rendered); err != nil {
			_ = file.Close()
			return "", fmt.Errorf("write session note: %w", err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("close session note: %w", err)
		}
		return path, nil
	}
	return "", fmt.Errorf("session note name %s is exhausted", base)
}

func sessionBody(session domain.Session) string {
	b := strings.Builder{}
	b.WriteString("## Цели / Goals\n\n")
	if session.Goal != "" {
		b.WriteString(session.Goal + "\n")
	}
	b.WriteString("\n## Итоги / Outcome\n\n")
	if session.Outcome != "" {
		b.WriteString(session.Outcome + "\n")
	}
	fmt.Fprintf(&b, "\n- Duration: %d min\n", session.DurationMin)
	return b.String()
}
