package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"reflexum/internal/modules/note/domain"
	"reflexum/internal/modules/note/service"
	apperrors "reflexum/internal/platform/errors"
	"reflexum/internal/platform/logging"
	"reflexum/internal/platform/period"
)

type fakeSource struct {
	files    []domain.NoteFile
	contents map[string]string
	created  map[string]string
}

func (f *fakeSource) List(context.Context) ([]domain.NoteFile, error) {
	return f.files, nil
}

func (f *fakeSource) Read(_ context.Context, path string) (string, error) {
	content, ok := f.contents[path]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return content, nil
}

func (f *fakeSource) Create(_ context.Context, path, content string) (string, error) {
	if _, ok := f.created[path]; ok {
		return "", apperrors.ErrAlreadyExists
	}
	f.created[path] = content
	return "/vault/" + path, nil
}

var now = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func newSource() *fakeSource {
	return &fakeSource{
		files: []domain.NoteFile{
			{Path: "Math/s1.md", ModTime: now.Add(-24 * time.Hour)},
			{Path: "Math/essay.md", ModTime: now.Add(-30 * 24 * time.Hour)},
			{Path: "Bio/lab.md", ModTime: now.Add(-2 * time.Hour)},
			{Path: "broken.md", ModTime: now.Add(-time.Hour)},
		},
		contents: map[string]string{
			"Math/s1.md":    "---\nduration: 30\n---\nstudy #algebra",
			"Math/essay.md": "---\ntype: assignment\ntitle: Essay\ndue: 2026-03-12\n---\n- [ ] draft",
			"Bio/lab.md":    "---\ntype: assignment\ntitle: Lab\ndue: 2026-03-11\nstatus: done\n---\n",
		},
		created: map[string]string{},
	}
}

func TestCollectFiltersByModTime(t *testing.T) {
	t.Parallel()
	svc := service.NewNoteService(newSource(), logging.Discard())
	p, _ := period.New(now.Add(-7*24*time.Hour), now)

	got, err := svc.Collect(context.Background(), p, nil)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if got.Files != 3 {
		t.Fatalf("expected 3 files in period, got %d", got.Files)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].Course != "Math" {
		t.Fatalf("unexpected sessions %+v", got.Sessions)
	}
	if len(got.Assignments) != 1 || got.Assignments[0].Title != "Lab" {
		t.Fatalf("unexpected assignments %+v", got.Assignments)
	}
}

func TestDeadlinesSoonScansWholeVault(t *testing.T) {
	t.Parallel()
	svc := service.NewNoteService(newSource(), logging.Discard())

	got, err := svc.DeadlinesSoon(context.Background(), now, 3)
	if err != nil {
		t.Fatalf("deadlines: %v", err)
	}
	if len(got) != 1 || got[0].Title != "Essay" {
		t.Fatalf("expected only the unfinished essay, got %+v", got)
	}
	got, _ = svc.DeadlinesSoon(context.Background(), now, 1)
	if len(got) != 0 {
		t.Fatalf("expected nothing within one day, got %+v", got)
	}
	if _, err := svc.DeadlinesSoon(context.Background(), now, -1); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCollectNote(t *testing.T) {
	t.Parallel()
	svc := service.NewNoteService(newSource(), logging.Discard())

	got, err := svc.CollectNote(context.Background(), "/Math/essay.md")
	if err != nil {
		t.Fatalf("collect note: %v", err)
	}
	if got.Path != "Math/essay.md" || got.Title != "Essay" || got.Session != nil || got.Assignment == nil {
		t.Fatalf("unexpected single %+v", got)
	}
	if _, err := svc.CollectNote(context.Background(), "Math/figure.png"); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestCreateWritesTemplate(t *testing.T) {
	t.Parallel()
	source := newSource()
	svc := service.NewNoteService(source, logging.Discard())

	path, err := svc.Create(context.Background(), domain.KindAssignment, "Math", now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if path != "/vault/Math/assignment-2026-03-10.md" {
		t.Fatalf("unexpected path %s", path)
	}
	content := source.created["Math/assignment-2026-03-10.md"]
	if !strings.Contains(content, "due: 2026-03-17") || !strings.Contains(content, "type: assignment") {
		t.Fatalf("unexpected template:\n%s", content)
	}
	if _, err := svc.Create(context.Background(), domain.KindAssignment, "Math", now); !errors.Is(err, apperrors.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	if _, err := svc.Create(context.Background(), domain.KindSession, "../x", now); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid folder, got %v", err)
	}
}

func TestSessionTemplateParsesAsSession(t *testing.T) {
	t.Parallel()
	content := service.Template(domain.KindSession, now)
	if service.FileName(domain.KindSession, now) != "2026-03-10-study-session.md" {
		t.Fatalf("unexpected file name")
	}
	session := service.ParseSession("Math/2026-03-10-study-session.md", content, nil)
	if session == nil || session.DurationMin == nil || *session.DurationMin != 90 {
		t.Fatalf("expected template to parse as a 90 minute session, got %+v", session)
	}
	if len(session.Topics) != 1 || session.Topics[0] != "study" {
		t.Fatalf("unexpected topics %v", session.Topics)
	}
	if service.ParseAssignment("a.md", content) != nil {
		t.Fatalf("session template must not be an assignment")
	}
}
