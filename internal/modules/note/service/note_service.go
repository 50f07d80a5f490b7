package service

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	"reflexum/internal/modules/note/domain"
	noteout "reflexum/internal/modules/note/port/out"
	apperrors "reflexum/internal/platform/errors"
	"reflexum/internal/platform/period"
)

type Collection struct {
	Files       int
	Sessions    []analysisdomain.StudySession
	Assignments []analysisdomain.Assignment
}

type Single struct {
	Path       string
	Title      string
	Session    *analysisdomain.StudySession
	Assignment *analysisdomain.Assignment
}

type NoteService struct {
	source noteout.NoteSource
	logger logrus.FieldLogger
}

func NewNoteService(source noteout.NoteSource, logger logrus.FieldLogger) *NoteService {
	return &NoteService{source: source, logger: logger}
}

// Collect parses every note modified within p. Unreadable notes are logged and skipped.
func (s *NoteService) Collect(ctx context.Context, p period.Period, courses []string) (Collection, error) {
	files, err := s.source.List(ctx)
	if err != nil {
		return Collection{}, err
	}
	out := Collection{Sessions: []analysisdomain.StudySession{}, Assignments: []analysisdomain.Assignment{}}
	for _, file := range files {
		if !p.Contains(file.ModTime) {
			continue
		}
		out.Files++
		content, err := s.source.Read(ctx, file.Path)
		if err != nil {
			s.logger.WithError(err).WithField("path", file.Path).Warn("skip unreadable note")
			continue
		}
		if session := ParseSession(file.Path, content, courses); session != nil {
			out.Sessions = append(out.Sessions, *session)
		}
		if assignment := ParseAssignment(file.Path, content); assignment != nil {
			out.Assignments = append(out.Assignments, *assignment)
		}
	}
	return out, nil
}

// CollectNote parses one note without a course filter.
func (s *NoteService) CollectNote(ctx context.Context, notePath string) (Single, error) {
	notePath = strings.TrimPrefix(path.Clean(strings.ReplaceAll(notePath, "\\", "/")), "/")
	if notePath == "." || !strings.HasSuffix(strings.ToLower(notePath), ".md") {
		return Single{}, fmt.Errorf("%w: markdown note path required", apperrors.ErrInvalidInput)
	}
	content, err := s.source.Read(ctx, notePath)
	if err != nil {
		return Single{}, err
	}
	return Single{
		Path:       notePath,
		Title:      NoteTitle(notePath, content),
		Session:    ParseSession(notePath, content, nil),
		Assignment: ParseAssignment(notePath, content),
	}, nil
}

// DeadlinesSoon scans the whole vault for unfinished assignments due within days of now.
func (s *NoteService) DeadlinesSoon(ctx context.Context, now time.Time, days int) ([]analysisdomain.Assignment, error) {
	if days < 0 {
		return nil, fmt.Errorf("%w: reminder window must not be negative", apperrors.ErrInvalidInput)
	}
	files, err := s.source.List(ctx)
	if err != nil {
		return nil, err
	}
	limit := now.Add(time.Duration(days) * 24 * time.Hour)
	out := []analysisdomain.Assignment{}
	for _, file := range files {
		content, err := s.source.Read(ctx, file.Path)
		if err != nil {
			s.logger.WithError(err).WithField("path", file.Path).Warn("skip unreadable note")
			continue
		}
		assignment := ParseAssignment(file.Path, content)
		if assignment == nil || assignment.Progress >= 100 {
			continue
		}
		due, ok := analysisdomain.ParseDate(assignment.Due, now.Location())
		if !ok || due.Before(now) || due.After(limit) {
			continue
		}
		out = append(out, *assignment)
	}
	return out, nil
}

// Create writes a template note into folder, refusing to overwrite.
func (s *NoteService) Create(ctx context.Context, kind domain.Kind, folder string, now time.Time) (string, error) {
	folder = strings.Trim(strings.ReplaceAll(folder, "\\", "/"), "/")
	if strings.Contains("/"+folder+"/", "/../") {
		return "", fmt.Errorf("%w: folder must stay inside the vault", apperrors.ErrInvalidInput)
	}
	rel := FileName(kind, now)
	if folder != "" {
		rel = path.Join(folder, rel)
	}
	return s.source.Create(ctx, rel, Template(kind, now))
}
