package service

import (
	"context"
	"strings"

	"reflexum/internal/modules/session/domain"
	sessionout "reflexum/internal/modules/session/port/out"
	"reflexum/internal/platform/clock"
	"reflexum/internal/platform/id"
)

type SessionService struct {
	clock clock.Clock
	idGen id.Generator
	store sessionout.SessionStore
}

func NewSessionService(clock clock.Clock, idGen id.Generator, store sessionout.SessionStore) *SessionService {
	return &SessionService{clock: clock, idGen: idGen, store: store}
}

func (s *SessionService) Start(_ context.Context, course string, topics []string, goal string) domain.ActiveSession {
	return domain.ActiveSession{
		SessionID: s.idGen.New(),
		Course:    strings.TrimSpace(course),
		Topics:    domain.CleanTopics(topics),
		Goal:      strings.TrimSpace(goal),
		StartedAt: s.clock.Now(),
	}
}

// End measures whole minutes since start and writes the study-session note.
func (s *SessionService) End(ctx context.Context, active domain.ActiveSession, outcome string) (domain.Session, string, error) {
	endedAt := s.clock.Now()
	duration := int(endedAt.Sub(active.StartedAt).Minutes())
	if duration < 0 {
		duration = 0
	}
	session := domain.Session{
		ID:          active.SessionID,
		Course:      active.Course,
		Topics:      active.Topics,
		Goal:        active.Goal,
		Outcome:     strings.TrimSpace(outcome),
		StartedAt:   active.StartedAt,
		EndedAt:     endedAt,
		DurationMin: duration,
	}
	path, err := s.store.Save(ctx, session)
	if err != nil {
		return domain.Session{}, "", err
	}
	return session, path, nil
}
