package usecase

import (
	"time"

	"reflexum/internal/modules/analysis/domain"
	analysisin "reflexum/internal/modules/analysis/port/in"
	"reflexum/internal/modules/analysis/service"
)

type Interactor struct {
	svc *service.AggregationService
}

func NewInteractor(svc *service.AggregationService) analysisin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Analyze(sessions []domain.StudySession, assignments []domain.Assignment, now time.Time) domain.Aggregate {
	return i.svc.Analyze(sessions, assignments, now)
}
