package in

import (
	"time"

	"reflexum/internal/modules/analysis/domain"
)

type Usecase interface {
	Analyze(sessions []domain.StudySession, assignments []domain.Assignment, now time.Time) domain.Aggregate
}
