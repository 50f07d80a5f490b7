package usecase

import (
	"context"
	"fmt"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	"reflexum/internal/modules/note/domain"
	"reflexum/internal/modules/note/dto"
	notein "reflexum/internal/modules/note/port/in"
	"reflexum/internal/modules/note/service"
	"reflexum/internal/platform/clock"
	apperrors "reflexum/internal/platform/errors"
	"reflexum/internal/platform/period"
)

type Interactor struct {
	svc   *service.NoteService
	clock clock.Clock
}

func NewInteractor(svc *service.NoteService, clk clock.Clock) notein.Usecase {
	return &Interactor{svc: svc, clock: clk}
}

func (i *Interactor) Collect(ctx context.Context, input dto.CollectInput) (dto.CollectOutput, error) {
	p, err := period.New(input.From, input.To)
	if err != nil {
		return dto.CollectOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	collection, err := i.svc.Collect(ctx, p, input.Courses)
	if err != nil {
		return dto.CollectOutput{}, err
	}
	return dto.CollectOutput{Files: collection.Files, Sessions: collection.Sessions, Assignments: collection.Assignments}, nil
}

func (i *Interactor) CollectNote(ctx context.Context, path string) (dto.NoteOutput, error) {
	single, err := i.svc.CollectNote(ctx, path)
	if err != nil {
		return dto.NoteOutput{}, err
	}
	return dto.NoteOutput{Path: single.Path, Title: single.Title, Session: single.Session, Assignment: single.Assignment}, nil
}

func (i *Interactor) DeadlinesSoon(ctx context.Context, input dto.DeadlinesInput) ([]analysisdomain.Assignment, error) {
	now := input.Now
	if now.IsZero() {
		now = i.clock.Now()
	}
	return i.svc.DeadlinesSoon(ctx, now, input.Days)
}

func (i *Interactor) CreateNote(ctx context.Context, input dto.CreateInput) (dto.CreateOutput, error) {
	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		return dto.CreateOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	path, err := i.svc.Create(ctx, kind, input.Folder, i.clock.Now())
	if err != nil {
		return dto.CreateOutput{}, err
	}
	return dto.CreateOutput{Path: path}, nil
}
