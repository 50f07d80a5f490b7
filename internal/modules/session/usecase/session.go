package usecase

import (
	"context"
	"errors"
	"fmt"

	sessiondto "reflexum/internal/modules/session/dto"
	sessionin "reflexum/internal/modules/session/port/in"
	sessionout "reflexum/internal/modules/session/port/out"
	"reflexum/internal/modules/session/service"
	apperrors "reflexum/internal/platform/errors"
)

type Interactor struct {
	svc         *service.SessionService
	activeStore sessionout.ActiveSessionStore
}

func NewInteractor(svc *service.SessionService, activeStore sessionout.ActiveSessionStore) sessionin.Usecase {
	return &Interactor{svc: svc, activeStore: activeStore}
}

func (i *Interactor) Start(ctx context.Context, input sessiondto.StartInput) (sessiondto.StartOutput, error) {
	if i.activeStore == nil {
		return sessiondto.StartOutput{}, fmt.Errorf("%w: active session store", apperrors.ErrNotConfigured)
	}
	_, err := i.activeStore.LoadActive(ctx)
	if err == nil {
		return sessiondto.StartOutput{}, apperrors.ErrActiveSessionExists
	}
	if !errors.Is(err, apperrors.ErrNoActiveSession) {
		return sessiondto.StartOutput{}, err
	}

	active := i.svc.Start(ctx, input.Course, input.Topics, input.Goal)
	if err := i.activeStore.SaveActive(ctx, active); err != nil {
		return sessiondto.StartOutput{}, err
	}
	return sessiondto.StartOutput{SessionID: active.SessionID, Course: active.Course, StartedAt: active.StartedAt}, nil
}

func (i *Interactor) End(ctx context.Context, input sessiondto.EndInput) (sessiondto.EndOutput, error) {
	if i.activeStore == nil {
		return sessiondto.EndOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	if input.SessionID != "" && input.SessionID != active.SessionID {
		return sessiondto.EndOutput{}, fmt.Errorf("%w: session id mismatch", apperrors.ErrInvalidInput)
	}

	session, path, err := i.svc.End(ctx, active, input.Outcome)
	if err != nil {
		return sessiondto.EndOutput{}, err
	}
	if err := i.activeStore.ClearActive(ctx); err != nil {
		return sessiondto.EndOutput{}, err
	}
	return sessiondto.EndOutput{SessionID: session.ID, Course: session.Course, Path: path, DurationMin: session.DurationMin}, nil
}

func (i *Interactor) GetActive(ctx context.Context) (sessiondto.ActiveSessionOutput, error) {
	if i.activeStore == nil {
		return sessiondto.ActiveSessionOutput{}, apperrors.ErrNoActiveSession
	}
	active, err := i.activeStore.LoadActive(ctx)
	if err != nil {
		return sessiondto.ActiveSessionOutput{}, err
	}
	return sessiondto.ActiveSessionOutput{
		SessionID: active.SessionID,
		Course:    active.Course,
		Topics:    active.Topics,
		Goal:      active.Goal,
		StartedAt: active.StartedAt,
	}, nil
}
