package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"reflexum/internal/modules/settings/domain"
	"reflexum/internal/modules/settings/dto"
	settingsin "reflexum/internal/modules/settings/port/in"
	settingsout "reflexum/internal/modules/settings/port/out"
	apperrors "reflexum/internal/platform/errors"
)

// Secrets come from the environment and override the file on every load.
type Secrets struct {
	BotToken   string
	ChatID     string
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string
}

type Interactor struct {
	store   settingsout.SettingsStore
	watcher settingsout.ChangeWatcher
	secrets Secrets
	// mu serialises read-modify-write cycles issued by this process.
	mu sync.Mutex
}

func NewInteractor(store settingsout.SettingsStore, watcher settingsout.ChangeWatcher, secrets Secrets) settingsin.Usecase {
	return &Interactor{store: store, watcher: watcher, secrets: secrets}
}

func (i *Interactor) Load(ctx context.Context) (domain.Settings, error) {
	s, err := i.store.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return s.WithSecrets(i.secrets.BotToken, i.secrets.ChatID, i.secrets.LLMAPIKey, i.secrets.LLMBaseURL, i.secrets.LLMModel), nil
}

func (i *Interactor) Show(ctx context.Context) (dto.SettingsOutput, error) {
	s, err := i.Load(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	return i.output(s), nil
}

func (i *Interactor) Set(ctx context.Context, input dto.SetInput) (dto.SettingsOutput, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	s, err := i.store.Load(ctx)
	if err != nil {
		return dto.SettingsOutput{}, err
	}
	if err := s.Set(input.Key, input.Value); err != nil {
		return dto.SettingsOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := s.Validate(); err != nil {
		return dto.SettingsOutput{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	if err := i.store.Save(ctx, s); err != nil {
		return dto.SettingsOutput{}, err
	}
	return i.output(s), nil
}

// MarkAutoReportSent persists the send instant without touching other keys.
// Environment secrets are never written back.
func (i *Interactor) MarkAutoReportSent(ctx context.Context, at time.Time) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	s, err := i.store.Load(ctx)
	if err != nil {
		return err
	}
	s.LastAutoReportDate = at.UTC().Format(time.RFC3339Nano)
	return i.store.Save(ctx, s)
}

func (i *Interactor) Watch(ctx context.Context) (<-chan struct{}, error) {
	if i.watcher == nil {
		return nil, apperrors.ErrNotConfigured
	}
	return i.watcher.Watch(ctx)
}

func (i *Interactor) output(s domain.Settings) dto.SettingsOutput {
	fields := make([]dto.Field, 0, len(domain.Keys))
	for _, key := range domain.Keys {
		fields = append(fields, dto.Field{Key: key, Value: s.Get(key)})
	}
	return dto.SettingsOutput{Path: i.store.Path(), Fields: fields}
}
