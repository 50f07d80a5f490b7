package in

import (
	"context"
	"time"

	"reflexum/internal/modules/settings/domain"
	"reflexum/internal/modules/settings/dto"
)

type Usecase interface {
	Load(ctx context.Context) (domain.Settings, error)
	Show(ctx context.Context) (dto.SettingsOutput, error)
	Set(ctx context.Context, input dto.SetInput) (dto.SettingsOutput, error)
	MarkAutoReportSent(ctx context.Context, at time.Time) error
	Watch(ctx context.Context) (<-chan struct{}, error)
}
