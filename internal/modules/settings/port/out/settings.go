package out

import (
	"context"

	"reflexum/internal/modules/settings/domain"
)

type SettingsStore interface {
	Load(ctx context.Context) (domain.Settings, error)
	Save(ctx context.Context, settings domain.Settings) error
	Path() string
}

// ChangeWatcher signals after the persisted settings change on disk.
type ChangeWatcher interface {
	Watch(ctx context.Context) (<-chan struct{}, error)
}
