package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"reflexum/internal/modules/settings/domain"
	settingsout "reflexum/internal/modules/settings/port/out"
)

const debounce = 300 * time.Millisecond

// FileSettingsStore keeps settings as YAML under the vault state directory.
type FileSettingsStore struct {
	path   string
	logger logrus.FieldLogger
}

func NewFileSettingsStore(path string, logger logrus.FieldLogger) *FileSettingsStore {
	return &FileSettingsStore{path: path, logger: logger}
}

var (
	_ settingsout.SettingsStore = (*FileSettingsStore)(nil)
	_ settingsout.ChangeWatcher = (*FileSettingsStore)(nil)
)

func (s *FileSettingsStore) Path() string {
	return s.path
}

// Load merges the file over the defaults; a missing file yields the defaults.
func (s *FileSettingsStore) Load(_ context.Context) (domain.Settings, error) {
	settings := domain.Defaults()
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return domain.Settings{}, fmt.Errorf("read settings: %w", err)
	}
	if err := yaml.Unmarshal(payload, &settings); err != nil {
		return domain.Settings{}, fmt.Errorf("decode settings: %w", err)
	}
	if settings.IncludeCourses == nil {
		settings.IncludeCourses = []string{}
	}
	return settings, nil
}

// Save replaces the file atomically so a concurrent reader never sees a partial document.
func (s *FileSettingsStore) Save(_ context.Context, settings domain.Settings) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings dir: %w", err)
	}
	payload, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("create temp settings: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp settings: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

// Watch emits once per burst of writes to the settings file until ctx ends.
func (s *FileSettingsStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create settings dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create settings watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch settings dir: %w", err)
	}

	changes := make(chan struct{}, 1)
	name := filepath.Base(s.path)
	go func() {
		defer close(changes)
		defer watcher.Close()

		var timer *time.Timer
		var fire <-chan time.Time
		for {
			select {
			case <-ctx.Done():
				if timer != nil {
					timer.Stop()
				}
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != name {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				if timer == nil {
					timer = time.NewTimer(debounce)
				} else {
					timer.Reset(debounce)
				}
				fire = timer.C
			case <-fire:
				fire = nil
				select {
				case changes <- struct{}{}:
				default:
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				if s.logger != nil {
					s.logger.WithError(err).Warn("settings watcher error")
				}
			}
		}
	}()
	return changes, nil
}
