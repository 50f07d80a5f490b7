package out_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	settingsout "reflexum/internal/modules/settings/adapter/out"
	"reflexum/internal/platform/logging"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()
	store := settingsout.NewFileSettingsStore(filepath.Join(t.TempDir(), ".reflexum", "settings.yaml"), logging.Discard())
	s, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.DatePreset != "last7" || s.IncludeCourses == nil {
		t.Fatalf("expected defaults, got %+v", s)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("language: en\nautoReportEnabled: true\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	s, err := settingsout.NewFileSettingsStore(path, logging.Discard()).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Language != "en" || !s.AutoReportEnabled || s.AutoReportTime != "20:00" || s.DueReminderDays != 2 {
		t.Fatalf("unexpected merged settings: %+v", s)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("language: [en\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}
	if _, err := settingsout.NewFileSettingsStore(path, logging.Discard()).Load(context.Background()); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestSaveRoundTripLeavesNoTempFiles(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), ".reflexum")
	store := settingsout.NewFileSettingsStore(filepath.Join(dir, "settings.yaml"), logging.Discard())
	s, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	s.IncludeCourses = []string{"Math"}
	s.LastAutoReportDate = "2026-03-08T20:00:00Z"
	if err := store.Save(context.Background(), s); err != nil {
		t.Fatalf("save: %v", err)
	}
	reloaded, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(reloaded.IncludeCourses) != 1 || reloaded.LastAutoReportDate != s.LastAutoReportDate {
		t.Fatalf("unexpected reloaded settings: %+v", reloaded)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected only settings.yaml, found %d entries", len(entries))
	}
}

func TestWatchSignalsOnSave(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	store := settingsout.NewFileSettingsStore(filepath.Join(t.TempDir(), "settings.yaml"), logging.Discard())
	changes, err := store.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	s, _ := store.Load(ctx)
	s.Language = "en"
	if err := store.Save(ctx, s); err != nil {
		t.Fatalf("save: %v", err)
	}
	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected a change notification")
	}
	cancel()
	for range changes {
	}
}
