package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	reportout "reflexum/internal/modules/report/port/out"
	apperrors "reflexum/internal/platform/errors"
)

type VaultReportStore struct {
	vaultPath string
}

func NewVaultReportStore(vaultPath string) reportout.ReportStore {
	return &VaultReportStore{vaultPath: vaultPath}
}

// Save overwrites path atomically; period reports carry a timestamp so only note reports are replaced.
func (s *VaultReportStore) Save(_ context.Context, path, content string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: report path %q escapes the vault", apperrors.ErrInvalidInput, path)
	}
	abs := filepath.Join(s.vaultPath, clean)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create reports directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(abs), ".report-*.md")
	if err != nil {
		return "", fmt.Errorf("create temp report: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return "", fmt.Errorf("chmod report: %w", err)
	}
	if err := os.Rename(tmp.Name(), abs); err != nil {
		return "", fmt.Errorf("move report: %w", err)
	}
	return abs, nil
}
