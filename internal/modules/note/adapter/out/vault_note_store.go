package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	cache "github.com/patrickmn/go-cache"

	"reflexum/internal/modules/note/domain"
	noteout "reflexum/internal/modules/note/port/out"
	apperrors "reflexum/internal/platform/errors"
)

type cachedNote struct {
	modTime time.Time
	size    int64
	content string
}

// VaultNoteStore walks the vault on disk. Contents are cached per path and
// invalidated when the file's mtime or size changes.
type VaultNoteStore struct {
	vaultPath string
	cache     *cache.Cache
}

func NewVaultNoteStore(vaultPath string) noteout.NoteSource {
	return &VaultNoteStore{vaultPath: vaultPath, cache: cache.New(30*time.Minute, 10*time.Minute)}
}

func (s *VaultNoteStore) List(ctx context.Context) ([]domain.NoteFile, error) {
	out := []domain.NoteFile{}
	err := filepath.WalkDir(s.vaultPath, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		rel, relErr := filepath.Rel(s.vaultPath, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}
		if domain.Skip(rel) {
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(rel), ".md") {
			return nil
		}
		info, infoErr := entry.Info()
		if infoErr != nil {
			return infoErr
		}
		out = append(out, domain.NoteFile{Path: rel, ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk vault: %w", err)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (s *VaultNoteStore) Read(_ context.Context, path string) (string, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrNotFound, path)
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if hit, ok := s.cache.Get(abs); ok {
		note := hit.(cachedNote)
		if note.modTime.Equal(info.ModTime()) && note.size == info.Size() {
			return note.content, nil
		}
	}
	raw, err := os.ReadFile(abs)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	s.cache.SetDefault(abs, cachedNote{modTime: info.ModTime(), size: info.Size(), content: string(raw)})
	return string(raw), nil
}

func (s *VaultNoteStore) Create(_ context.Context, path, content string) (string, error) {
	abs, err := s.resolve(path)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", fmt.Errorf("create note directory: %w", err)
	}
	file, err := os.OpenFile(abs, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return "", fmt.Errorf("%w: %s", apperrors.ErrAlreadyExists, path)
		}
		return "", fmt.Errorf("create note: %w", err)
	}
	if _, err := file.WriteString(content); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write note: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close note: %w", err)
	}
	return abs, nil
}

func (s *VaultNoteStore) resolve(path string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(path))
	if filepath.IsAbs(clean) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: path %q escapes the vault", apperrors.ErrInvalidInput, path)
	}
	return filepath.Join(s.vaultPath, clean), nil
}
