package out

import (
	"context"

	"reflexum/internal/modules/note/domain"
)

// NoteSource reads and creates Markdown notes inside the vault. Paths are
// vault-relative and slash separated.
type NoteSource interface {
	List(ctx context.Context) ([]domain.NoteFile, error)
	Read(ctx context.Context, path string) (string, error)
	Create(ctx context.Context, path, content string) (string, error)
}
