package in

import (
	"context"

	analysisdomain "reflexum/internal/modules/analysis/domain"
	"reflexum/internal/modules/note/dto"
)

type Usecase interface {
	Collect(ctx context.Context, input dto.CollectInput) (dto.CollectOutput, error)
	CollectNote(ctx context.Context, path string) (dto.NoteOutput, error)
	DeadlinesSoon(ctx context.Context, input dto.DeadlinesInput) ([]analysisdomain.Assignment, error)
	CreateNote(ctx context.Context, input dto.CreateInput) (dto.CreateOutput, error)
}
