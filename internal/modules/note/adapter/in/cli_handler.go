package in

import (
	"context"

	"reflexum/internal/modules/note/dto"
	notein "reflexum/internal/modules/note/port/in"
)

type CLIHandler struct {
	usecase notein.Usecase
}

func NewCLIHandler(usecase notein.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, kind, folder string) (dto.CreateOutput, error) {
	return h.usecase.CreateNote(ctx, dto.CreateInput{Kind: kind, Folder: folder})
}
