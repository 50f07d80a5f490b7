package in

import (
	"context"

	"reflexum/internal/modules/report/dto"
)

type Usecase interface {
	GenerateReport(ctx context.Context, input dto.ReportInput) (dto.ReportOutput, error)
	GenerateNoteReport(ctx context.Context, input dto.NoteReportInput) (dto.ReportOutput, error)
	SendDigest(ctx context.Context, input dto.DigestInput) (dto.DigestOutput, error)
	CheckDeadlines(ctx context.Context, input dto.DeadlinesInput) (dto.DeadlinesOutput, error)
	History(ctx context.Context, limit int) ([]dto.HistoryEntry, error)
	Models(ctx context.Context) ([]string, error)
	Overview(ctx context.Context, input dto.ReportInput) (dto.OverviewOutput, error)
}
