package in

import (
	"context"
	"time"

	"reflexum/internal/modules/report/dto"
	reportin "reflexum/internal/modules/report/port/in"
)

type CLIHandler struct {
	usecase reportin.Usecase
}

func NewCLIHandler(usecase reportin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Report(ctx context.Context, from, to time.Time) (dto.ReportOutput, error) {
	return h.usecase.GenerateReport(ctx, dto.ReportInput{From: from, To: to})
}

func (h CLIHandler) NoteReport(ctx context.Context, path string) (dto.ReportOutput, error) {
	return h.usecase.GenerateNoteReport(ctx, dto.NoteReportInput{Path: path})
}

func (h CLIHandler) Digest(ctx context.Context, from, to time.Time, dryRun bool) (dto.DigestOutput, error) {
	return h.usecase.SendDigest(ctx, dto.DigestInput{From: from, To: to, DryRun: dryRun})
}

func (h CLIHandler) Deadlines(ctx context.Context, dryRun bool) (dto.DeadlinesOutput, error) {
	return h.usecase.CheckDeadlines(ctx, dto.DeadlinesInput{DryRun: dryRun})
}

func (h CLIHandler) History(ctx context.Context, limit int) ([]dto.HistoryEntry, error) {
	return h.usecase.History(ctx, limit)
}

func (h CLIHandler) Models(ctx context.Context) ([]string, error) {
	return h.usecase.Models(ctx)
}

func (h CLIHandler) Overview(ctx context.Context, input dto.ReportInput) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx, input)
}
