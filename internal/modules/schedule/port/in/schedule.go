package in

import (
	"context"

	"reflexum/internal/modules/schedule/dto"
)

type Usecase interface {
	Tick(ctx context.Context) (dto.TickOutput, error)
	Status(ctx context.Context) (dto.StatusOutput, error)
	Remind(ctx context.Context) (dto.ReminderOutput, error)
}
