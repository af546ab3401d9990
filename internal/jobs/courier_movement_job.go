package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// CourierMovementJob runs the movement cycle. Every failure is logged as an error.
type CourierMovementJob struct {
	*cycleJob
}

func NewCourierMovementJob(
	handler commands.MoveCouriersCommandHandler,
	schedule string,
	logger *slog.Logger,
	opts ...Option,
) *CourierMovementJob {
	run := func(ctx context.Context) error {
		return handler.Handle(ctx, commands.NewMoveCouriersCommand())
	}
	return &CourierMovementJob{
		cycleJob: newCycleJob("courier_movement", schedule, run, logger, newOptions(opts)),
	}
}
