package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// CourierAssignmentJob runs the assignment cycle. A cycle that finds no free
// courier fails with commands.ErrNoFreeCouriersFound, which is logged as a warning.
type CourierAssignmentJob struct {
	*cycleJob
}

func NewCourierAssignmentJob(
	handler commands.AssignCourierCommandHandler,
	schedule string,
	logger *slog.Logger,
	opts ...Option,
) *CourierAssignmentJob {
	run := func(ctx context.Context) error {
		return handler.Handle(ctx, commands.NewAssignCourierCommand())
	}
	return &CourierAssignmentJob{
		cycleJob: newCycleJob("courier_assignment", schedule, run, logger, newOptions(opts),
			commands.ErrNoFreeCouriersFound),
	}
}
