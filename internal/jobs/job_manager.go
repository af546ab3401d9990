package jobs

import (
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
)

// Schedules holds the cron expressions of the two cycles.
type Schedules struct {
	Assign string
	Move   string
}

// DefaultSchedules runs both cycles every second.
func DefaultSchedules() Schedules {
	return Schedules{
		Assign: "* * * * * *",
		Move:   "* * * * * *",
	}
}

// JobManager starts and stops the dispatch cycle jobs together.
type JobManager struct {
	courierMovementJob   *CourierMovementJob
	courierAssignmentJob *CourierAssignmentJob
}

func NewJobManager(
	schedules Schedules,
	moveCouriersHandler commands.MoveCouriersCommandHandler,
	assignCourierHandler commands.AssignCourierCommandHandler,
	logger *slog.Logger,
	opts ...Option,
) *JobManager {
	return &JobManager{
		courierMovementJob:   NewCourierMovementJob(moveCouriersHandler, schedules.Move, logger, opts...),
		courierAssignmentJob: NewCourierAssignmentJob(assignCourierHandler, schedules.Assign, logger, opts...),
	}
}

// StartAll starts every job. If one fails to start, the ones already started are stopped.
func (jm *JobManager) StartAll() error {
	if err := jm.courierAssignmentJob.Start(); err != nil {
		return fmt.Errorf("failed to start courier assignment job: %w", err)
	}

	if err := jm.courierMovementJob.Start(); err != nil {
		jm.courierAssignmentJob.Stop()
		return fmt.Errorf("failed to start courier movement job: %w", err)
	}

	return nil
}

// StopAll stops every job and waits for running cycles.
func (jm *JobManager) StopAll() {
	jm.courierMovementJob.Stop()
	jm.courierAssignmentJob.Stop()
}
