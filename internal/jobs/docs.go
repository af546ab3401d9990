// Package jobs runs the dispatch cycles on a cron schedule.
//
// CourierAssignmentJob runs the assignment cycle and CourierMovementJob the
// movement cycle; JobManager starts and stops both. Each run:
//
//   - is skipped while the previous run of the same job is still going
//   - is skipped when a Locker is configured and another instance holds the
//     cycle's lock
//   - gets its own span and is counted in the cycle metrics
//
// Schedules use the six-field cron syntax with seconds, e.g. "* * * * * *".
//
//	manager := jobs.NewJobManager(jobs.DefaultSchedules(), moveHandler, assignHandler, logger,
//	    jobs.WithLocker(locker),
//	    jobs.WithMetrics(m),
//	)
//	if err := manager.StartAll(); err != nil {
//	    return err
//	}
//	defer manager.StopAll()
package jobs
