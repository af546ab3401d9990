package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"dispatch/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const defaultRunTimeout = 10 * time.Second

// Lease is a held cycle lock.
type Lease interface {
	Release(ctx context.Context) error
}

// Locker grants a cycle lock shared by all service instances. TryLock returns a
// nil Lease when somebody else holds the lock.
type Locker interface {
	TryLock(ctx context.Context, name string) (Lease, error)
}

type options struct {
	locker  Locker
	metrics *metrics.Metrics
	tracer  trace.Tracer
	timeout time.Duration
}

type Option func(*options)

func WithLocker(locker Locker) Option {
	return func(o *options) { o.locker = locker }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(o *options) { o.tracer = tracer }
}

// WithRunTimeout bounds a single cycle run.
func WithRunTimeout(d time.Duration) Option {
	return func(o *options) { o.timeout = d }
}

func newOptions(opts []Option) options {
	o := options{
		tracer:  otel.Tracer("dispatch/internal/jobs"),
		timeout: defaultRunTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// cycleJob schedules one cycle. The cycle itself is passed in as run.
type cycleJob struct {
	name     string
	schedule string
	run      func(ctx context.Context) error
	// quiet errors are logged at warn level instead of error.
	quiet []error

	opts   options
	cron   *cron.Cron
	logger *slog.Logger
}

func newCycleJob(
	name, schedule string,
	run func(ctx context.Context) error,
	logger *slog.Logger,
	opts options,
	quiet ...error,
) *cycleJob {
	logger = logger.With(slog.String("component", name+"_job"))
	return &cycleJob{
		name:     name,
		schedule: schedule,
		run:      run,
		quiet:    quiet,
		opts:     opts,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger{logger: logger})),
		),
		logger: logger,
	}
}

func (j *cycleJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), j.opts.timeout)
		defer cancel()
		_ = j.Run(ctx)
	})
	if err != nil {
		return fmt.Errorf("schedule %s job %q: %w", j.name, j.schedule, err)
	}

	j.cron.Start()
	j.logger.Info("job started", slog.String("schedule", j.schedule))
	return nil
}

// Stop stops scheduling and waits for a running cycle to finish.
func (j *cycleJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.Info("job stopped")
}

// Run executes the cycle once, honoring the lock. Errors are logged, counted and
// returned.
func (j *cycleJob) Run(ctx context.Context) error {
	ctx, span := j.opts.tracer.Start(ctx, "cycle "+j.name,
		trace.WithAttributes(attribute.String("dispatch.cycle", j.name)))
	defer span.End()

	start := time.Now()
	outcome, err := j.runLocked(ctx)
	j.opts.metrics.ObserveCycle(j.name, outcome, time.Since(start))
	span.SetAttributes(attribute.String("dispatch.outcome", outcome))

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		j.logError(ctx, err)
	}
	return err
}

func (j *cycleJob) runLocked(ctx context.Context) (string, error) {
	if j.opts.locker == nil {
		return j.outcome(j.run(ctx))
	}

	lease, err := j.opts.locker.TryLock(ctx, j.name)
	if err != nil {
		return metrics.OutcomeFailure, err
	}
	if lease == nil {
		j.logger.DebugContext(ctx, "cycle is running elsewhere, skipping")
		return metrics.OutcomeSkipped, nil
	}
	defer func() {
		if releaseErr := lease.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			j.logger.WarnContext(ctx, "failed to release cycle lock", slog.String("error", releaseErr.Error()))
		}
	}()

	return j.outcome(j.run(ctx))
}

func (j *cycleJob) outcome(err error) (string, error) {
	if err != nil {
		return metrics.OutcomeFailure, err
	}
	return metrics.OutcomeSuccess, nil
}

func (j *cycleJob) logError(ctx context.Context, err error) {
	for _, q := range j.quiet {
		if errors.Is(err, q) {
			j.logger.WarnContext(ctx, "cycle failed", slog.String("error", err.Error()))
			return
		}
	}
	j.logger.ErrorContext(ctx, "cycle failed", slog.String("error", err.Error()))
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
