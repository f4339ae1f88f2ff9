package retention

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dhima/activity-logger/pkg/clock"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const sweepTimeout = 5 * time.Minute

// Store defines the DB operations required by the retention engine.
type Store interface {
	ArchiveActivitiesBefore(ctx context.Context, cutoff time.Time) (int64, error)
	PurgeArchivedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

// Policy is how long activity stays in each retention stage.
type Policy struct {
	ArchiveAfter time.Duration
	PurgeAfter   time.Duration
}

// Result counts the rows one sweep touched.
type Result struct {
	Archived int64
	Purged   int64
}

// Engine archives and purges stored activity on a cron schedule.
type Engine struct {
	store  Store
	policy Policy
	logger *zap.Logger
	clock  clock.Clock
	cron   *cron.Cron
}

// NewEngine constructs a retention engine that sweeps on schedule.
func NewEngine(store Store, policy Policy, schedule string, logger *zap.Logger) (*Engine, error) {
	return NewEngineWithClock(store, policy, schedule, logger, clock.RealClock{})
}

// NewEngineWithClock allows injecting a clock for tests.
func NewEngineWithClock(store Store, policy Policy, schedule string, logger *zap.Logger, c clock.Clock) (*Engine, error) {
	if policy.ArchiveAfter <= 0 || policy.PurgeAfter <= 0 {
		return nil, errors.New("retention durations must be positive")
	}

	logger = logger.With(zap.String("component", "retention"))
	parser := cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	cl := cronLogger{logger: logger}

	e := &Engine{
		store:  store,
		policy: policy,
		logger: logger,
		clock:  c,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
	}

	if _, err := e.cron.AddFunc(schedule, e.scheduledSweep); err != nil {
		return nil, fmt.Errorf("invalid retention schedule %q: %w", schedule, err)
	}
	return e, nil
}

// Run sweeps once immediately, then on schedule until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info("retention engine started",
		zap.Duration("archive_after", e.policy.ArchiveAfter),
		zap.Duration("purge_after", e.policy.PurgeAfter))

	e.scheduledSweep()
	e.cron.Start()

	<-ctx.Done()
	<-e.cron.Stop().Done()
	e.logger.Info("retention engine stopped")
	return ctx.Err()
}

// Sweep archives active rows older than ArchiveAfter, then purges archived
// rows older than PurgeAfter.
func (e *Engine) Sweep(ctx context.Context) (Result, error) {
	now := e.clock.Now()

	archived, err := e.store.ArchiveActivitiesBefore(ctx, now.Add(-e.policy.ArchiveAfter))
	if err != nil {
		return Result{}, fmt.Errorf("failed to archive activities: %w", err)
	}

	purged, err := e.store.PurgeArchivedBefore(ctx, now.Add(-e.policy.PurgeAfter))
	if err != nil {
		return Result{Archived: archived}, fmt.Errorf("failed to purge activities: %w", err)
	}

	return Result{Archived: archived, Purged: purged}, nil
}

func (e *Engine) scheduledSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	res, err := e.Sweep(ctx)
	if err != nil {
		e.logger.Error("retention sweep failed", zap.Error(err))
		return
	}
	e.logger.Info("retention sweep completed",
		zap.Int64("archived", res.Archived),
		zap.Int64("purged", res.Purged))
}

// cronLogger adapts zap to cron.Logger.
type cronLogger struct {
	logger *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Debugw(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
