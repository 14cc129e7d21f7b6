// Package job provides background job scheduling with distributed locking.
package job

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"marketplace-search-service/pkg/locker"
)

// Task is one unit of periodic work. The error return decides lock handling:
// on success the lock is held for the full interval as a cooldown, on failure
// it is released immediately so another instance can retry.
type Task func(ctx context.Context) error

// Scheduler runs a named task on a fixed interval, guarded by a distributed
// lock so only one instance executes it at a time. The trend maintenance and
// feed import jobs each get their own Scheduler.
type Scheduler struct {
	name     string
	task     Task
	interval time.Duration
	timeout  time.Duration
	logger   *zap.Logger
	locker   locker.DistributedLocker

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// Config holds scheduler configuration.
type Config struct {
	Interval  time.Duration
	Timeout   time.Duration
	OnStartup bool
}

// NewScheduler creates a scheduler for one periodic task.
func NewScheduler(
	name string,
	task Task,
	cfg Config,
	logger *zap.Logger,
	locker locker.DistributedLocker,
) *Scheduler {
	return &Scheduler{
		name:     name,
		task:     task,
		interval: cfg.Interval,
		timeout:  cfg.Timeout,
		logger:   logger.With(zap.String("job", name)),
		locker:   locker,
	}
}

// Start begins the background loop.
func (s *Scheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler, waiting for an in-flight run.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.execute()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute()
		}
	}
}

// execute runs one guarded iteration. The lock TTL equals the interval
// (cooldown model): a successful run keeps the lock until the next tick so
// other instances skip, a failed run releases it for immediate retry
// elsewhere.
func (s *Scheduler) execute() {
	lockKey := "job:" + s.name + ":lock"

	acquired, err := s.locker.Acquire(s.ctx, lockKey, s.interval)
	if err != nil {
		s.logger.Error("failed to acquire distributed lock", zap.Error(err))

		return
	}
	if !acquired {
		s.logger.Debug("another instance holds the lock, skipping run")

		return
	}

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	if err := s.task(ctx); err != nil {
		if relErr := s.locker.Release(s.ctx, lockKey); relErr != nil {
			s.logger.Error("failed to release lock after task error", zap.Error(relErr))
		}
		s.logger.Warn("task failed, lock released for retry", zap.Error(err))

		return
	}

	s.logger.Info("task completed, lock held for cooldown",
		zap.Duration("cooldown", s.interval),
	)
}
