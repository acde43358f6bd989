// Package scheduler runs recurring maintenance tasks on fixed intervals.
package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSchedulerNotRunning is returned when tasks are registered after Stop
var ErrSchedulerNotRunning = errors.New("scheduler is not running")

// Task is a unit of recurring work
type Task interface {
	// Name identifies the task in logs
	Name() string
	// Run executes one iteration of the task
	Run(ctx context.Context) error
}

// Config holds scheduler configuration
type Config struct {
	// TaskTimeout bounds a single task run
	TaskTimeout time.Duration
}

// DefaultConfig returns default scheduler configuration
func DefaultConfig() Config {
	return Config{
		TaskTimeout: 5 * time.Minute,
	}
}

type registeredTask struct {
	task       Task
	interval   time.Duration
	runAtStart bool
}

// Scheduler drives registered tasks on their intervals
type Scheduler struct {
	config Config
	logger *zap.Logger

	tasks     []registeredTask
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	mu        sync.Mutex
	isRunning bool
}

// New creates a new scheduler instance
func New(config Config, logger *zap.Logger) *Scheduler {
	if config.TaskTimeout == 0 {
		config.TaskTimeout = DefaultConfig().TaskTimeout
	}
	return &Scheduler{
		config: config,
		logger: logger,
	}
}

// Register adds a task to run every interval. Must be called before Start.
// When runAtStart is true the task also runs once immediately on Start.
func (s *Scheduler) Register(task Task, interval time.Duration, runAtStart bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, registeredTask{
		task:       task,
		interval:   interval,
		runAtStart: runAtStart,
	})
}

// Start launches one goroutine per registered task
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = true
	tasks := s.tasks
	s.mu.Unlock()

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, rt := range tasks {
		s.wg.Add(1)
		go s.loop(ctx, rt)
	}

	s.logger.Info("Scheduler started",
		zap.Int("tasks", len(tasks)),
		zap.Duration("task_timeout", s.config.TaskTimeout),
	)
	return nil
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.isRunning {
		s.mu.Unlock()
		return nil
	}
	s.isRunning = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.logger.Info("Scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Scheduler stop timed out")
		return ctx.Err()
	}
}

func (s *Scheduler) loop(ctx context.Context, rt registeredTask) {
	defer s.wg.Done()

	if rt.runAtStart {
		s.runOnce(ctx, rt.task)
	}

	ticker := time.NewTicker(rt.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("Task loop stopping", zap.String("task", rt.task.Name()))
			return
		case <-ticker.C:
			s.runOnce(ctx, rt.task)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, task Task) {
	runCtx, cancel := context.WithTimeout(ctx, s.config.TaskTimeout)
	defer cancel()

	start := time.Now()
	if err := task.Run(runCtx); err != nil {
		s.logger.Error("Task failed",
			zap.String("task", task.Name()),
			zap.Duration("duration", time.Since(start)),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("Task completed",
		zap.String("task", task.Name()),
		zap.Duration("duration", time.Since(start)),
	)
}
