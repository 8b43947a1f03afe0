package scheduler

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs one-shot jobs after a delay, keyed so a pending job can be
// replaced or cancelled. Jobs get a context owned by the scheduler, not by
// whoever scheduled them.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[string]*time.Timer
	closed  bool
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
	logger  *zap.Logger
}

// New returns a Scheduler whose jobs each run under jobTimeout (0 = no limit).
func New(jobTimeout time.Duration, logger *zap.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		timers:  make(map[string]*time.Timer),
		ctx:     ctx,
		cancel:  cancel,
		timeout: jobTimeout,
		logger:  logger,
	}
}

func (s *Scheduler) Schedule(key string, delay time.Duration, job func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Warn("scheduler closed, job dropped", zap.String("key", key))
		return
	}

	if prev, ok := s.timers[key]; ok && prev.Stop() {
		s.wg.Done()
	}

	s.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		defer s.wg.Done()

		s.mu.Lock()
		if s.timers[key] != timer {
			s.mu.Unlock()
			return
		}
		delete(s.timers, key)
		s.mu.Unlock()

		s.run(key, job)
	})
	s.timers[key] = timer
}

func (s *Scheduler) run(key string, job func(ctx context.Context)) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled job panicked", zap.String("key", key), zap.Any("panic", r))
		}
	}()

	job(ctx)
}

// Cancel stops the pending job for key. It reports false when nothing was
// pending or the job had already started.
func (s *Scheduler) Cancel(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, ok := s.timers[key]
	if !ok {
		return false
	}
	delete(s.timers, key)
	// A timer that already fired is parked on mu and will see the key gone.
	if timer.Stop() {
		s.wg.Done()
	}
	return true
}

func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Shutdown drops every pending job, then waits for running ones until ctx
// expires, at which point their context is cancelled.
func (s *Scheduler) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	dropped := 0
	for key, timer := range s.timers {
		if timer.Stop() {
			s.wg.Done()
		}
		delete(s.timers, key)
		dropped++
	}
	s.mu.Unlock()

	if dropped > 0 {
		s.logger.Warn("pending jobs dropped on shutdown", zap.Int("count", dropped))
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		return ctx.Err()
	}
}
